package normalize

import (
	"strings"
	"testing"
)

func TestValidateRejectsEmptyRequest(t *testing.T) {
	for _, req := range []*Request{
		{},
		{ToolID: "Math Solver"},
		{Message: "   "},
		{Message: "", Transcription: "\t", FileURL: ""},
	} {
		if err := req.Validate(); err != ErrMissingInput {
			t.Errorf("Validate(%+v): got %v, want ErrMissingInput", req, err)
		}
	}
}

func TestValidateAcceptsAnyContentField(t *testing.T) {
	for _, req := range []*Request{
		{Message: "hi"},
		{Transcription: "spoken words"},
		{FileURL: "https://example.com/a.wav"},
	} {
		if err := req.Validate(); err != nil {
			t.Errorf("Validate(%+v): got %v, want nil", req, err)
		}
	}
}

func TestIsCreatorQuestion(t *testing.T) {
	positives := []string{
		"Who created this platform?",
		"WHO MADE you",
		"tell me about the creator",
		"who built this",
		"who is the author here",
	}
	for _, text := range positives {
		if !IsCreatorQuestion(text) {
			t.Errorf("IsCreatorQuestion(%q) = false, want true", text)
		}
	}

	negatives := []string{
		"solve 2+2",
		"write an essay about creativity",
		"",
	}
	for _, text := range negatives {
		if IsCreatorQuestion(text) {
			t.Errorf("IsCreatorQuestion(%q) = true, want false", text)
		}
	}
}

func TestBestTextPrefersTranscription(t *testing.T) {
	req := &Request{Message: "typed", Transcription: "spoken"}
	if got := req.BestText(); got != "spoken" {
		t.Errorf("BestText: got %q, want %q", got, "spoken")
	}

	req = &Request{Message: "typed"}
	if got := req.BestText(); got != "typed" {
		t.Errorf("BestText: got %q, want %q", got, "typed")
	}
}

func TestComposeMathSolverTemplate(t *testing.T) {
	req := &Request{ToolID: "Math Solver", Message: "2+2"}
	prompt := req.Compose()

	if !strings.Contains(prompt, "2+2") {
		t.Errorf("prompt missing problem text: %q", prompt)
	}
	if !strings.Contains(prompt, "step-by-step") {
		t.Errorf("prompt missing step-by-step instruction: %q", prompt)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	req := &Request{ToolID: "Math Solver", Message: "2+2"}
	first := req.Compose()
	for i := 0; i < 3; i++ {
		if got := req.Compose(); got != first {
			t.Fatalf("Compose not deterministic: %q vs %q", got, first)
		}
	}
}

func TestComposeFieldOrder(t *testing.T) {
	req := &Request{
		ToolID:        "AI Assistant",
		Message:       "the message",
		Transcription: "the transcription",
		FileURL:       "https://example.com/f.pdf",
	}
	prompt := req.Compose()

	fileIdx := strings.Index(prompt, "https://example.com/f.pdf")
	transIdx := strings.Index(prompt, "the transcription")
	msgIdx := strings.Index(prompt, "the message")
	if fileIdx < 0 || transIdx < 0 || msgIdx < 0 {
		t.Fatalf("prompt missing fields: %q", prompt)
	}
	if !(fileIdx < transIdx && transIdx < msgIdx) {
		t.Errorf("field order wrong: file=%d transcription=%d message=%d", fileIdx, transIdx, msgIdx)
	}
}

func TestComposeUnknownToolFallsBack(t *testing.T) {
	known := (&Request{ToolID: "AI Assistant", Message: "x"}).Compose()
	unknown := (&Request{ToolID: "Nonexistent Tool", Message: "x"}).Compose()
	missing := (&Request{Message: "x"}).Compose()

	if unknown != known || missing != known {
		t.Errorf("fallback template mismatch:\nknown:   %q\nunknown: %q\nmissing: %q", known, unknown, missing)
	}
}

func TestTemplateTableComplete(t *testing.T) {
	if got := KnownTools(); got != 20 {
		t.Errorf("KnownTools: got %d, want 20", got)
	}
}
