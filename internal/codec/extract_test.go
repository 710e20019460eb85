package codec

import (
	"strings"
	"testing"
)

func TestExtractReplyChatCompletionShape(t *testing.T) {
	raw := []byte(`{"choices":[{"message":{"content":"X"}}]}`)
	if got := ExtractReply(raw); got != "X" {
		t.Errorf("got %q, want %q", got, "X")
	}
}

func TestExtractReplyOutputBlocksConcatenated(t *testing.T) {
	raw := []byte(`{"output":[{"content":[{"text":"A"},{"text":"B"}]}]}`)
	if got := ExtractReply(raw); got != "AB" {
		t.Errorf("got %q, want %q", got, "AB")
	}
}

func TestExtractReplyOutputBlocksAcrossItems(t *testing.T) {
	raw := []byte(`{"output":[{"content":[{"text":"A"}]},{"content":[{"type":"refusal"},{"text":"B"}]}]}`)
	if got := ExtractReply(raw); got != "AB" {
		t.Errorf("got %q, want %q", got, "AB")
	}
}

func TestExtractReplyOutputText(t *testing.T) {
	raw := []byte(`{"output_text":"flattened"}`)
	if got := ExtractReply(raw); got != "flattened" {
		t.Errorf("got %q, want %q", got, "flattened")
	}
}

func TestExtractReplyOutputPrecedesChoices(t *testing.T) {
	raw := []byte(`{"output":[{"content":[{"text":"from output"}]}],"choices":[{"message":{"content":"from choices"}}]}`)
	if got := ExtractReply(raw); got != "from output" {
		t.Errorf("got %q, want %q", got, "from output")
	}
}

func TestExtractReplyEmptyOutputFallsThrough(t *testing.T) {
	raw := []byte(`{"output":[],"output_text":"fallback text"}`)
	if got := ExtractReply(raw); got != "fallback text" {
		t.Errorf("got %q, want %q", got, "fallback text")
	}
}

func TestExtractReplyUnrecognizedShapeTruncates(t *testing.T) {
	big := `{"foo":"` + strings.Repeat("x", 3000) + `"}`
	got := ExtractReply([]byte(big))
	if len(got) > MaxRawDump {
		t.Errorf("dump length %d exceeds bound %d", len(got), MaxRawDump)
	}
	if !strings.HasPrefix(got, `{"foo":`) {
		t.Errorf("dump does not start with raw body: %q", got[:20])
	}
}

func TestExtractReplyNonJSONNeverPanics(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		{},
		[]byte("not json at all"),
		[]byte(`{"choices":"wrong type"}`),
		[]byte(`{"choices":[{"message":{"content":["array","content"]}}]}`),
	} {
		_ = ExtractReply(raw)
	}
}

func TestExtractUpstreamErrorMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error":{"message":"rate limited"}}`, "rate limited"},
		{`{"error":"plain string"}`, "plain string"},
		{`{"message":"top level"}`, "top level"},
		{`{"detail":"detail text"}`, "detail text"},
		{`not json`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		if got := ExtractUpstreamErrorMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("ExtractUpstreamErrorMessage(%q): got %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestFormatUpstreamError(t *testing.T) {
	got := FormatUpstreamError(429, []byte(`{"error":{"message":"slow down"}}`))
	if !strings.Contains(got, "429") || !strings.Contains(got, "slow down") {
		t.Errorf("unexpected format: %q", got)
	}

	got = FormatUpstreamError(500, nil)
	if !strings.Contains(got, "empty error body") {
		t.Errorf("unexpected format for empty body: %q", got)
	}
}
