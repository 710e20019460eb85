// Package normalize turns a loosely-typed inbound chat request into the
// single prompt sent to the text-generation provider, and answers the fixed
// creator question locally without any provider call.
package normalize

import (
	"errors"
	"strings"
)

// SystemInstruction is the fixed system message paired with every composed prompt.
const SystemInstruction = "You are FullTask AI Tutor, helpful, clear, and respectful. " +
	"Mention the creator (Akin S Sokpah from Liberia) when asked. " +
	"Never echo the user's input verbatim."

// CreatorReply is the fixed answer for creator questions.
const CreatorReply = "This platform was created by Akin S Sokpah from Liberia."

// ErrMissingInput is returned when no content-bearing field is present.
var ErrMissingInput = errors.New("provide message or transcription or fileUrl")

// creatorTriggers are matched case-insensitively as substrings.
var creatorTriggers = []string{"who created", "who made", "creator", "who built", "author"}

// Request is the inbound chat payload. All fields are optional; Validate
// enforces that at least one content field is set.
type Request struct {
	Message       string `json:"message,omitempty"`
	ToolID        string `json:"toolId,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	FileURL       string `json:"fileUrl,omitempty"`
}

// Validate confirms at least one of message, transcription or fileUrl carries
// content. It never inspects toolId: an unknown tool is not an error.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Message) == "" &&
		strings.TrimSpace(r.Transcription) == "" &&
		strings.TrimSpace(r.FileURL) == "" {
		return ErrMissingInput
	}
	return nil
}

// BestText returns the transcription when present, else the message.
// This is the text the creator check scans.
func (r *Request) BestText() string {
	if strings.TrimSpace(r.Transcription) != "" {
		return r.Transcription
	}
	return r.Message
}

// IsCreatorQuestion reports whether text asks who made the platform.
func IsCreatorQuestion(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range creatorTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// Compose builds the user prompt: the present content fields are joined in a
// fixed order (file reference, transcription, message) into a single text, and
// the resolved tool template renders over it. Pure and deterministic.
func (r *Request) Compose() string {
	var parts []string
	if strings.TrimSpace(r.FileURL) != "" {
		parts = append(parts, "User provided a file: "+r.FileURL)
	}
	if strings.TrimSpace(r.Transcription) != "" {
		parts = append(parts, r.Transcription)
	}
	if strings.TrimSpace(r.Message) != "" {
		parts = append(parts, r.Message)
	}
	text := strings.Join(parts, "\n\n")
	return ResolveTemplate(r.ToolID)(text)
}
