package upstream

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/fulltask/tutor-api/internal/config"
)

// Transcriber calls the speech-to-text provider through the official SDK.
type Transcriber struct {
	client  openai.Client
	model   string
	enabled bool
}

// NewTranscriber creates a speech-to-text client from service configuration.
func NewTranscriber(cfg *config.Config) *Transcriber {
	return &Transcriber{
		client: openai.NewClient(
			option.WithAPIKey(cfg.OpenAIKey),
			option.WithBaseURL(cfg.OpenAIBaseURL),
		),
		model:   cfg.TranscribeModel,
		enabled: cfg.OpenAIKey != "",
	}
}

// Transcribe sends raw audio bytes to the provider and returns the recognized
// text. The filename only informs the provider's format detection.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if !t.enabled {
		return "", fmt.Errorf("transcription not configured")
	}
	if filename == "" {
		filename = "upload.wav"
	}

	result, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), filename, contentTypeForAudio(filename)),
		Model: openai.AudioModel(t.model),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	return result.Text, nil
}

func contentTypeForAudio(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(filename, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(filename, ".webm"):
		return "audio/webm"
	case strings.HasSuffix(filename, ".m4a"):
		return "audio/mp4"
	default:
		return "audio/wav"
	}
}

// decodeDataURL handles data: URLs so recorded audio can be submitted inline.
// Returns ok=false when the URL is not a data URL.
func decodeDataURL(fileURL string) (data []byte, ok bool, err error) {
	if !strings.HasPrefix(fileURL, "data:") {
		return nil, false, nil
	}
	comma := strings.IndexByte(fileURL, ',')
	if comma < 0 {
		return nil, true, fmt.Errorf("malformed data URL")
	}
	meta, payload := fileURL[5:comma], fileURL[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, true, fmt.Errorf("malformed data URL: %w", err)
		}
		return decoded, true, nil
	}
	return []byte(payload), true, nil
}
