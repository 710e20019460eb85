package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fulltask/tutor-api/internal/config"
)

// voiceSettings tunes the synthesized voice. Values follow the original
// product configuration.
type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechPayload struct {
	Text          string        `json:"text"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Speech calls the text-to-speech provider.
type Speech struct {
	apiKey       string
	baseURL      string
	defaultVoice string
	http         *http.Client
}

// NewSpeech creates a text-to-speech client from service configuration.
func NewSpeech(cfg *config.Config) *Speech {
	return &Speech{
		apiKey:       cfg.ElevenKey,
		baseURL:      cfg.ElevenBaseURL,
		defaultVoice: cfg.DefaultVoice,
		http:         &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

// Configured reports whether a provider credential is present.
func (s *Speech) Configured() bool {
	return s.apiKey != ""
}

// Synthesize converts text to audio with the given voice, falling back to the
// configured default voice. On success the returned Result body holds MP3
// bytes; provider failures come back as an *Error.
func (s *Speech) Synthesize(ctx context.Context, text, voice string) (*Result, error) {
	if voice == "" {
		voice = s.defaultVoice
	}

	payload := speechPayload{
		Text:          text,
		VoiceSettings: voiceSettings{Stability: 0.4, SimilarityBoost: 0.8},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := s.baseURL + "/v1/text-to-speech/" + url.PathEscape(voice)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: respBody}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}
