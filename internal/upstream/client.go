// Package upstream holds the HTTP clients for the hosted providers: text
// generation, speech-to-text, text-to-speech and video-room tokens.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fulltask/tutor-api/internal/codec"
	"github.com/fulltask/tutor-api/internal/config"
)

// CompletionRequest holds the parameters for a text-generation call.
type CompletionRequest struct {
	Instructions string
	Prompt       string
}

// Result wraps a raw provider response. Body is fully read and closed before
// Result is returned, so callers never manage the connection.
type Result struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Error represents a failed provider request with upstream detail.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return codec.FormatUpstreamError(e.StatusCode, e.Body)
}

// chatMessage is the provider wire format for a single message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionPayload is the chat-completions request body.
type completionPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// Client calls the text-generation provider.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	temperature     float64
	verbose         bool
	http            *http.Client
}

// NewClient creates a completion client from service configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:          cfg.OpenAIKey,
		baseURL:         cfg.OpenAIBaseURL,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
		temperature:     cfg.Temperature,
		verbose:         cfg.Verbose,
		http:            &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

// Complete sends the composed prompt with its system instruction to the
// provider and returns the raw response body. A non-nil error means the call
// never produced a usable body (transport failure, marshal failure); HTTP-level
// provider errors come back as a Result with a 4xx/5xx StatusCode.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*Result, error) {
	payload := completionPayload{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   c.maxOutputTokens,
		Temperature: c.temperature,
	}

	if c.verbose {
		slog.Info("upstream.request",
			"model", payload.Model,
			"max_tokens", payload.MaxTokens,
			"temperature", payload.Temperature,
			"prompt_chars", len(req.Prompt),
			"instructions_chars", len(req.Instructions),
		)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream body: %w", err)
	}

	if c.verbose {
		slog.Info("upstream.response",
			"status", resp.StatusCode,
			"bytes", len(respBody),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}

// FetchFile dereferences a remote or data URL and returns its bytes. Used by
// the transcription path to pull audio the client only referenced.
func (c *Client) FetchFile(ctx context.Context, fileURL string) ([]byte, error) {
	if data, ok, err := decodeDataURL(fileURL); ok {
		return data, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fileUrl: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("failed to fetch fileUrl: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
