package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fulltask/tutor-api/internal/config"
)

type tokenProperties struct {
	RoomName string `json:"room_name"`
}

type tokenPayload struct {
	Properties tokenProperties `json:"properties"`
	UserName   string          `json:"user_name"`
}

// Rooms calls the video-room token provider.
type Rooms struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewRooms creates a room-token client from service configuration.
func NewRooms(cfg *config.Config) *Rooms {
	return &Rooms{
		apiKey:  cfg.DailyKey,
		baseURL: cfg.DailyBaseURL,
		http:    &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

// Configured reports whether a provider credential is present.
func (r *Rooms) Configured() bool {
	return r.apiKey != ""
}

// MeetingToken requests a meeting token for the room. The provider's JSON body
// is returned unchanged for passthrough to the caller.
func (r *Rooms) MeetingToken(ctx context.Context, roomName, userName string) (*Result, error) {
	if userName == "" {
		userName = "guest"
	}

	body, err := json.Marshal(tokenPayload{
		Properties: tokenProperties{RoomName: roomName},
		UserName:   userName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/v1/meeting-tokens", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("room token request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token body: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}
