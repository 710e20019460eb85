// Package codec writes the service's JSON reply envelopes and extracts a
// plain-text reply from variously-shaped provider response bodies.
package codec

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ReplyResponse is the success envelope for chat requests.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// TextResponse is the success envelope for transcription requests.
type TextResponse struct {
	Text string `json:"text"`
}

// StatusResponse is the readiness payload for GET probes.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope. Details carries the upstream error
// message when one is available.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes an error envelope without details.
func WriteError(w http.ResponseWriter, status int, message string) {
	slog.Error("request failed", "status", status, "error", message)
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteErrorDetails writes an error envelope carrying upstream detail.
func WriteErrorDetails(w http.ResponseWriter, status int, message, details string) {
	slog.Error("request failed", "status", status, "error", message, "details", details)
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}
