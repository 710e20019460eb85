package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/fulltask/tutor-api/internal/codec"
	"github.com/fulltask/tutor-api/internal/history"
	"github.com/fulltask/tutor-api/internal/normalize"
	"github.com/fulltask/tutor-api/internal/upstream"
)

const missingKeyError = "Server misconfigured. OPENAI_API_KEY missing."

// handleAsk handles POST /api/ask: validate, short-circuit, compose, dispatch,
// extract.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req normalize.Request
	if err := json.Unmarshal(body, &req); err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		codec.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if normalize.IsCreatorQuestion(req.BestText()) {
		codec.WriteJSON(w, http.StatusOK, codec.ReplyResponse{Reply: normalize.CreatorReply})
		return
	}

	if s.Config.OpenAIKey == "" {
		codec.WriteError(w, http.StatusInternalServerError, missingKeyError)
		return
	}

	prompt := req.Compose()
	if s.Config.Verbose {
		slog.Info("ask.request",
			"tool", req.ToolID,
			"prompt_chars", len(prompt),
			"has_transcription", req.Transcription != "",
			"has_file", req.FileURL != "",
		)
	}

	res, err := s.completions.Complete(r.Context(), &upstream.CompletionRequest{
		Instructions: normalize.SystemInstruction,
		Prompt:       prompt,
	})
	if err != nil {
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "OpenAI request failed", err.Error())
		return
	}
	if res.StatusCode >= 400 {
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "OpenAI request failed",
			codec.FormatUpstreamError(res.StatusCode, res.Body))
		return
	}

	codec.WriteJSON(w, http.StatusOK, codec.ReplyResponse{Reply: codec.ExtractReply(res.Body)})
}

// handleTranscribe handles POST /api/transcribe. Audio arrives either as a
// multipart upload (field "file", legacy "audio") or as { fileUrl } pointing
// at a remote or data URL the server dereferences.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if s.Config.OpenAIKey == "" {
		codec.WriteError(w, http.StatusInternalServerError, missingKeyError)
		return
	}

	audio, filename, ok := s.readAudio(w, r)
	if !ok {
		return
	}

	text, err := s.stt.Transcribe(r.Context(), audio, filename)
	if err != nil {
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "Transcription failed", err.Error())
		return
	}
	codec.WriteJSON(w, http.StatusOK, codec.TextResponse{Text: text})
}

// readAudio extracts audio bytes from the request, answering the error
// response itself when extraction fails.
func (s *Server) readAudio(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			file, header, err = r.FormFile("audio")
		}
		if err != nil {
			codec.WriteError(w, http.StatusBadRequest, "Upload failed")
			return nil, "", false
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			codec.WriteError(w, http.StatusBadRequest, "Upload failed")
			return nil, "", false
		}
		return data, header.Filename, true
	}

	body, ok := readBody(w, r)
	if !ok {
		return nil, "", false
	}
	var req struct {
		FileURL string `json:"fileUrl"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, "", false
	}
	if strings.TrimSpace(req.FileURL) == "" {
		codec.WriteError(w, http.StatusBadRequest, "fileUrl required")
		return nil, "", false
	}

	data, err := s.completions.FetchFile(r.Context(), req.FileURL)
	if err != nil {
		codec.WriteErrorDetails(w, http.StatusBadRequest, "Failed to fetch fileUrl", err.Error())
		return nil, "", false
	}
	return data, "", true
}

// handleSpeak handles POST /api/speak: text to MP3 bytes.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		codec.WriteError(w, http.StatusBadRequest, "text required")
		return
	}
	if s.Config.ElevenKey == "" {
		codec.WriteError(w, http.StatusInternalServerError, "Server misconfigured. ELEVEN_API_KEY missing.")
		return
	}

	res, err := s.tts.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			codec.WriteErrorDetails(w, http.StatusInternalServerError, "Text-to-speech failed",
				codec.FormatUpstreamError(upErr.StatusCode, upErr.Body))
			return
		}
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "Text-to-speech failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body) //nolint:errcheck
}

// handleRoomToken handles POST /api/rooms/token, passing the provider's JSON
// body through unchanged.
func (s *Server) handleRoomToken(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req struct {
		RoomName string `json:"roomName"`
		UserName string `json:"userName"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.RoomName) == "" {
		codec.WriteError(w, http.StatusBadRequest, "roomName required")
		return
	}
	if s.Config.DailyKey == "" {
		codec.WriteError(w, http.StatusInternalServerError, "Server misconfigured. DAILY_API_KEY missing.")
		return
	}

	res, err := s.rooms.MeetingToken(r.Context(), req.RoomName, req.UserName)
	if err != nil {
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "Room token request failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(res.Body) //nolint:errcheck
}

// handleHistory handles POST /api/history: optional server-side history save
// gated on a bearer identity token.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		codec.WriteError(w, http.StatusNotImplemented, "Server-side history save not enabled.")
		return
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		codec.WriteError(w, http.StatusBadRequest, "No idToken provided.")
		return
	}
	claims, err := history.ParseIDTokenClaims(token)
	if err != nil {
		codec.WriteError(w, http.StatusUnauthorized, "Invalid ID token")
		return
	}
	uid := history.TokenUID(claims)
	if uid == "" {
		codec.WriteError(w, http.StatusUnauthorized, "Invalid ID token")
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var req struct {
		Record history.Record `json:"record"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := s.history.Append(req.Record, uid); err != nil {
		if err == history.ErrUIDMismatch {
			codec.WriteError(w, http.StatusForbidden, "UID mismatch")
			return
		}
		codec.WriteErrorDetails(w, http.StatusInternalServerError, "Failed to save history", err.Error())
		return
	}
	codec.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
