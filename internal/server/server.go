// Package server wires the HTTP routes, middleware and provider clients into
// the tutor API service.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fulltask/tutor-api/internal/codec"
	"github.com/fulltask/tutor-api/internal/config"
	"github.com/fulltask/tutor-api/internal/history"
	"github.com/fulltask/tutor-api/internal/upstream"
)

// maxBodyBytes limits the size of incoming request bodies.
const maxBodyBytes = 10 * 1024 * 1024 // 10 MB

// completioner abstracts the text-generation client so handlers can be tested
// with a mock without a real network connection.
type completioner interface {
	Complete(ctx context.Context, req *upstream.CompletionRequest) (*upstream.Result, error)
	FetchFile(ctx context.Context, fileURL string) ([]byte, error)
}

type transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (*upstream.Result, error)
}

type tokenIssuer interface {
	MeetingToken(ctx context.Context, roomName, userName string) (*upstream.Result, error)
}

// Server is the main HTTP server.
type Server struct {
	Config     *config.Config
	httpServer *http.Server

	completions completioner
	stt         transcriber
	tts         synthesizer
	rooms       tokenIssuer
	history     *history.Store
}

// New creates a server with all routes registered.
func New(cfg *config.Config) *Server {
	s := &Server{
		Config:      cfg,
		completions: upstream.NewClient(cfg),
		stt:         upstream.NewTranscriber(cfg),
		tts:         upstream.NewSpeech(cfg),
		rooms:       upstream.NewRooms(cfg),
	}
	if cfg.HistoryPath != "" {
		s.history = history.NewStore(cfg.HistoryPath)
	}

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// API routes
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	mux.HandleFunc("POST /api/speak", s.handleSpeak)
	mux.HandleFunc("POST /api/rooms/token", s.handleRoomToken)
	mux.HandleFunc("POST /api/history", s.handleHistory)

	// Wrong-method fallback for API paths: GET answers the readiness probe,
	// anything else gets a JSON 405. OPTIONS never reaches here (CORS layer).
	mux.HandleFunc("/api/", s.handleAPIFallback)

	handler := corsMiddleware(originMiddleware(cfg, requestLogMiddleware(cfg, mux)))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleRoot answers the readiness probe at "/" and a JSON error for any
// other unmatched path.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		codec.WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet {
		codec.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.handleHealth(w, r)
}

func (s *Server) handleAPIFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.handleHealth(w, r)
		return
	}
	codec.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// readBody reads a bounded request body, answering a JSON 400 on failure.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		codec.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return nil, false
	}
	return body, true
}
