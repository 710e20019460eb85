package server

import (
	"net/http"

	"github.com/fulltask/tutor-api/internal/codec"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	codec.WriteJSON(w, http.StatusOK, codec.StatusResponse{
		Status:  "ok",
		Message: "API ready. Use POST /api/ask with { message, toolId }",
	})
}
