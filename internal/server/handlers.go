package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/core/logging"
)

const invalidModeMessage = "Invalid or missing focus_mode"

type updateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("focus_mode")
	if mode == "" {
		s.writeJSON(w, r, http.StatusBadRequest, updateResponse{Error: invalidModeMessage})
		return
	}

	ctx := logging.WithFocusMode(r.Context(), mode)

	err := s.dispatcher.Apply(ctx, mode)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, updateResponse{Success: true})
	case errors.Is(err, focus.ErrInvalidMode):
		s.writeJSON(w, r, http.StatusBadRequest, updateResponse{Error: invalidModeMessage})
	default:
		s.writeJSON(w, r, http.StatusInternalServerError, updateResponse{Error: err.Error()})
	}
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string][]string{
		"modes": s.dispatcher.Registry().Names(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn().Ctx(r.Context()).Err(err).Msg("failed to write response")
	}
}
