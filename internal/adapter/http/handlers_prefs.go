package adapthttp

import (
	"net/http"

	"weighttrack/internal/domain"
)

func (s *Server) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unit, err := s.prefs.DisplayUnit(ctx, accountFrom(ctx))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit})
}

func (s *Server) handleSetUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Unit string `json:"unit"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseUnit(req.Unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.prefs.SetDisplayUnit(ctx, accountFrom(ctx), unit); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit})
}
