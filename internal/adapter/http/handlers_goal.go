package adapthttp

import (
	"net/http"
)

func (s *Server) handleGoalStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := accountFrom(ctx)

	unit, err := s.unitFor(r, accountID, "")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	status, err := s.goals.Status(ctx, accountID, unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := accountFrom(ctx)

	var req struct {
		Value *weightValue `json:"value"`
		Unit  string      `json:"unit"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, errMissingValue)
		return
	}
	unit, err := s.unitFor(r, accountID, req.Unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.goals.SetGoal(ctx, accountID, float64(*req.Value), unit); err != nil {
		s.writeServiceError(w, err)
		return
	}

	status, err := s.goals.Status(ctx, accountID, unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleClearGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.goals.ClearGoal(ctx, accountFrom(ctx)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
