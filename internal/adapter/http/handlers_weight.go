package adapthttp

import (
	"net/http"

	"weighttrack/internal/domain"
)

type weightItem struct {
	ID      int64   `json:"id"`
	Day     string  `json:"day"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type weightRequest struct {
	Day   string      `json:"day"`
	Value *weightValue `json:"value"`
	Unit  string      `json:"unit"`
}

func (s *Server) handleListWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := accountFrom(ctx)

	unit, err := s.unitFor(r, accountID, "")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	entries, err := s.weights.ListEntries(ctx, accountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	items := make([]weightItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, weightItem{
			ID:      e.ID,
			Day:     e.Day,
			Value:   domain.FromKg(e.Kg, unit),
			Display: domain.FormatWeight(e.Kg, unit),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "items": items})
}

func (s *Server) handleInsertWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := accountFrom(ctx)

	var req weightRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, errMissingValue)
		return
	}
	day, err := parseDay(req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := s.unitFor(r, accountID, req.Unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	m, err := s.weights.InsertEntry(ctx, accountID, day, float64(*req.Value), unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationBody(m))
}

func (s *Server) handleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := accountFrom(ctx)

	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	var req weightRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, errMissingValue)
		return
	}
	day, err := parseDay(req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := s.unitFor(r, accountID, req.Unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	m, err := s.weights.UpdateEntry(ctx, accountID, id, day, float64(*req.Value), unit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationBody(m))
}

func (s *Server) handleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.weights.DeleteEntry(ctx, accountFrom(ctx), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": id})
}
