package adapthttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps domain and app errors to a status code.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrInvalidNumericInput),
		errors.Is(err, domain.ErrUnknownUnit):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, err)
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

var errMissingValue = fmt.Errorf("%w: value is required", domain.ErrInvalidNumericInput)

// weightValue accepts a JSON number or a decimal string.
type weightValue float64

func (v *weightValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := domain.ParseWeight(s)
		if err != nil {
			return err
		}
		*v = weightValue(f)
		return nil
	}
	f, err := domain.ParseWeight(string(b))
	if err != nil {
		return err
	}
	*v = weightValue(f)
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrEntryNotFound
	}
	return id, nil
}

// parseDay validates a YYYY-MM-DD day and defaults to today.
func parseDay(day string) (string, error) {
	if day == "" {
		return localDayString(time.Now()), nil
	}
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return "", fmt.Errorf("invalid day %q: want YYYY-MM-DD", day)
	}
	return day, nil
}

func localDayString(t time.Time) string {
	return t.In(time.Local).Format(time.DateOnly)
}

// unitFor resolves the unit of a request: an explicit ?unit= or body unit
// wins over the account's display unit.
func (s *Server) unitFor(r *http.Request, accountID int64, explicit string) (domain.Unit, error) {
	if explicit == "" {
		explicit = r.URL.Query().Get("unit")
	}
	if explicit != "" {
		return domain.ParseUnit(explicit)
	}
	return s.prefs.DisplayUnit(r.Context(), accountID)
}

func mutationBody(m app.Mutation) map[string]any {
	body := map[string]any{"id": m.EntryID, "notification": m.Notify}
	if m.NotifyErr != nil {
		body["notificationError"] = m.NotifyErr.Error()
	}
	return body
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
