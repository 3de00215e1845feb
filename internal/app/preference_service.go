package app

import (
	"context"

	"weighttrack/internal/domain"
)

// PreferenceService resolves and stores the display unit of an account.
type PreferenceService struct {
	prefs domain.PreferenceRepository
	hint  domain.LocaleHint
}

// NewPreferenceService creates a PreferenceService. hint may be nil, in
// which case kilograms is the default.
func NewPreferenceService(prefs domain.PreferenceRepository, hint domain.LocaleHint) *PreferenceService {
	return &PreferenceService{prefs: prefs, hint: hint}
}

// DisplayUnit returns the stored unit, falling back to the locale default.
func (s *PreferenceService) DisplayUnit(ctx context.Context, accountID int64) (domain.Unit, error) {
	p, err := s.prefs.GetPreferences(ctx, accountID)
	if err != nil {
		return "", err
	}
	if p.DisplayUnit != nil && p.DisplayUnit.Valid() {
		return *p.DisplayUnit, nil
	}
	if s.hint == nil {
		return domain.Kilograms, nil
	}
	return s.hint.DefaultUnit(), nil
}

// SetDisplayUnit stores the account's display unit.
func (s *PreferenceService) SetDisplayUnit(ctx context.Context, accountID int64, unit domain.Unit) error {
	if !unit.Valid() {
		return domain.ErrUnknownUnit
	}
	return s.prefs.SetDisplayUnit(ctx, accountID, unit)
}
