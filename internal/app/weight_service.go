package app

import (
	"context"
	"math"

	"weighttrack/internal/domain"
)

// Notifier decides whether a goal-reached message follows a log mutation.
type Notifier interface {
	EvaluateAfterMutation(ctx context.Context, accountID int64, newestKg float64, unit domain.Unit) (Outcome, error)
}

// DisplayUnits resolves the unit an account reads its values in.
type DisplayUnits interface {
	DisplayUnit(ctx context.Context, accountID int64) (domain.Unit, error)
}

// Mutation is the result of an insert or update. NotifyErr carries a
// delivery failure; the entry is stored regardless.
type Mutation struct {
	EntryID   int64
	Notify    Outcome
	NotifyErr error
}

// WeightService encapsulates weight-log use cases.
type WeightService struct {
	repo     domain.WeightRepository
	notifier Notifier
	units    DisplayUnits
}

// NewWeightService creates a WeightService backed by the given repository.
// notifier may be nil. Notifications are rendered in the unit reported by
// units, or in the input unit when units is nil.
func NewWeightService(repo domain.WeightRepository, notifier Notifier, units DisplayUnits) *WeightService {
	return &WeightService{repo: repo, notifier: notifier, units: units}
}

// InsertEntry stores value, given in unit, for day and evaluates the goal
// notification against it.
func (s *WeightService) InsertEntry(ctx context.Context, accountID int64, day string, value float64, unit domain.Unit) (Mutation, error) {
	if err := validateInput(value, unit); err != nil {
		return Mutation{}, err
	}
	kg := domain.ToKg(value, unit)
	id, err := s.repo.InsertEntry(ctx, accountID, day, kg)
	if err != nil {
		return Mutation{}, err
	}
	return s.afterMutation(ctx, accountID, id, kg, unit), nil
}

// UpdateEntry replaces the day and value of an entry owned by accountID.
func (s *WeightService) UpdateEntry(ctx context.Context, accountID, id int64, day string, value float64, unit domain.Unit) (Mutation, error) {
	if err := validateInput(value, unit); err != nil {
		return Mutation{}, err
	}
	kg := domain.ToKg(value, unit)
	n, err := s.repo.UpdateEntry(ctx, accountID, id, day, kg)
	if err != nil {
		return Mutation{}, err
	}
	if n == 0 {
		return Mutation{}, domain.ErrEntryNotFound
	}
	return s.afterMutation(ctx, accountID, id, kg, unit), nil
}

// DeleteEntry removes an entry owned by accountID.
func (s *WeightService) DeleteEntry(ctx context.Context, accountID, id int64) error {
	n, err := s.repo.DeleteEntry(ctx, accountID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListEntries returns every entry of the account, newest day first.
func (s *WeightService) ListEntries(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	return s.repo.ListEntries(ctx, accountID)
}

func (s *WeightService) afterMutation(ctx context.Context, accountID, id int64, kg float64, unit domain.Unit) Mutation {
	m := Mutation{EntryID: id}
	if s.notifier == nil {
		return m
	}
	if s.units != nil {
		if display, err := s.units.DisplayUnit(ctx, accountID); err == nil {
			unit = display
		}
	}
	m.Notify, m.NotifyErr = s.notifier.EvaluateAfterMutation(ctx, accountID, kg, unit)
	return m
}

func validateInput(value float64, unit domain.Unit) error {
	if !unit.Valid() {
		return domain.ErrUnknownUnit
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.ErrInvalidNumericInput
	}
	return nil
}
