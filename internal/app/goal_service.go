package app

import (
	"context"
	"math"

	"weighttrack/internal/domain"
)

// reachedEpsilonKg absorbs rounding from unit conversion.
const reachedEpsilonKg = 0.0001

// GoalState is the coarse outcome of a goal status query.
type GoalState string

// Goal states.
const (
	GoalNone    GoalState = "no_goal"
	GoalAway    GoalState = "away"
	GoalReached GoalState = "reached"
)

// GoalStatus describes where the latest entry stands relative to the goal.
// Goal and Away are expressed in Unit.
type GoalStatus struct {
	State GoalState   `json:"state"`
	Goal  float64     `json:"goal"`
	Away  float64     `json:"away"`
	Unit  domain.Unit `json:"unit"`
}

// GoalService encapsulates goal tracking use cases.
type GoalService struct {
	weights domain.WeightRepository
	prefs   domain.PreferenceRepository
}

// NewGoalService creates a GoalService backed by the given repositories.
func NewGoalService(weights domain.WeightRepository, prefs domain.PreferenceRepository) *GoalService {
	return &GoalService{weights: weights, prefs: prefs}
}

// SetGoal stores value, given in unit, as the account's goal.
func (s *GoalService) SetGoal(ctx context.Context, accountID int64, value float64, unit domain.Unit) error {
	if !unit.Valid() {
		return domain.ErrUnknownUnit
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.ErrInvalidNumericInput
	}
	return s.prefs.SetGoal(ctx, accountID, domain.ToKg(value, unit))
}

// ClearGoal removes the account's goal.
func (s *GoalService) ClearGoal(ctx context.Context, accountID int64) error {
	return s.prefs.ClearGoal(ctx, accountID)
}

// Goal returns the stored goal in kilograms, or nil when none is set.
func (s *GoalService) Goal(ctx context.Context, accountID int64) (*float64, error) {
	p, err := s.prefs.GetPreferences(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return p.GoalKg, nil
}

// Status compares the most recent entry with the goal. An empty log with a
// goal reports GoalAway with a zero distance.
func (s *GoalService) Status(ctx context.Context, accountID int64, unit domain.Unit) (GoalStatus, error) {
	goalKg, err := s.Goal(ctx, accountID)
	if err != nil {
		return GoalStatus{}, err
	}
	if goalKg == nil {
		return GoalStatus{State: GoalNone, Unit: unit}, nil
	}

	entries, err := s.weights.ListEntries(ctx, accountID)
	if err != nil {
		return GoalStatus{}, err
	}
	goal := domain.FromKg(*goalKg, unit)
	if len(entries) == 0 {
		return GoalStatus{State: GoalAway, Goal: goal, Unit: unit}, nil
	}

	diffKg := math.Max(0, entries[0].Kg-*goalKg)
	if diffKg <= reachedEpsilonKg {
		return GoalStatus{State: GoalReached, Goal: goal, Unit: unit}, nil
	}
	return GoalStatus{
		State: GoalAway,
		Goal:  goal,
		Away:  domain.FromKg(diffKg, unit),
		Unit:  unit,
	}, nil
}
