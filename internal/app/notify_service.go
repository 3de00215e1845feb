package app

import (
	"context"
	"fmt"

	"weighttrack/internal/domain"

	"github.com/rs/zerolog"
)

// Outcome records what the notification trigger did after a mutation.
type Outcome int

// Notification outcomes.
const (
	OutcomeSkipped Outcome = iota
	OutcomeUnauthorized
	OutcomeNoAddress
	OutcomeNoGoal
	OutcomeNotReached
	OutcomeSent
	OutcomeFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeSkipped:      "skipped",
	OutcomeUnauthorized: "unauthorized",
	OutcomeNoAddress:    "no_address",
	OutcomeNoGoal:       "no_goal",
	OutcomeNotReached:   "not_reached",
	OutcomeSent:         "sent",
	OutcomeFailed:       "failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText renders the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// NotifyService sends a goal-reached message whenever a mutated entry is at
// or below the goal. It does not remember earlier notifications.
type NotifyService struct {
	prefs      domain.PreferenceRepository
	permission domain.DeliveryPermission
	sender     domain.Sender
	address    string
	log        zerolog.Logger
}

// NewNotifyService creates a NotifyService delivering to address.
func NewNotifyService(prefs domain.PreferenceRepository, permission domain.DeliveryPermission, sender domain.Sender, address string, log zerolog.Logger) *NotifyService {
	return &NotifyService{
		prefs:      prefs,
		permission: permission,
		sender:     sender,
		address:    address,
		log:        log,
	}
}

// EvaluateAfterMutation sends the goal-reached message when newestKg is at
// or below the account's goal. Values in the message use unit.
func (s *NotifyService) EvaluateAfterMutation(ctx context.Context, accountID int64, newestKg float64, unit domain.Unit) (Outcome, error) {
	if s.permission == nil || !s.permission.IsAuthorized() {
		return OutcomeUnauthorized, nil
	}
	if s.address == "" || s.sender == nil {
		return OutcomeNoAddress, nil
	}

	p, err := s.prefs.GetPreferences(ctx, accountID)
	if err != nil {
		return OutcomeSkipped, err
	}
	if p.GoalKg == nil {
		return OutcomeNoGoal, nil
	}
	if newestKg > *p.GoalKg {
		return OutcomeNotReached, nil
	}

	msg := GoalReachedMessage(newestKg, *p.GoalKg, unit)
	if err := s.sender.Send(ctx, msg, s.address); err != nil {
		s.log.Warn().Err(err).Int64("account_id", accountID).Msg("goal notification failed")
		return OutcomeFailed, fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, err)
	}
	s.log.Info().Int64("account_id", accountID).Msg("goal notification sent")
	return OutcomeSent, nil
}

// GoalReachedMessage renders the notification text in unit.
func GoalReachedMessage(latestKg, goalKg float64, unit domain.Unit) string {
	return fmt.Sprintf("Goal reached! Latest: %.1f %s (goal: %.1f %s).",
		domain.FromKg(latestKg, unit), unit, domain.FromKg(goalKg, unit), unit)
}
