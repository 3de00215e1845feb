package domain

import "context"

// Preferences holds the per-account settings. A nil field was never set.
type Preferences struct {
	DisplayUnit *Unit
	GoalKg      *float64
}

// PreferenceRepository is the port for per-account preferences.
// GetPreferences returns a zero Preferences for accounts without a row.
type PreferenceRepository interface {
	GetPreferences(ctx context.Context, accountID int64) (Preferences, error)
	SetDisplayUnit(ctx context.Context, accountID int64, unit Unit) error
	SetGoal(ctx context.Context, accountID int64, kg float64) error
	ClearGoal(ctx context.Context, accountID int64) error
}
