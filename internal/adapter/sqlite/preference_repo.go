package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

// GetPreferences returns the stored preferences of an account.
func (d *DB) GetPreferences(ctx context.Context, accountID int64) (domain.Preferences, error) {
	var unit sql.NullString
	var goal sql.NullFloat64
	err := d.sql.QueryRowContext(ctx,
		"SELECT display_unit, goal_kg FROM account_preferences WHERE account_id=?;", accountID,
	).Scan(&unit, &goal)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Preferences{}, nil
	}
	if err != nil {
		return domain.Preferences{}, err
	}

	var p domain.Preferences
	if unit.Valid {
		u := domain.Unit(unit.String)
		p.DisplayUnit = &u
	}
	if goal.Valid {
		g := goal.Float64
		p.GoalKg = &g
	}
	return p, nil
}

// SetDisplayUnit stores the display unit of an account.
func (d *DB) SetDisplayUnit(ctx context.Context, accountID int64, unit domain.Unit) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO account_preferences(account_id, display_unit) VALUES(?, ?) ON CONFLICT (account_id) DO UPDATE SET display_unit = EXCLUDED.display_unit;",
		accountID, string(unit),
	)
	return err
}

// SetGoal stores the goal of an account in kilograms.
func (d *DB) SetGoal(ctx context.Context, accountID int64, kg float64) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO account_preferences(account_id, goal_kg) VALUES(?, ?) ON CONFLICT (account_id) DO UPDATE SET goal_kg = EXCLUDED.goal_kg;",
		accountID, kg,
	)
	return err
}

// ClearGoal removes the goal of an account.
func (d *DB) ClearGoal(ctx context.Context, accountID int64) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE account_preferences SET goal_kg = NULL WHERE account_id=?;", accountID)
	return err
}
