package sqlite

import (
	"context"

	"weighttrack/internal/domain"
)

// InsertEntry inserts a new weight entry.
func (d *DB) InsertEntry(ctx context.Context, accountID int64, day string, kg float64) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO weight_entries(account_id, day, kg) VALUES(?, ?, ?);",
		accountID, day, kg,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateEntry replaces day and value of an entry owned by the account.
func (d *DB) UpdateEntry(ctx context.Context, accountID, id int64, day string, kg float64) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET day=?, kg=? WHERE id=? AND account_id=?;",
		day, kg, id, accountID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteEntry removes an entry owned by the account.
func (d *DB) DeleteEntry(ctx context.Context, accountID, id int64) (int64, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE id=? AND account_id=?;", id, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListEntries returns every entry of the account, newest day first. SQLite
// compares TEXT with BINARY collation, i.e. plain string order.
func (d *DB) ListEntries(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, kg FROM weight_entries WHERE account_id=? ORDER BY day DESC, id DESC;", accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0)
	for rows.Next() {
		e := domain.WeightEntry{AccountID: accountID}
		if err := rows.Scan(&e.ID, &e.Day, &e.Kg); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
