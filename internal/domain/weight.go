package domain

import "context"

// WeightEntry is one dated measurement. Kg is always canonical.
type WeightEntry struct {
	ID        int64   `json:"id"`
	AccountID int64   `json:"accountId"`
	Day       string  `json:"day"`
	Kg        float64 `json:"kg"`
}

// WeightRepository is the port for weight log persistence.
//
// ListEntries returns every entry of the account ordered by day descending
// (plain string comparison), ties broken by id descending.
type WeightRepository interface {
	InsertEntry(ctx context.Context, accountID int64, day string, kg float64) (int64, error)
	UpdateEntry(ctx context.Context, accountID, id int64, day string, kg float64) (int64, error)
	DeleteEntry(ctx context.Context, accountID, id int64) (int64, error)
	ListEntries(ctx context.Context, accountID int64) ([]WeightEntry, error)
}
