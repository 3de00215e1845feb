// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	accounts []*domain.Account
	entries  []domain.WeightEntry
	prefs    map[int64]domain.Preferences
	sessions map[string]*domain.Session

	accountIDCounter int64
	entryIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		prefs:    make(map[int64]domain.Preferences),
		sessions: make(map[string]*domain.Session),
	}
}

// Close is a no-op; it lets the memory store stand in for the SQL stores.
func (db *DB) Close() error { return nil }

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.PreferenceRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- AccountRepository ---

// GetByUsername retrieves an account by exact username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new account.
func (db *DB) Create(ctx context.Context, username, secretHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:         db.accountIDCounter,
		Username:   username,
		SecretHash: secretHash,
		CreatedAt:  time.Now().UTC(),
	}
	db.accounts = append(db.accounts, a)
	cp := *a
	return &cp, nil
}

// --- WeightRepository ---

// InsertEntry appends a weight entry.
func (db *DB) InsertEntry(ctx context.Context, accountID int64, day string, kg float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	db.entries = append(db.entries, domain.WeightEntry{
		ID:        db.entryIDCounter,
		AccountID: accountID,
		Day:       day,
		Kg:        kg,
	})
	return db.entryIDCounter, nil
}

// UpdateEntry replaces day and value of one entry.
func (db *DB) UpdateEntry(ctx context.Context, accountID, id int64, day string, kg float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		e := &db.entries[i]
		if e.ID == id && e.AccountID == accountID {
			e.Day = day
			e.Kg = kg
			return 1, nil
		}
	}
	return 0, nil
}

// DeleteEntry removes one entry.
func (db *DB) DeleteEntry(ctx context.Context, accountID, id int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id && e.AccountID == accountID {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ListEntries returns a fresh copy of the account's entries, newest day first.
func (db *DB) ListEntries(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, len(db.entries))
	for _, e := range db.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day > result[j].Day
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// --- PreferenceRepository ---

// GetPreferences returns the stored preferences of an account.
func (db *DB) GetPreferences(ctx context.Context, accountID int64) (domain.Preferences, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.prefs[accountID]
	var out domain.Preferences
	if p.DisplayUnit != nil {
		u := *p.DisplayUnit
		out.DisplayUnit = &u
	}
	if p.GoalKg != nil {
		g := *p.GoalKg
		out.GoalKg = &g
	}
	return out, nil
}

// SetDisplayUnit stores the display unit of an account.
func (db *DB) SetDisplayUnit(ctx context.Context, accountID int64, unit domain.Unit) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.prefs[accountID]
	p.DisplayUnit = &unit
	db.prefs[accountID] = p
	return nil
}

// SetGoal stores the goal of an account in kilograms.
func (db *DB) SetGoal(ctx context.Context, accountID int64, kg float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.prefs[accountID]
	p.GoalKg = &kg
	db.prefs[accountID] = p
	return nil
}

// ClearGoal removes the goal of an account.
func (db *DB) ClearGoal(ctx context.Context, accountID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.prefs[accountID]
	p.GoalKg = nil
	db.prefs[accountID] = p
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	var n int64
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
