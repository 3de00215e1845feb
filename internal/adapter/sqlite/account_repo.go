package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

// GetByUsername retrieves an account by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	var created int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, secret_hash, created_at FROM accounts WHERE username = ?",
		username,
	).Scan(&a.ID, &a.Username, &a.SecretHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt = time.Unix(created, 0).UTC()
	return &a, nil
}

// Create creates a new account.
func (d *DB) Create(ctx context.Context, username, secretHash string) (*domain.Account, error) {
	now := time.Now().UTC()
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO accounts (username, secret_hash, created_at) VALUES (?, ?, ?)",
		username, secretHash, now.Unix(),
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateUsername
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:         id,
		Username:   username,
		SecretHash: secretHash,
		CreatedAt:  now.Truncate(time.Second),
	}, nil
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (account_id, token, expires_at, created_at) VALUES (?, ?, ?, ?)",
		accountID, token, expiresAt.Unix(), time.Now().Unix(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	var expires, created int64
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, account_id, expires_at, created_at FROM sessions WHERE token = ?",
		token,
	).Scan(&s.Token, &s.AccountID, &expires, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = time.Unix(expires, 0).UTC()
	s.CreatedAt = time.Unix(created, 0).UTC()
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
