package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// GetByUsername retrieves an account by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, secret_hash, created_at FROM accounts WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.SecretHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new account.
func (d *DB) Create(ctx context.Context, username, secretHash string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (username, secret_hash, created_at) VALUES ($1, $2, $3) RETURNING id, username, secret_hash, created_at",
		username, secretHash, time.Now().UTC(),
	).Scan(&a.ID, &a.Username, &a.SecretHash, &a.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, domain.ErrDuplicateUsername
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
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
		"INSERT INTO sessions (account_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		accountID, token, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, account_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.AccountID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
