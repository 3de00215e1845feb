// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account is the single owner of a weight log.
type Account struct {
	ID         int64
	Username   string
	SecretHash string
	CreatedAt  time.Time
}

// Session represents an active login session.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AccountRepository defines the port for account persistence operations.
// Create must return ErrDuplicateUsername when the username is taken.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Create(ctx context.Context, username, secretHash string) (*Account, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
