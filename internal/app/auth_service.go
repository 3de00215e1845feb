// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"weighttrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

const sessionTTL = 24 * time.Hour

// SecretHasher hashes and verifies account secrets.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
}

// BcryptHasher is the default SecretHasher.
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of secret.
func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether secret matches hash.
func (h BcryptHasher) Verify(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// AuthService handles account creation, authentication and sessions.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	hasher   SecretHasher
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, hasher SecretHasher) *AuthService {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		now:      time.Now,
	}
}

// CreateAccount stores a new account under the trimmed username and returns
// its id. A taken username fails with domain.ErrDuplicateUsername.
func (s *AuthService) CreateAccount(ctx context.Context, username, secret string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return 0, domain.ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return 0, err
	}

	account, err := s.accounts.Create(ctx, username, hash)
	if err != nil {
		return 0, err
	}
	return account.ID, nil
}

// Authenticate returns the id of the account matching username and secret.
func (s *AuthService) Authenticate(ctx context.Context, username, secret string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return 0, domain.ErrMissingCredentials
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if account == nil || !s.hasher.Verify(account.SecretHash, secret) {
		return 0, domain.ErrInvalidCredentials
	}
	return account.ID, nil
}

// Login authenticates an account and creates a session.
func (s *AuthService) Login(ctx context.Context, username, secret string) (string, error) {
	accountID, err := s.Authenticate(ctx, username, secret)
	if err != nil {
		return "", err
	}
	return s.StartSession(ctx, accountID)
}

// StartSession creates a session for an already authenticated account.
func (s *AuthService) StartSession(ctx context.Context, accountID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Create(ctx, accountID, token, s.now().Add(sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession returns the account id owning a live session.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (int64, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return 0, ErrSessionExpired
	}
	return session.AccountID, nil
}

// PurgeExpiredSessions removes every expired session and returns how many
// were deleted.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
