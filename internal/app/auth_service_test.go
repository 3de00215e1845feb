package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockAccountRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.Account, error)
	createFn        func(ctx context.Context, username, secretHash string) (*domain.Account, error)
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) Create(ctx context.Context, username, secretHash string) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, secretHash)
	}
	return &domain.Account{ID: 1, Username: username, SecretHash: secretHash}, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	getByTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn     func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

var fastHasher = BcryptHasher{Cost: bcrypt.MinCost}

func newMemoryAuth() *AuthService {
	db := memory.New()
	return NewAuthService(db, db.NewSessionRepo(), fastHasher)
}

func TestAuthService_CreateThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAuth()

	pairs := []struct{ user, secret string }{
		{"alice", "pw1"},
		{"bob", "correct horse battery staple"},
		{"Alice", "pw1"},
		{"  carol ", " spaced secret "},
	}
	for _, p := range pairs {
		id, err := svc.CreateAccount(ctx, p.user, p.secret)
		if err != nil {
			t.Fatalf("CreateAccount(%q): %v", p.user, err)
		}
		got, err := svc.Authenticate(ctx, p.user, p.secret)
		if err != nil {
			t.Fatalf("Authenticate(%q): %v", p.user, err)
		}
		if got != id {
			t.Errorf("Authenticate(%q) = %d; want %d", p.user, got, id)
		}
	}
}

func TestAuthService_FirstAccountIsOne(t *testing.T) {
	id, err := newMemoryAuth().CreateAccount(context.Background(), "alice", "pw1")
	if err != nil || id != 1 {
		t.Fatalf("CreateAccount = %d, %v; want 1", id, err)
	}
}

func TestAuthService_CreateAccount_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAuth()

	if _, err := svc.CreateAccount(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	for _, name := range []string{"alice", " alice", "alice\t"} {
		if _, err := svc.CreateAccount(ctx, name, "different"); !errors.Is(err, domain.ErrDuplicateUsername) {
			t.Errorf("CreateAccount(%q) err = %v; want ErrDuplicateUsername", name, err)
		}
	}
	// The original secret still works.
	if _, err := svc.Authenticate(ctx, "alice", "pw1"); err != nil {
		t.Errorf("original account changed: %v", err)
	}
}

func TestAuthService_CreateAccount_TrimsAndHashes(t *testing.T) {
	var gotUser, gotHash string
	users := &mockAccountRepo{
		createFn: func(_ context.Context, username, secretHash string) (*domain.Account, error) {
			gotUser, gotHash = username, secretHash
			return &domain.Account{ID: 7}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, fastHasher)

	id, err := svc.CreateAccount(context.Background(), "  dana  ", "pw")
	if err != nil || id != 7 {
		t.Fatalf("CreateAccount = %d, %v", id, err)
	}
	if gotUser != "dana" {
		t.Errorf("expected trimmed username, got %q", gotUser)
	}
	if gotHash == "pw" || bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("pw")) != nil {
		t.Errorf("expected a bcrypt hash, got %q", gotHash)
	}
}

func TestAuthService_MissingCredentials(t *testing.T) {
	svc := NewAuthService(&mockAccountRepo{}, &mockSessionRepo{}, fastHasher)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "   ", "pw"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAuth()
	_, _ = svc.CreateAccount(ctx, "alice", "pw1")

	tests := []struct{ user, secret string }{
		{"alice", "pw2"},
		{"alice", "pw1 "},
		{"Alice", "pw1"},
		{"alic", "pw1"},
		{"nobody", "pw1"},
	}
	for _, tc := range tests {
		if _, err := svc.Authenticate(ctx, tc.user, tc.secret); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) err = %v; want ErrInvalidCredentials", tc.user, tc.secret, err)
		}
	}
}

func TestAuthService_Authenticate_RepoError(t *testing.T) {
	users := &mockAccountRepo{
		getByUsernameFn: func(context.Context, string) (*domain.Account, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, fastHasher)
	_, err := svc.Authenticate(context.Background(), "alice", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAuth()
	id, _ := svc.CreateAccount(ctx, "alice", "pw1")

	token, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	got, err := svc.ValidateSession(ctx, token)
	if err != nil || got != id {
		t.Fatalf("ValidateSession = %d, %v; want %d", got, err, id)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.ValidateSession(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	ctx := context.Background()
	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(context.Context, string) (*domain.Session, error) {
			return &domain.Session{Token: "t", AccountID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	svc := NewAuthService(&mockAccountRepo{}, sessions, fastHasher)

	if _, err := svc.ValidateSession(ctx, "t"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}
