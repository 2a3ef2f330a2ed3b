package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskhub/backend/internal/auth"
	"github.com/taskhub/backend/internal/model"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, id, email, passwordHash string) (*model.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newAuthService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	store := newFakeUserStore()
	return NewAuthService(store, auth.NewPasswordHasher(4), tokens), store
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, _ := newAuthService(t)

	user, token, err := svc.Register(context.Background(), "user@example.com", "SecurePass123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.Email != "user@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "SecurePass123" {
		t.Fatalf("password must not be stored in plaintext")
	}

	tokens, _ := auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), "HS256", time.Hour)
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("token subject must be the user id: got %q want %q", claims.Subject, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "dup@example.com", "SecurePass123"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if _, _, err := svc.Register(ctx, "dup@example.com", "OtherPass456"); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if len(store.byEmail) != 1 {
		t.Fatalf("duplicate registration must not write a row, have %d users", len(store.byEmail))
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	if _, _, err := svc.Register(context.Background(), "user@example.com", "short"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "user@example.com", "SecurePass123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, token, err := svc.Login(ctx, "user@example.com", "SecurePass123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("unexpected login result: user=%+v token=%q", user, token)
	}
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "known@example.com", "SecurePass123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "unknown@example.com", "SecurePass123")
	_, _, wrongPassErr := svc.Login(ctx, "known@example.com", "WrongPass123")

	if unknownErr != ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongPassErr != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr != wrongPassErr {
		t.Fatalf("the two failures must be identical")
	}
}
