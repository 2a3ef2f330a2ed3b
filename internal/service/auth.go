package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhub/backend/internal/auth"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxEmailLength    = 255
)

// Sentinel errors consumed by the handler layer. Handlers translate
// them into the HTTP error taxonomy; nothing below the handlers ever
// writes a response.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
)

type UserStore interface {
	CreateUser(ctx context.Context, id, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	users  UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewAuthService(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and signs its first token. The duplicate
// check runs before any write; the unique constraint on users.email
// closes the race between concurrent registrations of the same address.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !db.IsNoRows(err) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(ctx, uuid.NewString(), email, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and signs a token. Unknown email and wrong
// password collapse into the one ErrInvalidCredentials outcome so the
// response never reveals whether the address is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func validateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength || !strings.Contains(email, "@") {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}
