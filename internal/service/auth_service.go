package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/observability"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/security"
)

var (
	ErrAuthInvalidUsername    = errors.New("username must be between 3 and 120 characters")
	ErrAuthWeakPassword       = errors.New("password must be at least 8 characters")
	ErrAuthUsernameTaken      = errors.New("username already taken")
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
)

type AuthServiceImpl struct {
	users     repository.UserRepository
	tokens    *security.JWTManager
	accessTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens *security.JWTManager, accessTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, accessTTL: accessTTL}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 120 {
		observability.RecordAuthEvent(ctx, "register", "bad_request")
		return nil, ErrAuthInvalidUsername
	}
	if len(password) < 8 {
		observability.RecordAuthEvent(ctx, "register", "bad_request")
		return nil, ErrAuthWeakPassword
	}

	if _, err := s.users.FindByUsername(username); err == nil {
		observability.RecordAuthEvent(ctx, "register", "conflict")
		return nil, ErrAuthUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		observability.RecordAuthEvent(ctx, "register", "error")
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		observability.RecordAuthEvent(ctx, "register", "error")
		return nil, err
	}
	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(user); err != nil {
		observability.RecordAuthEvent(ctx, "register", "error")
		return nil, err
	}
	observability.RecordAuthEvent(ctx, "register", "success")
	return user, nil
}

// Login verifies credentials and returns a signed access token. Unknown user
// and wrong password collapse into the same error so the response does not
// leak which usernames exist.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
			return "", ErrAuthInvalidCredentials
		}
		observability.RecordAuthEvent(ctx, "login", "error")
		return "", err
	}
	if err := security.VerifyPassword(user.PasswordHash, password); err != nil {
		observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
		return "", ErrAuthInvalidCredentials
	}

	token, err := s.tokens.SignAccessToken(user.ID, s.accessTTL)
	if err != nil {
		observability.RecordAuthEvent(ctx, "login", "error")
		return "", err
	}
	observability.RecordAuthEvent(ctx, "login", "success")
	return token, nil
}
