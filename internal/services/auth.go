package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// AuthService handles signup and login.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenManager
}

func NewAuthService(s store.Store, tm *auth.TokenManager) *AuthService {
	return &AuthService{store: s, tokens: tm}
}

// Signup creates an account. The credential is stored only as a bcrypt hash
// and the returned record carries no hash.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := validate.Signup(name, email, password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Users().Create(ctx, &model.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if err := validate.Login(email, password); err != nil {
		return nil, "", err
	}
	invalid := fmt.Errorf("invalid email or password: %w", model.ErrUnauthorized)

	u, err := s.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", invalid
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", invalid
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	u.PasswordHash = ""
	return u, token, nil
}
