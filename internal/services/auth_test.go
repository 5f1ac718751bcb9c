package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store/memory"
)

func newAuthService() *AuthService {
	return NewAuthService(memory.New(), auth.NewTokenManager("test-secret", time.Hour))
}

func TestSignupAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, "Dana", "dana@campus.edu", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.PasswordHash)

	got, token, err := svc.Login(ctx, "dana@campus.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Empty(t, got.PasswordHash)
	assert.NotEmpty(t, token)

	actor, err := auth.NewTokenManager("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, actor.UserID)
	assert.Equal(t, "Dana", actor.Name)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Dana", "dana@campus.edu", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Other Dana", "dana@campus.edu", "password9")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "", "dana@campus.edu", "hunter22")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Signup(ctx, "Dana", "dana@campus.edu", "short")
	assert.ErrorIs(t, err, model.ErrValidation)
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginFailuresShareOneErrorKind(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Dana", "dana@campus.edu", "hunter22")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "ghost@campus.edu", "hunter22")
	_, _, errWrongPw := svc.Login(ctx, "dana@campus.edu", "not-the-password")

	assert.ErrorIs(t, errUnknown, model.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPw, model.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestPasswordsStoredHashed(t *testing.T) {
	s := memory.New()
	svc := NewAuthService(s, auth.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Dana", "dana@campus.edu", "hunter22")
	require.NoError(t, err)

	stored, err := s.Users().GetByEmail(ctx, "dana@campus.edu")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "hunter22"))
}
