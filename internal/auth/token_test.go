package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(&model.User{ID: "u1", Name: "Dana"})
	require.NoError(t, err)

	actor, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", actor.UserID)
	assert.Equal(t, "Dana", actor.Name)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(&model.User{ID: "u1", Name: "Dana"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Issue(&model.User{ID: "u1", Name: "Dana"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
