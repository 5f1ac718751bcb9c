package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store/memory"
)

func TestCreateReview(t *testing.T) {
	s := memory.New()
	svc := NewReviewService(s)
	ctx := context.Background()

	r, err := svc.Create(ctx, "u2", "Sam", "u1", 5, "Quick handoff, item as described")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Sam", r.ReviewerName)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := s.Reviews().ListByReviewedUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCreateReviewRequiresActor(t *testing.T) {
	svc := NewReviewService(memory.New())

	_, err := svc.Create(context.Background(), "", "", "u1", 5, "nice")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestCreateReviewEnforcesRatingBounds(t *testing.T) {
	svc := NewReviewService(memory.New())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u2", "Sam", "u1", 0, "bad rating")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, "u2", "Sam", "u1", 6, "bad rating")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, "u2", "Sam", "", 4, "no target")
	assert.ErrorIs(t, err, model.ErrValidation)
}

// Nothing prevents the same reviewer from reviewing twice; both records land.
func TestDuplicateReviewsAllowed(t *testing.T) {
	s := memory.New()
	svc := NewReviewService(s)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u2", "Sam", "u1", 4, "first")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "Sam", "u1", 2, "changed my mind")
	require.NoError(t, err)

	got, err := s.Reviews().ListByReviewedUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
