package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/store/storetest"
)

func TestMemoryStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

// Two goroutines racing to sign up the same email must produce exactly one
// account.
func TestConcurrentSignupSameEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Users().Create(ctx, &model.User{Name: "Racer", Email: "race@campus.test", PasswordHash: "x"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, model.ErrConflict)
		}
	}
	require.Equal(t, 1, created)
}

// Mutating a returned record must not leak into the store.
func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	it, err := s.Items().Create(ctx, &model.Item{
		Title: "Bike", Description: "Road bike", Price: 120,
		Category: "sports", Type: model.TypeSale, UserID: "u1",
		Images: []string{"/bike.png"},
	})
	require.NoError(t, err)

	it.Title = "Tampered"
	it.Images[0] = "/tampered.png"

	got, err := s.Items().Get(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, "Bike", got.Title)
	require.Equal(t, []string{"/bike.png"}, got.Images)
}
