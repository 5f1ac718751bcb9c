package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store/memory"
)

func seedItems(t *testing.T, svc *ItemService) (desk, book *model.Item) {
	t.Helper()
	ctx := context.Background()
	var err error
	desk, err = svc.Create(ctx, &model.Item{
		Title: "Standing Desk", Description: "Adjustable, minor scratches",
		Price: 50, Category: "furniture", UserID: "u1",
	})
	require.NoError(t, err)
	book, err = svc.Create(ctx, &model.Item{
		Title: "Calculus Textbook", Description: "No markings, latest edition",
		Price: 45, Category: "books", Type: model.TypeSale, UserID: "u2",
	})
	require.NoError(t, err)
	return desk, book
}

func TestCreateDefaults(t *testing.T) {
	svc := NewItemService(memory.New())
	desk, _ := seedItems(t, svc)

	assert.Equal(t, model.ItemAvailable, desk.Status)
	assert.Equal(t, model.TypeSale, desk.Type)
	assert.Equal(t, "good", desk.Condition)
	assert.Equal(t, []string{}, desk.Images)
	assert.NotEmpty(t, desk.ID)
	assert.False(t, desk.CreatedAt.IsZero())
}

func TestSearchMatchesTitleOrDescription(t *testing.T) {
	svc := NewItemService(memory.New())
	seedItems(t, svc)
	ctx := context.Background()

	// Title hit, case-insensitive.
	got, err := svc.List(ctx, ListItemsQuery{Search: "dEsK"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Standing Desk", got[0].Title)

	// Description hit.
	got, err = svc.List(ctx, ListItemsQuery{Search: "markings"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Calculus Textbook", got[0].Title)

	// Absent from both excludes.
	got, err = svc.List(ctx, ListItemsQuery{Search: "skateboard"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCategoryAndTypeFilters(t *testing.T) {
	svc := NewItemService(memory.New())
	seedItems(t, svc)
	ctx := context.Background()

	got, err := svc.List(ctx, ListItemsQuery{Category: "books"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Calculus Textbook", got[0].Title)

	// "all" disables the filter.
	got, err = svc.List(ctx, ListItemsQuery{Category: "all", Type: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSoldItemsExcludedFromDefaultList(t *testing.T) {
	svc := NewItemService(memory.New())
	desk, _ := seedItems(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, desk.ID, model.ItemSold)
	require.NoError(t, err)

	got, err := svc.List(ctx, ListItemsQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Calculus Textbook", got[0].Title)

	// Owner view keeps the sold listing visible.
	got, err = svc.List(ctx, ListItemsQuery{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.ItemSold, got[0].Status)
}

func TestStatusTransitionOneDirectional(t *testing.T) {
	svc := NewItemService(memory.New())
	desk, _ := seedItems(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, desk.ID, model.ItemSold)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, desk.ID, model.ItemAvailable)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateStatus(ctx, desk.ID, "archived")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateStatus(ctx, "missing", model.ItemSold)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateRejectsInvalidItems(t *testing.T) {
	svc := NewItemService(memory.New())
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Item{Description: "no title", Price: 5, Category: "misc", UserID: "u1"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, &model.Item{Title: "Free couch", Description: "d", Price: -10, Category: "furniture", UserID: "u1"})
	assert.ErrorIs(t, err, model.ErrValidation)
}
