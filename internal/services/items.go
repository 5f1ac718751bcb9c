package services

import (
	"context"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// ItemService handles listing CRUD and search.
type ItemService struct {
	store store.Store
}

func NewItemService(s store.Store) *ItemService { return &ItemService{store: s} }

// ListItemsQuery mirrors the item list query parameters. The literal "all"
// means no filter for category and type.
type ListItemsQuery struct {
	UserID   string
	Category string
	Type     string
	Search   string
}

// List returns filtered listings. Sold items are excluded unless the query
// names an owner, so sellers still see their full history.
func (s *ItemService) List(ctx context.Context, q ListItemsQuery) ([]*model.Item, error) {
	f := model.ItemFilter{
		OwnerID:     q.UserID,
		Search:      q.Search,
		IncludeSold: q.UserID != "",
	}
	if q.Category != "" && q.Category != "all" {
		f.Category = q.Category
	}
	if q.Type != "" && q.Type != "all" {
		f.Type = q.Type
	}
	return s.store.Items().List(ctx, f)
}

func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	return s.store.Items().Get(ctx, id)
}

// Create validates and stores a new listing. Defaults match the original
// submission form: type sale, condition good, no images, status available.
func (s *ItemService) Create(ctx context.Context, it *model.Item) (*model.Item, error) {
	if err := validate.CreateItem(it); err != nil {
		return nil, err
	}
	rec := *it
	if rec.Type == "" {
		rec.Type = model.TypeSale
	}
	if rec.Condition == "" {
		rec.Condition = "good"
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}
	rec.Status = model.ItemAvailable
	return s.store.Items().Create(ctx, &rec)
}

// UpdateStatus flips the listing status. The store rejects transitions back
// to available. The caller is not checked against the owner; the HTTP
// contract carries no actor on this operation.
func (s *ItemService) UpdateStatus(ctx context.Context, id, status string) (*model.Item, error) {
	if err := validate.ItemStatus(status); err != nil {
		return nil, err
	}
	return s.store.Items().UpdateStatus(ctx, id, status)
}
