package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique fixtures so the suite can run against shared databases.
	suffix := uuid.New().String()
	sellerEmail := "seller-" + suffix + "@campus.test"
	buyerEmail := "buyer-" + suffix + "@campus.test"

	// Users
	seller, err := s.Users().Create(ctx, &model.User{Name: "Seller", Email: sellerEmail, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser seller: %v", err)
	}
	if seller.ID == "" || seller.JoinedAt.IsZero() {
		t.Fatalf("CreateUser: id/joinedAt not assigned: %+v", seller)
	}
	buyer, err := s.Users().Create(ctx, &model.User{Name: "Buyer", Email: buyerEmail, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser buyer: %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{Name: "Dup", Email: sellerEmail, PasswordHash: "x"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
	if got, err := s.Users().Get(ctx, seller.ID); err != nil || got.Email != sellerEmail {
		t.Fatalf("GetUser: got=%+v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, sellerEmail); err != nil || got.ID != seller.ID {
		t.Fatalf("GetUserByEmail: got=%+v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing user should be not-found, got %v", err)
	}
	newBio := "Trades textbooks"
	if got, err := s.Users().Update(ctx, seller.ID, model.UserPatch{Bio: &newBio}); err != nil || got.Bio != newBio || got.Name != "Seller" {
		t.Fatalf("UpdateUser: got=%+v err=%v", got, err)
	}

	// Items
	desk, err := s.Items().Create(ctx, &model.Item{
		Title: "Standing Desk", Description: "Adjustable height", Price: 50,
		Category: "furniture", Type: model.TypeSale, Condition: "good", UserID: seller.ID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if desk.ID == "" || desk.Status != model.ItemAvailable || desk.CreatedAt.IsZero() {
		t.Fatalf("CreateItem defaults: %+v", desk)
	}
	if got, err := s.Items().Get(ctx, desk.ID); err != nil || got.Title != "Standing Desk" {
		t.Fatalf("GetItem: got=%+v err=%v", got, err)
	}
	if _, err := s.Items().Get(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing item should be not-found, got %v", err)
	}
	if lst, err := s.Items().List(ctx, model.ItemFilter{OwnerID: seller.ID, IncludeSold: true}); err != nil || len(lst) != 1 {
		t.Fatalf("ListItems by owner: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Items().List(ctx, model.ItemFilter{OwnerID: seller.ID, Category: "books", IncludeSold: true}); err != nil || len(lst) != 0 {
		t.Fatalf("ListItems wrong category: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Items().List(ctx, model.ItemFilter{OwnerID: seller.ID, Search: "ADJUSTABLE", IncludeSold: true}); err != nil || len(lst) != 1 {
		t.Fatalf("ListItems search: n=%d err=%v", len(lst), err)
	}

	sold, err := s.Items().UpdateStatus(ctx, desk.ID, model.ItemSold)
	if err != nil || sold.Status != model.ItemSold {
		t.Fatalf("UpdateStatus: got=%+v err=%v", sold, err)
	}
	if lst, err := s.Items().List(ctx, model.ItemFilter{OwnerID: seller.ID}); err != nil || len(lst) != 0 {
		t.Fatalf("sold item should be excluded without IncludeSold: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Items().List(ctx, model.ItemFilter{OwnerID: seller.ID, IncludeSold: true}); err != nil || len(lst) != 1 {
		t.Fatalf("sold item should appear with IncludeSold: n=%d err=%v", len(lst), err)
	}
	if _, err := s.Items().UpdateStatus(ctx, desk.ID, model.ItemAvailable); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("reverting sold item should fail validation, got %v", err)
	}
	if _, err := s.Items().UpdateStatus(ctx, "missing", model.ItemSold); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing item status update should be not-found, got %v", err)
	}

	// Messages
	m1, err := s.Messages().Create(ctx, &model.Message{SenderID: buyer.ID, ReceiverID: seller.ID, ItemID: desk.ID, Content: "Is this available?"})
	if err != nil {
		t.Fatalf("CreateMessage m1: %v", err)
	}
	if _, err := s.Messages().Create(ctx, &model.Message{SenderID: seller.ID, ReceiverID: buyer.ID, Content: "It is."}); err != nil {
		t.Fatalf("CreateMessage m2: %v", err)
	}
	both, err := s.Messages().ListBetween(ctx, seller.ID, buyer.ID)
	if err != nil || len(both) != 2 {
		t.Fatalf("ListBetween: n=%d err=%v", len(both), err)
	}
	if both[0].ID != m1.ID {
		t.Fatalf("ListBetween should preserve insertion order, first=%s want=%s", both[0].ID, m1.ID)
	}
	flipped, err := s.Messages().ListBetween(ctx, buyer.ID, seller.ID)
	if err != nil || len(flipped) != 2 {
		t.Fatalf("ListBetween flipped: n=%d err=%v", len(flipped), err)
	}
	if mine, err := s.Messages().ListByUser(ctx, buyer.ID); err != nil || len(mine) != 2 {
		t.Fatalf("ListByUser: n=%d err=%v", len(mine), err)
	}

	// Notifications
	n1, err := s.Notifications().Create(ctx, &model.Notification{UserID: seller.ID, Type: model.NotifMessage, Title: "New Message", Message: "About your desk"})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if _, err := s.Notifications().Create(ctx, &model.Notification{UserID: seller.ID, Type: model.NotifSale, Title: "Item Sold", Message: "Desk sold"}); err != nil {
		t.Fatalf("CreateNotification n2: %v", err)
	}
	ns, err := s.Notifications().ListByUser(ctx, seller.ID)
	if err != nil || len(ns) != 2 {
		t.Fatalf("ListNotifications: n=%d err=%v", len(ns), err)
	}
	if ns[0].CreatedAt.Before(ns[1].CreatedAt) {
		t.Fatalf("notifications should sort newest first")
	}
	if got, err := s.Notifications().SetRead(ctx, n1.ID, true); err != nil || !got.Read {
		t.Fatalf("SetRead: got=%+v err=%v", got, err)
	}
	// Idempotent re-apply.
	if got, err := s.Notifications().SetRead(ctx, n1.ID, true); err != nil || !got.Read {
		t.Fatalf("SetRead repeat: got=%+v err=%v", got, err)
	}
	if err := s.Notifications().MarkAllRead(ctx, seller.ID); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	ns, err = s.Notifications().ListByUser(ctx, seller.ID)
	if err != nil {
		t.Fatalf("ListNotifications after MarkAllRead: %v", err)
	}
	for _, n := range ns {
		if !n.Read {
			t.Fatalf("MarkAllRead left unread notification %s", n.ID)
		}
	}
	if _, err := s.Notifications().SetRead(ctx, "missing", true); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing notification should be not-found, got %v", err)
	}

	// Reviews
	if _, err := s.Reviews().Create(ctx, &model.Review{ReviewerID: buyer.ID, ReviewerName: "Buyer", ReviewedUserID: seller.ID, Rating: 5, Comment: "Great seller"}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if rs, err := s.Reviews().ListByReviewedUser(ctx, seller.ID); err != nil || len(rs) != 1 || rs[0].Rating != 5 {
		t.Fatalf("ListReviews: n=%d err=%v", len(rs), err)
	}
	if rs, err := s.Reviews().ListByReviewedUser(ctx, buyer.ID); err != nil || len(rs) != 0 {
		t.Fatalf("ListReviews other user: n=%d err=%v", len(rs), err)
	}
}
