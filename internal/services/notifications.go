package services

import (
	"context"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// NotificationService handles the pull-based notification feed. Nothing in
// the system creates notifications as a side effect; creation is an explicit
// call.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	return s.store.Notifications().ListByUser(ctx, userID)
}

func (s *NotificationService) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if err := validate.CreateNotification(n); err != nil {
		return nil, err
	}
	rec := *n
	rec.Read = false
	return s.store.Notifications().Create(ctx, &rec)
}

// SetRead updates a single notification's read flag. Re-applying the same
// value is a no-op in effect.
func (s *NotificationService) SetRead(ctx context.Context, id string, read bool) (*model.Notification, error) {
	return s.store.Notifications().SetRead(ctx, id, read)
}

// MarkAllRead marks every notification of the user read. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return err
	}
	return s.store.Notifications().MarkAllRead(ctx, userID)
}
