package store

import (
	"context"

	"github.com/campustrade/campustrade/internal/model"
)

// Store exposes the persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, sqlite,
// postgres). A missing record is reported as model.ErrNotFound, distinct from
// validation failures.
type Store interface {
	Users() Users
	Items() Items
	Messages() Messages
	Notifications() Notifications
	Reviews() Reviews
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
}

type Items interface {
	Create(ctx context.Context, it *model.Item) (*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, f model.ItemFilter) ([]*model.Item, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Item, error)
}

type Messages interface {
	Create(ctx context.Context, m *model.Message) (*model.Message, error)
	ListBetween(ctx context.Context, userA, userB string) ([]*model.Message, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Message, error)
}

type Notifications interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Notification, error)
	SetRead(ctx context.Context, id string, read bool) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type Reviews interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	ListByReviewedUser(ctx context.Context, userID string) ([]*model.Review, error)
}
