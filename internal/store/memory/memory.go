// Package memory provides the in-process store driver. Records live in plain
// slices guarded by one mutex per collection, so a check-then-insert sequence
// (signup email uniqueness) is atomic under concurrent requests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		users:         &users{},
		items:         &items{},
		messages:      &messages{},
		notifications: &notifications{},
		reviews:       &reviews{},
	}
}

type memStore struct {
	users         *users
	items         *items
	messages      *messages
	notifications *notifications
	reviews       *reviews
}

func (s *memStore) Users() store.Users                 { return s.users }
func (s *memStore) Items() store.Items                 { return s.items }
func (s *memStore) Messages() store.Messages           { return s.messages }
func (s *memStore) Notifications() store.Notifications { return s.notifications }
func (s *memStore) Reviews() store.Reviews             { return s.reviews }

// HealthPing implements health.Pinger. The in-memory driver is always
// reachable.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- Users ---

type users struct {
	mu   sync.RWMutex
	recs []model.User
}

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.recs {
		if strings.EqualFold(u.recs[i].Email, in.Email) {
			return nil, fmt.Errorf("email %s: %w", in.Email, model.ErrConflict)
		}
	}
	rec := *in
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	if rec.JoinedAt.IsZero() {
		rec.JoinedAt = time.Now().UTC()
	}
	u.recs = append(u.recs, rec)
	out := rec
	return &out, nil
}

func (u *users) Get(ctx context.Context, id string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for i := range u.recs {
		if u.recs[i].ID == id {
			out := u.recs[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for i := range u.recs {
		if strings.EqualFold(u.recs[i].Email, email) {
			out := u.recs[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user email %s: %w", email, model.ErrNotFound)
}

func (u *users) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.recs {
		if u.recs[i].ID != id {
			continue
		}
		if patch.Name != nil {
			u.recs[i].Name = *patch.Name
		}
		if patch.Bio != nil {
			u.recs[i].Bio = *patch.Bio
		}
		out := u.recs[i]
		return &out, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
}

// --- Items ---

type items struct {
	mu   sync.RWMutex
	recs []model.Item
}

func (s *items) Create(ctx context.Context, in *model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *in
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = model.ItemAvailable
	}
	rec.Images = append([]string(nil), in.Images...)
	s.recs = append(s.recs, rec)
	return copyItem(&rec), nil
}

func (s *items) Get(ctx context.Context, id string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.recs {
		if s.recs[i].ID == id {
			return copyItem(&s.recs[i]), nil
		}
	}
	return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
}

func (s *items) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Item, 0, len(s.recs))
	for i := range s.recs {
		if matchItem(&s.recs[i], f) {
			out = append(out, copyItem(&s.recs[i]))
		}
	}
	return out, nil
}

func (s *items) UpdateStatus(ctx context.Context, id, status string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].ID != id {
			continue
		}
		if s.recs[i].Status != model.ItemAvailable && status == model.ItemAvailable {
			return nil, fmt.Errorf("item %s is %s and cannot revert to available: %w", id, s.recs[i].Status, model.ErrValidation)
		}
		s.recs[i].Status = status
		return copyItem(&s.recs[i]), nil
	}
	return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
}

func matchItem(it *model.Item, f model.ItemFilter) bool {
	if !f.IncludeSold && it.Status == model.ItemSold {
		return false
	}
	if f.OwnerID != "" && it.UserID != f.OwnerID {
		return false
	}
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.Type != "" && it.Type != f.Type {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			return false
		}
	}
	return true
}

func copyItem(it *model.Item) *model.Item {
	out := *it
	out.Images = append([]string(nil), it.Images...)
	return &out
}

// --- Messages ---

type messages struct {
	mu   sync.RWMutex
	recs []model.Message
}

func (s *messages) Create(ctx context.Context, in *model.Message) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *in
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.recs = append(s.recs, rec)
	out := rec
	return &out, nil
}

func (s *messages) ListBetween(ctx context.Context, userA, userB string) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Message
	for i := range s.recs {
		m := &s.recs[i]
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *messages) ListByUser(ctx context.Context, userID string) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Message
	for i := range s.recs {
		m := &s.recs[i]
		if m.SenderID == userID || m.ReceiverID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- Notifications ---

type notifications struct {
	mu   sync.RWMutex
	recs []model.Notification
}

func (s *notifications) Create(ctx context.Context, in *model.Notification) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *in
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.recs = append(s.recs, rec)
	out := rec
	return &out, nil
}

func (s *notifications) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Notification
	for i := range s.recs {
		if s.recs[i].UserID == userID {
			cp := s.recs[i]
			out = append(out, &cp)
		}
	}
	// Newest first. ULIDs break ties within the same timestamp.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *notifications) SetRead(ctx context.Context, id string, read bool) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].ID == id {
			s.recs[i].Read = read
			out := s.recs[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("notification %s: %w", id, model.ErrNotFound)
}

func (s *notifications) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].UserID == userID {
			s.recs[i].Read = true
		}
	}
	return nil
}

// --- Reviews ---

type reviews struct {
	mu   sync.RWMutex
	recs []model.Review
}

func (s *reviews) Create(ctx context.Context, in *model.Review) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *in
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.recs = append(s.recs, rec)
	out := rec
	return &out, nil
}

func (s *reviews) ListByReviewedUser(ctx context.Context, userID string) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Review
	for i := range s.recs {
		if s.recs[i].ReviewedUserID == userID {
			cp := s.recs[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
