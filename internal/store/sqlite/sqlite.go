// Package sqlite implements the store on a local SQLite file via
// modernc.org/sqlite (no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
)

// New opens the database at path, ensures the schema, and returns a store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires a store over an existing connection (used by the factory
// and by tests).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &sqlStore{db: db}, nil
}

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Users() store.Users                 { return &users{db: s.db} }
func (s *sqlStore) Items() store.Items                 { return &items{db: s.db} }
func (s *sqlStore) Messages() store.Messages           { return &messages{db: s.db} }
func (s *sqlStore) Notifications() store.Notifications { return &notifications{db: s.db} }
func (s *sqlStore) Reviews() store.Reviews             { return &reviews{db: s.db} }

// HealthPing implements health.Pinger.
func (s *sqlStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	out := *in
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if out.JoinedAt.IsZero() {
		out.JoinedAt = time.Now().UTC()
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, out.Email).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, fmt.Errorf("email %s: %w", out.Email, model.ErrConflict)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, bio, avatar, joined_at) VALUES (?,?,?,?,?,?,?)`,
		out.ID, out.Name, out.Email, out.PasswordHash, out.Bio, out.Avatar, out.JoinedAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *users) Get(ctx context.Context, id string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, bio, avatar, joined_at FROM users WHERE id = ?`, id)
	return scanUser(row, "user "+id)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, bio, avatar, joined_at FROM users WHERE email = ?`, email)
	return scanUser(row, "user email "+email)
}

func (u *users) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if patch.Name != nil {
		if _, err := u.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, *patch.Name, id); err != nil {
			return nil, err
		}
	}
	if patch.Bio != nil {
		if _, err := u.db.ExecContext(ctx, `UPDATE users SET bio = ? WHERE id = ?`, *patch.Bio, id); err != nil {
			return nil, err
		}
	}
	return u.Get(ctx, id)
}

func scanUser(row *sql.Row, what string) (*model.User, error) {
	var out model.User
	err := row.Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash, &out.Bio, &out.Avatar, &out.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Items ---

type items struct{ db *sql.DB }

func (s *items) Create(ctx context.Context, in *model.Item) (*model.Item, error) {
	out := *in
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	if out.Status == "" {
		out.Status = model.ItemAvailable
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	images, err := json.Marshal(out.Images)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO items (id, title, description, price, category, type, condition, status, images, user_id, created_at) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		out.ID, out.Title, out.Description, out.Price, out.Category, out.Type, out.Condition, out.Status, string(images), out.UserID, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *items) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, price, category, type, condition, status, images, user_id, created_at FROM items WHERE id = ?`, id)
	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	return it, err
}

func (s *items) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, error) {
	q := `SELECT id, title, description, price, category, type, condition, status, images, user_id, created_at FROM items WHERE 1=1`
	var args []interface{}
	if !f.IncludeSold {
		q += ` AND status != ?`
		args = append(args, model.ItemSold)
	}
	if f.OwnerID != "" {
		q += ` AND user_id = ?`
		args = append(args, f.OwnerID)
	}
	if f.Category != "" {
		q += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Type != "" {
		q += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.Search != "" {
		q += ` AND (LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(description) LIKE '%' || LOWER(?) || '%')`
		args = append(args, f.Search, f.Search)
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Item{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *items) UpdateStatus(ctx context.Context, id, status string) (*model.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM items WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if current != model.ItemAvailable && status == model.ItemAvailable {
		return nil, fmt.Errorf("item %s is %s and cannot revert to available: %w", id, current, model.ErrValidation)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET status = ? WHERE id = ?`, status, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func scanItem(scan func(dest ...interface{}) error) (*model.Item, error) {
	var it model.Item
	var images string
	if err := scan(&it.ID, &it.Title, &it.Description, &it.Price, &it.Category, &it.Type, &it.Condition, &it.Status, &images, &it.UserID, &it.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &it.Images); err != nil {
		return nil, err
	}
	return &it, nil
}

// --- Messages ---

type messages struct{ db *sql.DB }

func (s *messages) Create(ctx context.Context, in *model.Message) (*model.Message, error) {
	out := *in
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO messages (id, sender_id, receiver_id, item_id, content, created_at, read) VALUES (?,?,?,?,?,?,?)`,
		out.ID, out.SenderID, out.ReceiverID, out.ItemID, out.Content, out.CreatedAt, out.Read)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *messages) ListBetween(ctx context.Context, userA, userB string) ([]*model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sender_id, receiver_id, item_id, content, created_at, read FROM messages
        WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?) ORDER BY id`,
		userA, userB, userB, userA)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (s *messages) ListByUser(ctx context.Context, userID string) ([]*model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sender_id, receiver_id, item_id, content, created_at, read FROM messages
        WHERE sender_id = ? OR receiver_id = ? ORDER BY id`, userID, userID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func collectMessages(rows *sql.Rows) ([]*model.Message, error) {
	defer func() { _ = rows.Close() }()
	var out []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ItemID, &m.Content, &m.CreatedAt, &m.Read); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Notifications ---

type notifications struct{ db *sql.DB }

func (s *notifications) Create(ctx context.Context, in *model.Notification) (*model.Notification, error) {
	out := *in
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO notifications (id, user_id, type, title, message, read, created_at, link) VALUES (?,?,?,?,?,?,?,?)`,
		out.ID, out.UserID, out.Type, out.Title, out.Message, out.Read, out.CreatedAt, out.Link)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *notifications) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, type, title, message, read, created_at, link FROM notifications
        WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt, &n.Link); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *notifications) SetRead(ctx context.Context, id string, read bool) (*model.Notification, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = ? WHERE id = ?`, read, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("notification %s: %w", id, model.ErrNotFound)
	}
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, type, title, message, read, created_at, link FROM notifications WHERE id = ?`, id)
	var out model.Notification
	if err := row.Scan(&out.ID, &out.UserID, &out.Type, &out.Title, &out.Message, &out.Read, &out.CreatedAt, &out.Link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (s *notifications) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE user_id = ?`, userID)
	return err
}

// --- Reviews ---

type reviews struct{ db *sql.DB }

func (s *reviews) Create(ctx context.Context, in *model.Review) (*model.Review, error) {
	out := *in
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO reviews (id, reviewer_id, reviewer_name, reviewed_user_id, rating, comment, created_at) VALUES (?,?,?,?,?,?,?)`,
		out.ID, out.ReviewerID, out.ReviewerName, out.ReviewedUserID, out.Rating, out.Comment, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reviews) ListByReviewedUser(ctx context.Context, userID string) ([]*model.Review, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, reviewer_id, reviewer_name, reviewed_user_id, rating, comment, created_at FROM reviews
        WHERE reviewed_user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Review
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.ReviewerID, &r.ReviewerName, &r.ReviewedUserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
