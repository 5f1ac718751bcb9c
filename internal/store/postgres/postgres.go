// Package postgres implements the store on PostgreSQL via the pgx stdlib
// driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, ensures the schema, and returns a store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires a store over an existing connection.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &pgStore{db: db}, nil
}

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            TEXT PRIMARY KEY,
        name          TEXT NOT NULL,
        email         TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        bio           TEXT NOT NULL DEFAULT '',
        avatar        TEXT NOT NULL DEFAULT '',
        joined_at     TIMESTAMPTZ NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS items (
        id          TEXT PRIMARY KEY,
        title       TEXT NOT NULL,
        description TEXT NOT NULL,
        price       DOUBLE PRECISION NOT NULL,
        category    TEXT NOT NULL,
        type        TEXT NOT NULL,
        condition   TEXT NOT NULL,
        status      TEXT NOT NULL,
        images      JSONB NOT NULL DEFAULT '[]',
        user_id     TEXT NOT NULL,
        created_at  TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS messages (
        id          TEXT PRIMARY KEY,
        sender_id   TEXT NOT NULL,
        receiver_id TEXT NOT NULL,
        item_id     TEXT NOT NULL DEFAULT '',
        content     TEXT NOT NULL,
        created_at  TIMESTAMPTZ NOT NULL,
        read        BOOLEAN NOT NULL DEFAULT FALSE
    )`,
	`CREATE TABLE IF NOT EXISTS notifications (
        id         TEXT PRIMARY KEY,
        user_id    TEXT NOT NULL,
        type       TEXT NOT NULL,
        title      TEXT NOT NULL,
        message    TEXT NOT NULL,
        read       BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL,
        link       TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS reviews (
        id               TEXT PRIMARY KEY,
        reviewer_id      TEXT NOT NULL,
        reviewer_name    TEXT NOT NULL,
        reviewed_user_id TEXT NOT NULL,
        rating           INTEGER NOT NULL,
        comment          TEXT NOT NULL,
        created_at       TIMESTAMPTZ NOT NULL
    )`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users                 { return &users{db: s.db} }
func (s *pgStore) Items() store.Items                 { return &items{db: s.db} }
func (s *pgStore) Messages() store.Messages           { return &messages{db: s.db} }
func (s *pgStore) Notifications() store.Notifications { return &notifications{db: s.db} }
func (s *pgStore) Reviews() store.Reviews             { return &reviews{db: s.db} }

// HealthPing implements health.Pinger.
func (s *pgStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

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
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE LOWER(email) = LOWER($1)`, out.Email).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, fmt.Errorf("email %s: %w", out.Email, model.ErrConflict)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, bio, avatar, joined_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
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
	row := u.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, bio, avatar, joined_at FROM users WHERE id = $1`, id)
	return scanUser(row, "user "+id)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, bio, avatar, joined_at FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row, "user email "+email)
}

func (u *users) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if patch.Name != nil {
		if _, err := u.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, *patch.Name, id); err != nil {
			return nil, err
		}
	}
	if patch.Bio != nil {
		if _, err := u.db.ExecContext(ctx, `UPDATE users SET bio = $1 WHERE id = $2`, *patch.Bio, id); err != nil {
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
	_, err = s.db.ExecContext(ctx, `INSERT INTO items (id, title, description, price, category, type, condition, status, images, user_id, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		out.ID, out.Title, out.Description, out.Price, out.Category, out.Type, out.Condition, out.Status, string(images), out.UserID, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *items) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, price, category, type, condition, status, images, user_id, created_at FROM items WHERE id = $1`, id)
	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	return it, err
}

func (s *items) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, error) {
	q := `SELECT id, title, description, price, category, type, condition, status, images, user_id, created_at FROM items WHERE TRUE`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if !f.IncludeSold {
		q += ` AND status != ` + arg(model.ItemSold)
	}
	if f.OwnerID != "" {
		q += ` AND user_id = ` + arg(f.OwnerID)
	}
	if f.Category != "" {
		q += ` AND category = ` + arg(f.Category)
	}
	if f.Type != "" {
		q += ` AND type = ` + arg(f.Type)
	}
	if f.Search != "" {
		p := arg(f.Search)
		q += ` AND (title ILIKE '%' || ` + p + ` || '%' OR description ILIKE '%' || ` + p + ` || '%')`
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
	err = tx.QueryRowContext(ctx, `SELECT status FROM items WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if current != model.ItemAvailable && status == model.ItemAvailable {
		return nil, fmt.Errorf("item %s is %s and cannot revert to available: %w", id, current, model.ErrValidation)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET status = $1 WHERE id = $2`, status, id); err != nil {
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
	_, err := s.db.ExecContext(ctx, `INSERT INTO messages (id, sender_id, receiver_id, item_id, content, created_at, read) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		out.ID, out.SenderID, out.ReceiverID, out.ItemID, out.Content, out.CreatedAt, out.Read)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *messages) ListBetween(ctx context.Context, userA, userB string) ([]*model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sender_id, receiver_id, item_id, content, created_at, read FROM messages
        WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1) ORDER BY id`,
		userA, userB)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (s *messages) ListByUser(ctx context.Context, userID string) ([]*model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sender_id, receiver_id, item_id, content, created_at, read FROM messages
        WHERE sender_id = $1 OR receiver_id = $1 ORDER BY id`, userID)
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
	_, err := s.db.ExecContext(ctx, `INSERT INTO notifications (id, user_id, type, title, message, read, created_at, link) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		out.ID, out.UserID, out.Type, out.Title, out.Message, out.Read, out.CreatedAt, out.Link)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *notifications) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, type, title, message, read, created_at, link FROM notifications
        WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
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
	row := s.db.QueryRowContext(ctx, `UPDATE notifications SET read = $1 WHERE id = $2
        RETURNING id, user_id, type, title, message, read, created_at, link`, read, id)
	var out model.Notification
	err := row.Scan(&out.ID, &out.UserID, &out.Type, &out.Title, &out.Message, &out.Read, &out.CreatedAt, &out.Link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *notifications) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1`, userID)
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
	_, err := s.db.ExecContext(ctx, `INSERT INTO reviews (id, reviewer_id, reviewer_name, reviewed_user_id, rating, comment, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		out.ID, out.ReviewerID, out.ReviewerName, out.ReviewedUserID, out.Rating, out.Comment, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reviews) ListByReviewedUser(ctx context.Context, userID string) ([]*model.Review, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, reviewer_id, reviewer_name, reviewed_user_id, rating, comment, created_at FROM reviews
        WHERE reviewed_user_id = $1 ORDER BY id`, userID)
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
