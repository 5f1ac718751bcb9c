package sqlite

import "database/sql"

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            TEXT PRIMARY KEY,
        name          TEXT NOT NULL,
        email         TEXT NOT NULL COLLATE NOCASE UNIQUE,
        password_hash TEXT NOT NULL,
        bio           TEXT NOT NULL DEFAULT '',
        avatar        TEXT NOT NULL DEFAULT '',
        joined_at     TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS items (
        id          TEXT PRIMARY KEY,
        title       TEXT NOT NULL,
        description TEXT NOT NULL,
        price       REAL NOT NULL,
        category    TEXT NOT NULL,
        type        TEXT NOT NULL,
        condition   TEXT NOT NULL,
        status      TEXT NOT NULL,
        images      TEXT NOT NULL DEFAULT '[]',
        user_id     TEXT NOT NULL,
        created_at  TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS messages (
        id          TEXT PRIMARY KEY,
        sender_id   TEXT NOT NULL,
        receiver_id TEXT NOT NULL,
        item_id     TEXT NOT NULL DEFAULT '',
        content     TEXT NOT NULL,
        created_at  TIMESTAMP NOT NULL,
        read        INTEGER NOT NULL DEFAULT 0
    )`,
	`CREATE TABLE IF NOT EXISTS notifications (
        id         TEXT PRIMARY KEY,
        user_id    TEXT NOT NULL,
        type       TEXT NOT NULL,
        title      TEXT NOT NULL,
        message    TEXT NOT NULL,
        read       INTEGER NOT NULL DEFAULT 0,
        created_at TIMESTAMP NOT NULL,
        link       TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS reviews (
        id               TEXT PRIMARY KEY,
        reviewer_id      TEXT NOT NULL,
        reviewer_name    TEXT NOT NULL,
        reviewed_user_id TEXT NOT NULL,
        rating           INTEGER NOT NULL,
        comment          TEXT NOT NULL,
        created_at       TIMESTAMP NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_reviewed ON reviews(reviewed_user_id)`,
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
