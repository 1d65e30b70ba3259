package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS waste_items (
    seq            INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id        TEXT NOT NULL UNIQUE,
    user_email     TEXT NOT NULL,
    category       TEXT NOT NULL,
    image_filename TEXT NOT NULL,
    thumb_filename TEXT,
    qr_filename    TEXT NOT NULL,
    points         INTEGER NOT NULL CHECK (points >= 0),
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
