package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/plasticwallet/internal/model"
)

// SQLiteItems stores items in the waste_items table.
type SQLiteItems struct {
	DB *sql.DB
}

// NewSQLiteItems wraps an open database whose schema is already in place.
func NewSQLiteItems(db *sql.DB) *SQLiteItems {
	return &SQLiteItems{DB: db}
}

// Append inserts a new item.
func (s *SQLiteItems) Append(ctx context.Context, item model.WasteItem) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO waste_items (item_id, user_email, category, image_filename, thumb_filename, qr_filename, points, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ItemID, item.UserEmail, item.Category, item.ImageFilename, item.ThumbFilename,
		item.QRFilename, item.Points, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("appending item: %w", err)
	}
	return nil
}

// Query scans the whole table in insertion order and filters with match.
func (s *SQLiteItems) Query(ctx context.Context, match func(model.WasteItem) bool) ([]model.WasteItem, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT item_id, user_email, category, image_filename, thumb_filename, qr_filename, points, created_at
		 FROM waste_items ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.WasteItem
	for rows.Next() {
		var item model.WasteItem
		var thumb sql.NullString
		if err := rows.Scan(&item.ItemID, &item.UserEmail, &item.Category, &item.ImageFilename,
			&thumb, &item.QRFilename, &item.Points, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.ThumbFilename = thumb.String
		if match == nil || match(item) {
			items = append(items, item)
		}
	}
	return items, rows.Err()
}

// Count returns the number of stored items.
func (s *SQLiteItems) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM waste_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

func (s *SQLiteItems) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLiteItems) Close() error {
	return s.DB.Close()
}
