// Package store holds the waste item repository and persisted settings.
package store

import (
	"context"

	"github.com/erazemk/plasticwallet/internal/model"
)

// ItemStore is the append-only waste item repository shared by all sessions.
// Implementations must be safe for concurrent use and must return items in
// insertion order.
type ItemStore interface {
	// Append stores a new item at the end of the repository.
	Append(ctx context.Context, item model.WasteItem) error

	// Query returns every item for which match returns true, in insertion
	// order. A nil match returns all items.
	Query(ctx context.Context, match func(model.WasteItem) bool) ([]model.WasteItem, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// ByEmail matches items submitted under the given email.
func ByEmail(email string) func(model.WasteItem) bool {
	return func(item model.WasteItem) bool {
		return item.UserEmail == email
	}
}
