package store

import (
	"context"
	"sync"

	"github.com/erazemk/plasticwallet/internal/model"
)

// MemoryItems keeps items in a mutex-guarded slice. Contents are lost when
// the process exits.
type MemoryItems struct {
	mu    sync.RWMutex
	items []model.WasteItem
}

// NewMemoryItems returns an empty in-memory repository.
func NewMemoryItems() *MemoryItems {
	return &MemoryItems{}
}

func (m *MemoryItems) Append(_ context.Context, item model.WasteItem) error {
	m.mu.Lock()
	m.items = append(m.items, item)
	m.mu.Unlock()
	return nil
}

func (m *MemoryItems) Query(_ context.Context, match func(model.WasteItem) bool) ([]model.WasteItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.WasteItem
	for _, item := range m.items {
		if match == nil || match(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryItems) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

func (m *MemoryItems) Ping(_ context.Context) error { return nil }

func (m *MemoryItems) Close() error { return nil }
