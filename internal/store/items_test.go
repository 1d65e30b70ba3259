package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/erazemk/plasticwallet/internal/db"
	"github.com/erazemk/plasticwallet/internal/model"
)

// backends returns a fresh instance of every ItemStore implementation.
func backends(t *testing.T) map[string]ItemStore {
	t.Helper()

	mr := miniredis.RunT(t)
	rs, err := NewRedisItems(context.Background(), mr.Addr(), "")
	if err != nil {
		t.Fatalf("NewRedisItems: %v", err)
	}
	t.Cleanup(func() { rs.Close() })

	return map[string]ItemStore{
		"memory": NewMemoryItems(),
		"sqlite": NewSQLiteItems(db.NewTestDB(t)),
		"redis":  rs,
	}
}

func newItem(id, email, category string) model.WasteItem {
	return model.WasteItem{
		ItemID:        id,
		UserEmail:     email,
		Category:      category,
		ImageFilename: id + "-photo.jpg",
		QRFilename:    id + ".png",
		Points:        model.CategoryPoints(category),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestAppendAndQuery(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.Append(ctx, newItem("a1", "a@x.com", model.CategoryPlasticCan)); err != nil {
				t.Fatalf("Append: %v", err)
			}
			if err := s.Append(ctx, newItem("b1", "b@x.com", model.CategoryPlasticBag)); err != nil {
				t.Fatalf("Append: %v", err)
			}
			if err := s.Append(ctx, newItem("a2", "a@x.com", model.CategoryPlasticBottle)); err != nil {
				t.Fatalf("Append: %v", err)
			}

			items, err := s.Query(ctx, ByEmail("a@x.com"))
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			// Insertion order is preserved.
			if items[0].ItemID != "a1" || items[1].ItemID != "a2" {
				t.Errorf("expected [a1 a2], got [%s %s]", items[0].ItemID, items[1].ItemID)
			}
			if items[0].Points != 9 {
				t.Errorf("expected 9 points, got %d", items[0].Points)
			}
			if items[1].QRFilename != "a2.png" {
				t.Errorf("expected qr filename 'a2.png', got %q", items[1].QRFilename)
			}

			all, err := s.Query(ctx, nil)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("expected 3 items total, got %d", len(all))
			}

			n, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != 3 {
				t.Errorf("expected count 3, got %d", n)
			}
		})
	}
}

func TestQueryNoMatch(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Append(ctx, newItem("a1", "a@x.com", model.CategoryPlasticCan)); err != nil {
				t.Fatalf("Append: %v", err)
			}

			items, err := s.Query(ctx, ByEmail("nobody@x.com"))
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("expected no items, got %d", len(items))
			}
		})
	}
}

func TestThumbnailRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			item := newItem("t1", "a@x.com", model.CategoryOtherPlastic)
			item.ThumbFilename = "thumbs/t1.jpg"
			if err := s.Append(ctx, item); err != nil {
				t.Fatalf("Append: %v", err)
			}

			items, err := s.Query(ctx, nil)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(items) != 1 || items[0].ThumbFilename != "thumbs/t1.jpg" {
				t.Errorf("expected thumbnail to round-trip, got %+v", items)
			}
		})
	}
}

func TestConcurrentAppend(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const writers = 8
			const perWriter = 10

			var wg sync.WaitGroup
			for w := 0; w < writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWriter; i++ {
						id := fmt.Sprintf("w%d-%d", w, i)
						if err := s.Append(ctx, newItem(id, "a@x.com", model.CategoryPlasticBag)); err != nil {
							t.Errorf("Append %s: %v", id, err)
						}
					}
				}(w)
			}
			wg.Wait()

			n, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != writers*perWriter {
				t.Errorf("expected %d items, got %d", writers*perWriter, n)
			}
			items, err := s.Query(ctx, ByEmail("a@x.com"))
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if model.SumPoints(items) != writers*perWriter*8 {
				t.Errorf("expected %d points, got %d", writers*perWriter*8, model.SumPoints(items))
			}
		})
	}
}

func TestPing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Ping(context.Background()); err != nil {
				t.Errorf("Ping: %v", err)
			}
		})
	}
}

func TestNewRedisItemsUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisItems(context.Background(), addr, ""); err == nil {
		t.Error("expected error connecting to closed redis")
	}
}
