package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/plasticwallet/internal/model"
)

// DefaultRedisKey is the list holding all items.
const DefaultRedisKey = "plasticwallet:items"

// RedisItems keeps items as JSON entries of a single Redis list. RPUSH keeps
// insertion order across concurrent writers.
type RedisItems struct {
	client *redis.Client
	key    string
}

// NewRedisItems connects to addr and verifies the connection.
func NewRedisItems(ctx context.Context, addr, key string) (*RedisItems, error) {
	if key == "" {
		key = DefaultRedisKey
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisItems{client: client, key: key}, nil
}

func (r *RedisItems) Append(ctx context.Context, item model.WasteItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding item: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("appending item: %w", err)
	}
	return nil
}

func (r *RedisItems) Query(ctx context.Context, match func(model.WasteItem) bool) ([]model.WasteItem, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	var items []model.WasteItem
	for _, entry := range raw {
		var item model.WasteItem
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		if match == nil || match(item) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *RedisItems) Count(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return int(n), nil
}

func (r *RedisItems) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisItems) Close() error {
	return r.client.Close()
}
