package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SnapshotCache implements ports.SnapshotCache using Redis.
// Entries carry an absolute TTL; reads never refresh it.
type SnapshotCache struct {
	client *goredis.Client
	prefix string
}

// NewSnapshotCache creates a new Redis-backed snapshot cache.
func NewSnapshotCache(client *goredis.Client) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		prefix: "snapshot:",
	}
}

// Get retrieves a cached snapshot by key.
// Returns nil, nil if the key does not exist.
func (c *SnapshotCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis snapshot get: %w", err)
	}
	return val, nil
}

// Set stores a snapshot with TTL.
func (c *SnapshotCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis snapshot set: %w", err)
	}
	return nil
}

// Remove drops a snapshot. Missing keys are not an error.
func (c *SnapshotCache) Remove(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("redis snapshot del: %w", err)
	}
	return nil
}
