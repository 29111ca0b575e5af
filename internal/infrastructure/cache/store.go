// Package cache provides the key-value stores used for entitlement lookups.
package cache

import (
	"context"
	"time"
)

// Store is a string key-value cache with per-key expiry
type Store interface {
	// Get returns the value and true, or false when the key is missing or expired
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
