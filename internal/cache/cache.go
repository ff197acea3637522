// Package cache defines the response cache used by the cache scenario.
package cache

import (
	"context"
	"time"
)

// Store is one cache tier. A miss is (nil, false, nil).
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}
