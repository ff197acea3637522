// Package lrustore is the in-process tier of the response cache.
package lrustore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
)

const tier = "lru"

// Store holds at most size entries, each for at most ttl. The per-call ttl
// passed to Set is ignored; the tier has a single expiry.
type Store struct {
	lru *expirable.LRU[string, []byte]
}

func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 256
	}
	return &Store{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *Store) Name() string { return tier }

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, ok := s.lru.Get(key)
	observability.ObserveCacheOp(tier, "get", nil, time.Since(start).Seconds())
	if !ok {
		observability.IncCacheMiss(tier)
		return nil, false, nil
	}
	observability.IncCacheHit(tier)
	return v, true, nil
}

func (s *Store) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	start := time.Now()
	s.lru.Add(key, val)
	observability.ObserveCacheOp(tier, "set", nil, time.Since(start).Seconds())
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Len() int { return s.lru.Len() }
