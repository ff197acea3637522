package lrustore

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGetEvict(t *testing.T) {
	s := New(2, time.Minute)
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "b", []byte("2"), 0)
	_ = s.Set(ctx, "c", []byte("3"), 0)

	if s.Len() != 2 {
		t.Fatalf("len=%d want 2", s.Len())
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("oldest entry should have been evicted")
	}
	if v, ok, err := s.Get(ctx, "c"); err != nil || !ok || string(v) != "3" {
		t.Fatalf("Get c = %q %v %v", v, ok, err)
	}
}

func TestStore_Expiry(t *testing.T) {
	s := New(8, 20*time.Millisecond)
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte("v"), 0)
	time.Sleep(60 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestStore_DefaultSize(t *testing.T) {
	s := New(0, time.Minute)
	if s.Name() != "lru" || s.Ping(context.Background()) != nil {
		t.Fatalf("unexpected name/ping")
	}
}
