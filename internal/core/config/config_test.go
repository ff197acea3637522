package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "SCENARIO", "REDIS_ADDR", "CACHE_TTL", "EVENTS_ENABLED", "KAFKA_BROKERS", "CACHE_REDIS_POOL_SIZE", "CACHE_REDIS_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Addr != ":8090" || cfg.Scenario != "baseline" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Cache.RedisAddr != "" || cfg.Cache.TTL != 10*time.Minute || cfg.Cache.LRUSize != 256 {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Cache.RedisPoolSize != 16 || cfg.Cache.RedisTimeout != 500*time.Millisecond {
		t.Fatalf("unexpected redis defaults: pool=%d timeout=%s", cfg.Cache.RedisPoolSize, cfg.Cache.RedisTimeout)
	}
	if cfg.Events.Enabled {
		t.Fatalf("events must default to disabled")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SCENARIO", "cache")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_LRU_SIZE", "not-a-number")
	t.Setenv("EVENTS_ENABLED", "yes")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("CACHE_REDIS_POOL_SIZE", "4")
	t.Setenv("CACHE_REDIS_TIMEOUT", "250ms")

	cfg := FromEnv()
	if cfg.Scenario != "cache" || cfg.Cache.RedisAddr != "redis:6379" || cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Cache.LRUSize != 256 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.Cache.LRUSize)
	}
	if cfg.Cache.RedisPoolSize != 4 || cfg.Cache.RedisTimeout != 250*time.Millisecond {
		t.Fatalf("redis overrides not applied: %+v", cfg.Cache)
	}
	if !cfg.Events.Enabled {
		t.Fatalf("EVENTS_ENABLED=yes should enable events")
	}
	if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.Events.Brokers, want) {
		t.Fatalf("brokers=%v want %v", cfg.Events.Brokers, want)
	}
}
