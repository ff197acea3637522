package scenarios_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
	"github.com/mohammed-shakir/triangle-grid/internal/scenarios"
	_ "github.com/mohammed-shakir/triangle-grid/internal/scenarios/baseline"
	_ "github.com/mohammed-shakir/triangle-grid/internal/scenarios/cache"
)

func TestRegistry_FallbackToBaseline(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.FromEnv()

	h, err := scenarios.New("totally-unknown", cfg, logger, scenarios.Deps{})
	if err != nil || h == nil {
		t.Fatalf("expected fallback to baseline, got err=%v h=%v", err, h)
	}
	if _, ok, err := h.Cell(context.Background(), model.RowA, 1); !ok || err != nil {
		t.Fatalf("fallback handler cannot serve A1: ok=%v err=%v", ok, err)
	}
}

func TestRegistry_CacheWithoutRedis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.FromEnv()
	cfg.Cache.RedisAddr = ""

	h, err := scenarios.New("cache", cfg, logger, scenarios.Deps{})
	if err != nil {
		t.Fatalf("cache scenario without redis: %v", err)
	}
	if c, ok := h.(io.Closer); ok {
		if err := c.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
}

func TestRegistry_CacheRedisUnreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.FromEnv()
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	if _, err := scenarios.New("cache", cfg, logger, scenarios.Deps{}); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
