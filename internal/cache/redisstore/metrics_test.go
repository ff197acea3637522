package redisstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
	"github.com/mohammed-shakir/triangle-grid/internal/metrics"
)

func Test_RedisMetrics_Get_HitMiss(t *testing.T) {
	p := metrics.Init(metrics.Config{})
	observability.Init(p.Registerer(), true)
	observability.SetScenario("redis-metrics")
	t.Cleanup(func() { observability.SetScenario("") })

	c, _ := newMini(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k:hit", []byte("v"), time.Minute)
	_, _, _ = c.Get(ctx, "k:hit")
	_, _, _ = c.Get(ctx, "k:miss")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, req)
	body := rr.Body.String()

	if !strings.Contains(body, `cache_op_duration_seconds_count{op="get",result="ok",tier="redis"} `) {
		t.Fatalf("expected redis get timings\n%s", body)
	}
	if !strings.Contains(body, `cache_results_total{outcome="hit",scenario="redis-metrics",tier="redis"} 1`) {
		t.Fatalf("expected 1 hit\n%s", body)
	}
	if !strings.Contains(body, `cache_results_total{outcome="miss",scenario="redis-metrics",tier="redis"} 1`) {
		t.Fatalf("expected 1 miss\n%s", body)
	}
}
