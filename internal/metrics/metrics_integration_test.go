package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
)

func assertHasMetricLine(t *testing.T, body, metric string, wantLabels ...string) {
	t.Helper()
	for ln := range strings.SplitSeq(body, "\n") {
		if !strings.HasPrefix(ln, metric+"{") {
			continue
		}
		ok := true
		for _, s := range wantLabels {
			if !strings.Contains(ln, s) {
				ok = false
				break
			}
		}
		if ok && (len(ln) > 0 && ln[len(ln)-1] >= '0' && ln[len(ln)-1] <= '9') {
			return
		}
	}
	t.Fatalf("expected a %s line with labels %v; got:\n%s", metric, wantLabels, body)
}

func Test_AppMetrics_CustomRegistry_Smoke(t *testing.T) {
	p := Init(Config{Build: BuildInfo{Version: "test"}})
	observability.Init(p.Registerer(), true)
	observability.SetScenario("cache")
	t.Cleanup(func() { observability.SetScenario("") })

	observability.ObserveHTTP("GET", "/api/triangle/{row}/{column}", 200, 0.0004)
	observability.IncLookup("cell", true)
	observability.IncLookup("locate", false)
	observability.IncCacheHit("lru")
	observability.IncCacheMiss("redis")
	observability.ObserveCacheOp("redis", "get", nil, 0.002)
	observability.IncEventsDropped()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	mustContain := []string{
		`http_request_duration_seconds_bucket`,
		`cache_op_duration_seconds_count{op="get",result="ok",tier="redis"} `,
		`cache_results_total{outcome="hit",scenario="cache",tier="lru"} `,
		`cache_results_total{outcome="miss",scenario="cache",tier="redis"} `,
		`lookup_events_dropped_total `,
	}
	for _, s := range mustContain {
		if !strings.Contains(body, s) {
			t.Fatalf("expected metrics to contain %q;\n---\n%s", s, body)
		}
	}

	assertHasMetricLine(t, body, "grid_lookups_total",
		`kind="cell"`, `outcome="valid"`, `scenario="cache"`)
	assertHasMetricLine(t, body, "grid_lookups_total",
		`kind="locate"`, `outcome="invalid"`, `scenario="cache"`)
	assertHasMetricLine(t, body, "app_build_info",
		`version="test"`)
}
