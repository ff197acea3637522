package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsHandler_Smoke(t *testing.T) {
	ObserveHTTP("GET", "/api/triangle/{row}/{column}", 200, 0.001)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatalf("metrics payload did not contain expected metric names; got:\n%s", body)
	}
}

func TestIncLookup_CountsByOutcome(t *testing.T) {
	SetScenario("obs-test")
	t.Cleanup(func() { SetScenario("") })

	IncLookup("cell", true)
	IncLookup("cell", true)
	IncLookup("locate", false)

	if got := testutil.ToFloat64(gridLookups.WithLabelValues("cell", "valid", "obs-test")); got != 2 {
		t.Fatalf("cell/valid=%v want 2", got)
	}
	if got := testutil.ToFloat64(gridLookups.WithLabelValues("locate", "invalid", "obs-test")); got != 1 {
		t.Fatalf("locate/invalid=%v want 1", got)
	}
}

func TestInit_DedicatedRegistryTolerated(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg, true)
	Init(reg, true)

	IncCacheHit("lru")
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "cache_results_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cache_results_total not gathered from dedicated registry")
	}
}
