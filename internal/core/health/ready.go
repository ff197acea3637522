package health

import (
	"context"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// ReadinessReporter reports whether the lookup path can serve and which
// backing tiers are up.
type ReadinessReporter interface {
	Readiness(ctx context.Context) (ready bool, tiers []string)
}

func Readiness(rr ReadinessReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type resp struct {
			Status string   `json:"status"`
			Tiers  []string `json:"tiers,omitempty"`
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		ready, tiers := rr.Readiness(ctx)
		out := resp{Status: "not_ready", Tiers: tiers}
		if ready {
			out.Status = "ready"
		}
		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
