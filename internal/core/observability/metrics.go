// Package observability holds the process-wide Prometheus collectors.
package observability

import (
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var scenarioLabel atomic.Value

func init() {
	scenarioLabel.Store("baseline")
	Init(prometheus.DefaultRegisterer, true)
}

func SetScenario(s string) {
	if s == "" {
		s = "baseline"
	}
	scenarioLabel.Store(s)
}

func getScenario() string {
	if s, ok := scenarioLabel.Load().(string); ok && s != "" {
		return s
	}
	return "baseline"
}

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status", "scenario"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100us to ~0.8s
		},
		[]string{"method", "route", "status", "scenario"},
	)

	gridLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_lookups_total",
			Help: "Grid lookups by kind (cell, locate, all) and outcome (valid, invalid).",
		},
		[]string{"kind", "outcome", "scenario"},
	)

	cacheOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_op_duration_seconds",
			Help:    "Duration of cache backend operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
		[]string{"tier", "op", "result"},
	)

	cacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_results_total",
			Help: "Cache results by tier and outcome.",
		},
		[]string{"tier", "outcome", "scenario"},
	)

	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_events_dropped_total",
			Help: "Lookup events dropped because the publish queue was full or the producer failed.",
		},
	)

	enabled atomic.Bool
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		httpRequestsTotal,
		httpRequestDurationSeconds,
		gridLookups,
		cacheOpDurationSeconds,
		cacheResults,
		eventsDropped,
	}
}

// Init registers the collectors on reg. Already-registered collectors are
// tolerated so Init can move them to a dedicated registry at startup.
func Init(reg prometheus.Registerer, on bool) {
	enabled.Store(on)
	if reg == nil || !on {
		return
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
}

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	if !enabled.Load() {
		return
	}
	s := getScenario()
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st, s).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st, s).Observe(durationSeconds)
}

func IncLookup(kind string, valid bool) {
	if !enabled.Load() {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	gridLookups.WithLabelValues(kind, outcome, getScenario()).Inc()
}

func ObserveCacheOp(tier, op string, err error, durationSeconds float64) {
	if !enabled.Load() {
		return
	}
	res := "ok"
	if err != nil {
		res = "error"
	}
	cacheOpDurationSeconds.WithLabelValues(tier, op, res).Observe(durationSeconds)
}

func IncCacheHit(tier string) {
	if !enabled.Load() {
		return
	}
	cacheResults.WithLabelValues(tier, "hit", getScenario()).Inc()
}

func IncCacheMiss(tier string) {
	if !enabled.Load() {
		return
	}
	cacheResults.WithLabelValues(tier, "miss", getScenario()).Inc()
}

func IncEventsDropped() {
	if !enabled.Load() {
		return
	}
	eventsDropped.Inc()
}
