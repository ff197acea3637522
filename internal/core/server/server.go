// Package server wires the HTTP surface and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/health"
	middleware "github.com/mohammed-shakir/triangle-grid/internal/core/middleware"
	"github.com/mohammed-shakir/triangle-grid/internal/core/router"
)

type alwaysReady struct{}

func (alwaysReady) Readiness(context.Context) (bool, []string) { return true, nil }

// NewHandler builds the full route tree. metrics may be nil to serve the
// default Prometheus registry.
func NewHandler(logger *slog.Logger, handler router.TriangleHandler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())
	r.Use(router.CaseInsensitiveBase)

	var rr health.ReadinessReporter = alwaysReady{}
	if rep, ok := handler.(health.ReadinessReporter); ok {
		rr = rep
	}
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(rr))
	r.Method(http.MethodGet, "/metrics", metrics)
	router.Mount(r, logger, handler)
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, h http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
