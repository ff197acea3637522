package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
	"github.com/mohammed-shakir/triangle-grid/internal/core/server"
	"github.com/mohammed-shakir/triangle-grid/internal/hitevents"
	"github.com/mohammed-shakir/triangle-grid/internal/logger"
	gridmapper "github.com/mohammed-shakir/triangle-grid/internal/mapper/grid"
	"github.com/mohammed-shakir/triangle-grid/internal/metrics"
	"github.com/mohammed-shakir/triangle-grid/internal/scenarios"
	_ "github.com/mohammed-shakir/triangle-grid/internal/scenarios/baseline"
	_ "github.com/mohammed-shakir/triangle-grid/internal/scenarios/cache"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func run() int {
	// overriding scenario via flag
	scenarioFlag := flag.String("scenario", "", "scenario name (baseline, cache)")
	flag.Parse()

	cfg := config.FromEnv()
	if *scenarioFlag != "" {
		cfg.Scenario = strings.TrimSpace(*scenarioFlag)
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		SampleN:   envInt("LOG_SAMPLE_N", 0),
		Scenario:  cfg.Scenario,
		Component: "trigrid",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsEnabled := os.Getenv("METRICS_ENABLED") == "true"
	p := metrics.Init(metrics.Config{
		Enabled: metricsEnabled,
		Addr:    getenv("METRICS_ADDR", ":9090"),
		Path:    getenv("METRICS_PATH", "/metrics"),
		Build: metrics.BuildInfo{
			Version:   Version,
			Revision:  os.Getenv("BUILD_REVISION"),
			Branch:    os.Getenv("BUILD_BRANCH"),
			BuildDate: os.Getenv("BUILD_DATE"),
		},
	})
	observability.Init(p.Registerer(), true)
	observability.SetScenario(cfg.Scenario)

	appLog.Info("starting trigrid",
		"addr", cfg.Addr,
		"version", Version,
		"scenario", cfg.Scenario,
		"redis", cfg.Cache.RedisAddr != "",
		"events", cfg.Events.Enabled)

	deps := scenarios.Deps{Mapper: gridmapper.New()}
	if cfg.Events.Enabled {
		pub, err := hitevents.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.Queue, appLog)
		if err != nil {
			appLog.Error("failed to start lookup events", "err", err)
			return 1
		}
		defer func() {
			if err := pub.Close(); err != nil {
				appLog.Warn("lookup events close", "err", err)
			}
		}()
		deps.Events = pub
	}

	handler, err := scenarios.New(cfg.Scenario, cfg, appLog, deps)
	if err != nil {
		appLog.Error("scenario setup failed", "err", err)
		return 1
	}
	if c, ok := handler.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	// a dedicated listener keeps scrapes off the API port; otherwise /metrics
	// is served next to the API from the same registry
	var metricsHandler http.Handler = p.Handler()
	if metricsEnabled {
		go func() {
			if err := p.Serve(ctx, appLog); err != nil {
				appLog.Warn("metrics server exited", "err", err)
			}
		}()
	}

	if err := server.Run(ctx, cfg, appLog, server.NewHandler(appLog, handler, metricsHandler)); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
