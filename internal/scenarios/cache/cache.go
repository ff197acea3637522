// Package cache serves lookups through a read-through response cache: an
// in-process LRU in front of an optional shared Redis tier.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	cachepkg "github.com/mohammed-shakir/triangle-grid/internal/cache"
	"github.com/mohammed-shakir/triangle-grid/internal/cache/keys"
	"github.com/mohammed-shakir/triangle-grid/internal/cache/lrustore"
	"github.com/mohammed-shakir/triangle-grid/internal/cache/redisstore"
	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
	"github.com/mohammed-shakir/triangle-grid/internal/core/router"
	"github.com/mohammed-shakir/triangle-grid/internal/hitevents"
	mylog "github.com/mohammed-shakir/triangle-grid/internal/logger"
	"github.com/mohammed-shakir/triangle-grid/internal/scenarios"
	"github.com/mohammed-shakir/triangle-grid/internal/scenarios/baseline"
)

const name = "cache"

type Engine struct {
	logger    *slog.Logger
	inner     *baseline.Engine
	tiers     []cachepkg.Store
	ttl       time.Duration
	opTimeout time.Duration
	events    scenarios.EventSink
	closers   []func() error
}

func init() {
	scenarios.Register(name, newCache)
}

// creates cache scenario handler; Redis is used only when an address is set
func newCache(cfg config.Config, logger *slog.Logger, deps scenarios.Deps) (router.TriangleHandler, error) {
	tiers := []cachepkg.Store{lrustore.New(cfg.Cache.LRUSize, cfg.Cache.TTL)}
	var closers []func() error

	if cfg.Cache.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		rc, err := redisstore.New(ctx, cfg.Cache.RedisAddr, redisOptions(cfg.Cache)...)
		if err != nil {
			return nil, fmt.Errorf("cache scenario: %w", err)
		}
		tiers = append(tiers, rc)
		closers = append(closers, rc.Close)
	}

	e := New(logger, deps, cfg.Cache.TTL, cfg.Cache.OpTimeout, tiers...)
	e.closers = closers
	return e, nil
}

func redisOptions(c config.CacheCfg) []redisstore.Option {
	var opts []redisstore.Option
	if c.RedisPoolSize > 0 {
		opts = append(opts, redisstore.WithPoolSize(c.RedisPoolSize))
	}
	if c.RedisTimeout > 0 {
		opts = append(opts,
			redisstore.WithReadTimeout(c.RedisTimeout),
			redisstore.WithWriteTimeout(c.RedisTimeout))
	}
	return opts
}

// New wires an engine over the given tiers, fastest first.
func New(logger *slog.Logger, deps scenarios.Deps, ttl, opTimeout time.Duration, tiers ...cachepkg.Store) *Engine {
	if opTimeout <= 0 {
		opTimeout = 100 * time.Millisecond
	}
	quiet := scenarios.Deps{Mapper: deps.Mapper}
	return &Engine{
		logger:    logger,
		inner:     baseline.New(logger, quiet, name),
		tiers:     tiers,
		ttl:       ttl,
		opTimeout: opTimeout,
		events:    deps.Events,
	}
}

func (e *Engine) All(ctx context.Context) ([]byte, error) {
	ctx = mylog.WithScenario(ctx, name)
	body, _, err := e.through(ctx, keys.All(), func() ([]byte, bool, error) {
		b, err := e.inner.All(ctx)
		return b, err == nil, err
	})
	if err != nil {
		return nil, err
	}
	e.emit(hitevents.Event{Kind: hitevents.KindAll, Valid: true})
	return body, nil
}

func (e *Engine) Cell(ctx context.Context, row model.Row, column int) ([]byte, bool, error) {
	ctx = mylog.WithScenario(ctx, name)
	body, ok, err := e.through(ctx, keys.Cell(row, column), func() ([]byte, bool, error) {
		return e.inner.Cell(ctx, row, column)
	})
	if err != nil {
		return nil, false, err
	}
	e.emit(hitevents.Event{Kind: hitevents.KindCell, Row: row.String(), Column: column, Valid: ok})
	return body, ok, nil
}

func (e *Engine) Locate(ctx context.Context, c model.Coordinates) ([]byte, bool, error) {
	ctx = mylog.WithScenario(ctx, name)
	body, ok, err := e.through(ctx, keys.Locate(c), func() ([]byte, bool, error) {
		return e.inner.Locate(ctx, c)
	})
	if err != nil {
		return nil, false, err
	}
	ev := hitevents.Event{Kind: hitevents.KindLocate, Valid: ok}
	if ok && e.events != nil {
		var a model.Address
		if json.Unmarshal(body, &a) == nil {
			ev.Row, ev.Column = a.Row, a.Column
		}
	}
	e.emit(ev)
	return body, ok, nil
}

// through returns the first tier hit, backfilling the faster tiers above it.
// On a full miss it computes and stores valid results in every tier. Tier
// errors are logged and treated as misses.
func (e *Engine) through(ctx context.Context, key string, compute func() ([]byte, bool, error)) ([]byte, bool, error) {
	for i, t := range e.tiers {
		b, hit, err := e.get(ctx, t, key)
		if err != nil {
			e.logger.WarnContext(ctx, "cache get failed", "tier", t.Name(), "key", key, "err", err)
			continue
		}
		if hit {
			e.fill(ctx, e.tiers[:i], key, b)
			return b, true, nil
		}
	}

	b, ok, err := compute()
	if err != nil || !ok {
		return b, ok, err
	}
	e.fill(ctx, e.tiers, key, b)
	return b, true, nil
}

func (e *Engine) get(ctx context.Context, t cachepkg.Store, key string) ([]byte, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()
	return t.Get(opCtx, key)
}

func (e *Engine) fill(ctx context.Context, tiers []cachepkg.Store, key string, b []byte) {
	for _, t := range tiers {
		opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
		err := t.Set(opCtx, key, b, e.ttl)
		cancel()
		if err != nil {
			e.logger.WarnContext(ctx, "cache set failed", "tier", t.Name(), "key", key, "err", err)
		}
	}
}

// Readiness is false while any configured tier fails to answer a ping.
func (e *Engine) Readiness(ctx context.Context) (bool, []string) {
	ready := true
	names := make([]string, 0, len(e.tiers))
	for _, t := range e.tiers {
		if err := t.Ping(ctx); err != nil {
			ready = false
			names = append(names, t.Name()+":down")
			continue
		}
		names = append(names, t.Name())
	}
	return ready, names
}

func (e *Engine) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) emit(ev hitevents.Event) {
	if e.events == nil {
		return
	}
	ev.Scenario = name
	e.events.Publish(ev)
}
