// Package baseline computes every lookup on the request path.
package baseline

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
	"github.com/mohammed-shakir/triangle-grid/internal/core/router"
	"github.com/mohammed-shakir/triangle-grid/internal/hitevents"
	mylog "github.com/mohammed-shakir/triangle-grid/internal/logger"
	"github.com/mohammed-shakir/triangle-grid/internal/mapper"
	gridmapper "github.com/mohammed-shakir/triangle-grid/internal/mapper/grid"
	"github.com/mohammed-shakir/triangle-grid/internal/scenarios"
)

const name = "baseline"

type Engine struct {
	logger   *slog.Logger
	mapr     mapper.Interface
	events   scenarios.EventSink
	scenario string
}

func init() {
	scenarios.Register(name, newBaseline)
}

func newBaseline(_ config.Config, logger *slog.Logger, deps scenarios.Deps) (router.TriangleHandler, error) {
	return New(logger, deps, name), nil
}

// New builds the engine. scenario labels emitted events, so wrappers can
// reuse the engine under their own name.
func New(logger *slog.Logger, deps scenarios.Deps, scenario string) *Engine {
	m := deps.Mapper
	if m == nil {
		m = gridmapper.New()
	}
	return &Engine{
		logger:   logger,
		mapr:     m,
		events:   deps.Events,
		scenario: scenario,
	}
}

func (e *Engine) All(_ context.Context) ([]byte, error) {
	cells := e.mapr.All()
	out := make([]model.Coordinates, len(cells))
	for i, c := range cells {
		out[i] = c.Coordinates
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode coordinates: %w", err)
	}
	e.emit(hitevents.Event{Kind: hitevents.KindAll, Valid: true})
	return b, nil
}

func (e *Engine) Cell(ctx context.Context, row model.Row, column int) ([]byte, bool, error) {
	ctx = mylog.WithScenario(ctx, e.scenario)
	coords, ok := e.mapr.CoordinatesFor(row, column)
	e.emit(hitevents.Event{Kind: hitevents.KindCell, Row: row.String(), Column: column, Valid: ok})
	if !ok {
		e.logger.DebugContext(ctx, "cell out of range", "row", row.String(), "column", column)
		return nil, false, nil
	}
	b, err := json.Marshal(coords)
	if err != nil {
		return nil, false, fmt.Errorf("encode coordinates: %w", err)
	}
	return b, true, nil
}

func (e *Engine) Locate(ctx context.Context, c model.Coordinates) ([]byte, bool, error) {
	ctx = mylog.WithScenario(ctx, e.scenario)
	t := e.mapr.Locate(c.V1, c.V2, c.V3)
	ev := hitevents.Event{Kind: hitevents.KindLocate, Valid: t.IsValid}
	if t.IsValid {
		ev.Row, ev.Column = t.Row.String(), t.Column
	}
	e.emit(ev)
	if !t.IsValid {
		e.logger.DebugContext(ctx, "no cell for vertices", "vertices", c.String())
		return nil, false, nil
	}
	b, err := json.Marshal(t.Address())
	if err != nil {
		return nil, false, fmt.Errorf("encode address: %w", err)
	}
	return b, true, nil
}

// Readiness is always true; nothing here can fail.
func (e *Engine) Readiness(context.Context) (bool, []string) { return true, nil }

func (e *Engine) emit(ev hitevents.Event) {
	if e.events == nil {
		return
	}
	ev.Scenario = e.scenario
	e.events.Publish(ev)
}
