// Package scenarios selects how grid lookups are served.
package scenarios

import (
	"fmt"
	"log/slog"

	"github.com/mohammed-shakir/triangle-grid/internal/core/config"
	"github.com/mohammed-shakir/triangle-grid/internal/core/router"
	"github.com/mohammed-shakir/triangle-grid/internal/hitevents"
	"github.com/mohammed-shakir/triangle-grid/internal/mapper"
)

// EventSink receives one event per lookup. Nil disables events.
type EventSink interface {
	Publish(ev hitevents.Event)
}

type Deps struct {
	Mapper mapper.Interface
	Events EventSink
}

type Factory func(cfg config.Config, logger *slog.Logger, deps Deps) (router.TriangleHandler, error)

var reg = map[string]Factory{}

func Register(name string, f Factory) {
	reg[name] = f
}

func New(name string, cfg config.Config, logger *slog.Logger, deps Deps) (router.TriangleHandler, error) {
	if f, ok := reg[name]; ok {
		return f(cfg, logger, deps)
	}
	if f, ok := reg["baseline"]; ok {
		logger.Warn("unknown scenario; falling back to baseline", "scenario", name)
		return f(cfg, logger, deps)
	}
	return nil, fmt.Errorf("no factory for scenario %q and no baseline registered", name)
}
