// Package mapper converts between triangle addresses and vertex coordinates.
package mapper

import (
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

type Interface interface {
	Validate(row model.Row, column int) bool
	CoordinatesFor(row model.Row, column int) (model.Coordinates, bool)
	All() []model.Cell
	Locate(p1, p2, p3 model.Point) model.Triangle
}
