// Package gridmapper implements the fixed 6x12 triangle tiling.
package gridmapper

import (
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

const (
	MaxColumn = 12
	// CellSize is the side of the square spanned by each column pair.
	CellSize = 10
)

// table and index are built once and never mutated.
var (
	table = buildTable()
	index = buildIndex(table)
)

type Mapper struct{}

func New() *Mapper { return &Mapper{} }

func (m *Mapper) Validate(row model.Row, column int) bool {
	return Validate(row, column)
}

func (m *Mapper) CoordinatesFor(row model.Row, column int) (model.Coordinates, bool) {
	if !Validate(row, column) {
		return model.Coordinates{}, false
	}
	return coordinatesFor(row, column), true
}

// All returns a copy of the 72-cell table, rows A..F then columns 1..12.
func (m *Mapper) All() []model.Cell {
	out := make([]model.Cell, len(table))
	copy(out, table)
	return out
}

func (m *Mapper) Locate(p1, p2, p3 model.Point) model.Triangle {
	return TriangleFromPoints(p1, p2, p3)
}

func Validate(row model.Row, column int) bool {
	return row.Valid() && column >= 1 && column <= MaxColumn
}

// coordinatesFor assumes Validate passed. Odd columns take the lower-left
// half of the square (bottom-left, top-left, bottom-right); even columns the
// upper-right half (top-left, top-right, bottom-right).
func coordinatesFor(row model.Row, column int) model.Coordinates {
	r := row.Index()
	var c int
	if column%2 == 0 {
		c = (column - 2) / 2
	} else {
		c = (column - 1) / 2
	}
	x0, y0 := CellSize*c, CellSize*r
	x1, y1 := x0+CellSize, y0+CellSize

	if column%2 == 0 {
		return model.Coordinates{
			V1: model.Point{X: x0, Y: y0},
			V2: model.Point{X: x1, Y: y0},
			V3: model.Point{X: x1, Y: y1},
		}
	}
	return model.Coordinates{
		V1: model.Point{X: x0, Y: y1},
		V2: model.Point{X: x0, Y: y0},
		V3: model.Point{X: x1, Y: y1},
	}
}

func buildTable() []model.Cell {
	rows := model.Rows()
	out := make([]model.Cell, 0, len(rows)*MaxColumn)
	for _, row := range rows {
		for col := 1; col <= MaxColumn; col++ {
			out = append(out, model.Cell{
				Row:         row,
				Column:      col,
				Coordinates: coordinatesFor(row, col),
			})
		}
	}
	return out
}

// buildIndex keeps the first cell per vertex triple, same as a forward scan.
func buildIndex(cells []model.Cell) map[model.Coordinates]model.Cell {
	idx := make(map[model.Coordinates]model.Cell, len(cells))
	for _, c := range cells {
		if _, ok := idx[c.Coordinates]; ok {
			continue
		}
		idx[c.Coordinates] = c
	}
	return idx
}
