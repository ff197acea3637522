package gridmapper

import (
	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

// NewTriangle addresses a cell by row and column. Out of range input yields
// a Triangle with IsValid=false and empty coordinates.
func NewTriangle(row model.Row, column int) model.Triangle {
	t := model.Triangle{Row: row, Column: column}
	if !Validate(row, column) {
		return t
	}
	t.Coordinates = coordinatesFor(row, column)
	t.IsValid = true
	return t
}

// TriangleFromPoints finds the cell whose vertices equal (p1, p2, p3) in that
// exact order. A permuted but otherwise identical triple does not match.
func TriangleFromPoints(p1, p2, p3 model.Point) model.Triangle {
	coords := model.Coordinates{V1: p1, V2: p2, V3: p3}
	c, ok := index[coords]
	if !ok {
		return model.Triangle{Coordinates: coords}
	}
	return model.Triangle{
		Row:         c.Row,
		Column:      c.Column,
		Coordinates: coords,
		IsValid:     true,
	}
}
