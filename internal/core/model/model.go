// Package model defines core domain types shared across the service.
package model

import (
	"fmt"
	"strings"
)

// Row is one of the six horizontal bands of the grid. The zero value is
// RowNone and never names a cell.
type Row uint8

const (
	RowNone Row = iota
	RowA
	RowB
	RowC
	RowD
	RowE
	RowF
)

const rowLetters = "ABCDEF"

// Rows returns A..F in declaration order.
func Rows() []Row {
	return []Row{RowA, RowB, RowC, RowD, RowE, RowF}
}

// ParseRow accepts a single letter A-F, case-insensitive.
func ParseRow(s string) (Row, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return RowNone, false
	}
	i := strings.IndexByte(rowLetters, upper(s[0]))
	if i < 0 {
		return RowNone, false
	}
	return Row(i + 1), true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func (r Row) Valid() bool { return r >= RowA && r <= RowF }

// Index is the zero-based band index (A=0). Only meaningful for valid rows.
func (r Row) Index() int { return int(r) - 1 }

func (r Row) String() string {
	if !r.Valid() {
		return "None"
	}
	return rowLetters[r-1 : r]
}

// Point is a grid vertex in units of 10.
type Point struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Coordinates is an ordered vertex triple. Equality is positional, so the
// struct is usable as a map key as-is.
type Coordinates struct {
	V1 Point `json:"V1"`
	V2 Point `json:"V2"`
	V3 Point `json:"V3"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s,%s,%s", c.V1, c.V2, c.V3)
}

// Cell is one addressed triangle together with its vertices.
type Cell struct {
	Row         Row
	Column      int
	Coordinates Coordinates
}

// Triangle is the result of a forward or inverse lookup. Invalid triangles
// carry RowNone and column 0 when they came from an inverse lookup.
type Triangle struct {
	Row         Row
	Column      int
	Coordinates Coordinates
	IsValid     bool
}

// Address is the inverse lookup response body.
type Address struct {
	Row    string `json:"Row"`
	Column int    `json:"Column"`
}

func (t Triangle) Address() Address {
	return Address{Row: t.Row.String(), Column: t.Column}
}
