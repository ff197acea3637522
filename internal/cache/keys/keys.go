// Package keys builds cache keys for grid lookups.
package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

const prefix = "trigrid:v1"

func All() string { return prefix + ":all" }

func Cell(row model.Row, column int) string {
	return fmt.Sprintf("%s:cell:%s:%d", prefix, row, column)
}

// Locate keys an inverse lookup by its ordered vertex list. The hash suffix
// keeps keys a fixed shape for dashboards that strip the raw vertices.
func Locate(c model.Coordinates) string {
	raw := vertexList(c)
	return fmt.Sprintf("%s:locate:%s:h=%016x", prefix, raw, xxhash.Sum64String(raw))
}

func vertexList(c model.Coordinates) string {
	var b strings.Builder
	b.Grow(48)
	for i, p := range []model.Point{c.V1, c.V2, c.V3} {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.Y))
	}
	return b.String()
}
