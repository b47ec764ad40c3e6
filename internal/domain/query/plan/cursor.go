package plan

import (
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain/query/order"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// Cursor is an inclusive pagination boundary on the active order field.
type Cursor struct {
	boundary any
}

// NewCursor creates a start-inclusive cursor. The boundary is normalized.
func NewCursor(boundary any) (Cursor, error) {
	norm, err := value.Normalize(boundary)
	if err != nil {
		return Cursor{}, fmt.Errorf("startAt boundary: %w", err)
	}
	return Cursor{boundary: norm}, nil
}

// Boundary returns the normalized boundary value.
func (c Cursor) Boundary() any { return c.boundary }

// Admits reports whether a document is on the inclusive side of the boundary:
// sort value >= boundary ascending, <= boundary descending.
func (c Cursor) Admits(doc order.Field, o order.Order) bool {
	v, ok := doc.Field(o.Field())
	cmp := order.CompareValues(v, ok, c.boundary, true)
	if o.IsDescending() {
		return cmp <= 0
	}
	return cmp >= 0
}

// Apply returns the suffix of sorted docs starting at the first admitted document.
func Apply[D order.Field](docs []D, c Cursor, o order.Order) []D {
	for i, d := range docs {
		if c.Admits(d, o) {
			return docs[i:]
		}
	}
	return docs[:0]
}
