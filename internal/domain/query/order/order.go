package order

import (
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// Direction is the sort direction.
type Direction string

// Direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Field is anything that can resolve a field path to a normalized value.
type Field interface {
	Field(path string) (any, bool)
}

// Order is a single-field order specification.
type Order struct {
	field     string
	direction Direction
}

// New validates and creates an Order. An empty direction means ascending.
func New(field string, direction Direction) (Order, error) {
	if field == "" {
		return Order{}, domain.NewValidationError("orderBy", field, "field path is required")
	}
	if direction == "" {
		direction = Asc
	}
	if !direction.IsValid() {
		return Order{}, domain.NewValidationError(
			"orderBy", field, fmt.Sprintf("direction must be %q or %q, got %q", Asc, Desc, direction),
		)
	}
	return Order{field: field, direction: direction}, nil
}

// Field returns the ordered field path.
func (o Order) Field() string { return o.field }

// Direction returns the sort direction.
func (o Order) Direction() Direction { return o.direction }

// IsDescending reports whether the order is descending.
func (o Order) IsDescending() bool { return o.direction == Desc }

// CompareValues compares two optional sort-field values in ascending terms.
// An absent value sorts before every present value.
func CompareValues(a any, aOK bool, b any, bOK bool) int {
	switch {
	case !aOK && !bOK:
		return 0
	case !aOK:
		return -1
	case !bOK:
		return 1
	}
	return value.Compare(a, b)
}

// Compare orders two documents by the field, honoring the direction.
// Descending negates the comparator, so equal values stay tied.
func (o Order) Compare(a, b Field) int {
	va, aOK := a.Field(o.field)
	vb, bOK := b.Field(o.field)
	c := CompareValues(va, aOK, vb, bOK)
	if o.IsDescending() {
		return -c
	}
	return c
}
