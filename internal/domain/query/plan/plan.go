// Package plan holds the immutable query plan accumulated by chained builder calls.
//
// Every builder method returns a new Plan and leaves its receiver untouched,
// so a partially built plan can be branched and reused freely.
package plan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/query/filter"
	"github.com/kailas-cloud/firemock/internal/domain/query/order"
)

// Plan is an accumulated filter/order/cursor/limit description for one collection.
type Plan struct {
	collection string
	predicates []filter.Predicate
	order      *order.Order
	cursor     *Cursor
	limit      int
}

// New creates an unconstrained plan scoped to a collection path.
func New(collection string) (Plan, error) {
	if collection == "" {
		return Plan{}, domain.NewValidationError("collection", "", "collection path is required")
	}
	if strings.HasPrefix(collection, "/") || strings.HasSuffix(collection, "/") || strings.Contains(collection, "//") {
		return Plan{}, domain.NewValidationError("collection", "", fmt.Sprintf("malformed collection path %q", collection))
	}
	return Plan{collection: collection}, nil
}

// Collection returns the collection path the plan is scoped to.
func (p Plan) Collection() string { return p.collection }

// Predicates returns a copy of the predicates in insertion order.
func (p Plan) Predicates() []filter.Predicate { return slices.Clone(p.predicates) }

// Order returns the order specification, if set.
func (p Plan) Order() (order.Order, bool) {
	if p.order == nil {
		return order.Order{}, false
	}
	return *p.order, true
}

// Cursor returns the start cursor, if set.
func (p Plan) Cursor() (Cursor, bool) {
	if p.cursor == nil {
		return Cursor{}, false
	}
	return *p.cursor, true
}

// MaxResults returns the limit, if set.
func (p Plan) MaxResults() (int, bool) {
	return p.limit, p.limit > 0
}

// Where returns a plan with one more predicate appended.
func (p Plan) Where(field string, op filter.Operator, operand any) (Plan, error) {
	pred, err := filter.New(field, op, operand)
	if err != nil {
		return Plan{}, err
	}
	next := p.clone()
	next.predicates = append(next.predicates, pred)
	return next, nil
}

// OrderBy returns a plan whose order specification replaces any previous one.
func (p Plan) OrderBy(field string, direction order.Direction) (Plan, error) {
	o, err := order.New(field, direction)
	if err != nil {
		return Plan{}, err
	}
	next := p.clone()
	next.order = &o
	return next, nil
}

// Limit returns a plan truncated to n results. n must be positive.
func (p Plan) Limit(n int) (Plan, error) {
	if n <= 0 {
		return Plan{}, domain.NewValidationError("limit", "", fmt.Sprintf("must be a positive integer, got %d", n))
	}
	next := p.clone()
	next.limit = n
	return next, nil
}

// StartAt returns a plan with an inclusive start cursor at boundary.
// The cursor is relative to the order specification in effect at evaluation.
func (p Plan) StartAt(boundary any) (Plan, error) {
	c, err := NewCursor(boundary)
	if err != nil {
		return Plan{}, err
	}
	next := p.clone()
	next.cursor = &c
	return next, nil
}

// Validate checks cross-constraint rules that only hold for a complete plan.
func (p Plan) Validate() error {
	if p.cursor != nil && p.order == nil {
		return domain.NewValidationError("startAt", "", "a cursor requires an orderBy clause")
	}
	return nil
}

// clone copies the plan so that appends never share a backing array with the receiver.
func (p Plan) clone() Plan {
	next := p
	next.predicates = slices.Clip(slices.Clone(p.predicates))
	return next
}
