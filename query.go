package firemock

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/query/filter"
	"github.com/kailas-cloud/firemock/internal/domain/query/order"
	"github.com/kailas-cloud/firemock/internal/domain/query/plan"
)

// Direction is the sort direction for OrderBy.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter operators accepted by Where.
const (
	OpEqual          = string(filter.Equal)
	OpLessThan       = string(filter.LessThan)
	OpLessOrEqual    = string(filter.LessOrEqual)
	OpGreaterThan    = string(filter.GreaterThan)
	OpGreaterOrEqual = string(filter.GreaterOrEqual)
	OpArrayContains  = string(filter.ArrayContains)
)

// Query is an immutable query over one collection.
// Every builder method returns a new Query; the receiver is never modified,
// so a partially built query can be branched and reused.
//
// The first invalid Where/OrderBy/StartAt call is recorded and returned by Get.
// Limit reports its error immediately.
type Query struct {
	client *Client
	plan   plan.Plan
	err    error
}

// Where adds a filter. op is one of "==", "<", "<=", ">", ">=", "array-contains".
// Multiple filters combine with AND.
func (q Query) Where(field, op string, value any) Query {
	if q.err != nil {
		return q
	}
	next, err := q.plan.Where(field, filter.Operator(op), value)
	if err != nil {
		q.err = err
		return q
	}
	q.plan = next
	return q
}

// OrderBy sets the sort field, replacing any previous order. Direction
// defaults to Asc. Only a single order field is supported.
func (q Query) OrderBy(field string, dir ...Direction) Query {
	if q.err != nil {
		return q
	}
	if len(dir) > 1 {
		q.err = domain.NewValidationError("orderBy", field, "accepts at most one direction")
		return q
	}
	var d order.Direction
	if len(dir) == 1 {
		d = order.Direction(dir[0])
	}
	next, err := q.plan.OrderBy(field, d)
	if err != nil {
		q.err = err
		return q
	}
	q.plan = next
	return q
}

// Limit caps the number of results. n must be positive; otherwise a
// ValidationError is returned right away.
func (q Query) Limit(n int) (Query, error) {
	if q.err != nil {
		return q, q.err
	}
	next, err := q.plan.Limit(n)
	if err != nil {
		return q, err
	}
	q.plan = next
	return q, nil
}

// StartAt sets an inclusive cursor on the OrderBy field: results begin at the
// first document whose sort value is >= value (<= when descending).
// Get fails with a ValidationError if no OrderBy is set.
func (q Query) StartAt(value any) Query {
	if q.err != nil {
		return q
	}
	next, err := q.plan.StartAt(value)
	if err != nil {
		q.err = err
		return q
	}
	q.plan = next
	return q
}

// Err returns the first builder error recorded on the query, if any.
func (q Query) Err() error { return q.err }

// Get evaluates the query. Every call re-reads the collection.
// Querying a collection that holds no documents yields an empty snapshot.
func (q Query) Get(ctx context.Context) (*QuerySnapshot, error) {
	if q.err != nil {
		return nil, fmt.Errorf("firemock: %w", q.err)
	}
	res, err := q.client.querySvc.Execute(q.client.ctx(ctx), q.plan)
	if err != nil {
		return nil, fmt.Errorf("firemock: query %s: %w", q.plan.Collection(), err)
	}

	parent := newCollectionRef(q.client, res.Collection())
	docs := make([]*DocumentSnapshot, res.Size())
	for i, d := range res.Docs() {
		docs[i] = &DocumentSnapshot{Ref: parent.Doc(d.ID()), exists: true, doc: d}
	}
	return &QuerySnapshot{docs: docs}, nil
}
