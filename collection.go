package firemock

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/query/plan"
)

// CollectionRef refers to a collection. It embeds Query, so filters, ordering
// and Get can be called on it directly.
type CollectionRef struct {
	Query

	path string
}

func newCollectionRef(c *Client, path string) *CollectionRef {
	p, err := plan.New(path)
	if err == nil && strings.Count(path, "/")%2 != 0 {
		err = domain.NewValidationError("collection", "",
			fmt.Sprintf("collection path %q must have an odd number of segments", path))
	}
	return &CollectionRef{
		Query: Query{client: c, plan: p, err: err},
		path:  path,
	}
}

// ID returns the last segment of the collection path.
func (r *CollectionRef) ID() string {
	return r.path[strings.LastIndex(r.path, "/")+1:]
}

// Path returns the slash path of the collection.
func (r *CollectionRef) Path() string { return r.path }

// Parent returns the document a sub-collection belongs to, or nil for a
// top-level collection.
func (r *CollectionRef) Parent() *DocumentRef {
	i := strings.LastIndex(r.path, "/")
	if i < 0 {
		return nil
	}
	return r.client.Doc(r.path[:i])
}

// Doc returns a reference to the document with the given id.
func (r *CollectionRef) Doc(id string) *DocumentRef {
	return &DocumentRef{client: r.client, parent: r, id: id, err: r.err}
}

// NewDoc returns a reference to a document with a freshly generated id.
// Nothing is written until Set is called.
func (r *CollectionRef) NewDoc() (*DocumentRef, error) {
	if r.err != nil {
		return nil, fmt.Errorf("firemock: %w", r.err)
	}
	id, err := r.client.docSvc.NewID()
	if err != nil {
		return nil, fmt.Errorf("firemock: %w", err)
	}
	return r.Doc(id), nil
}

// Add creates a document with a generated id and returns its reference.
func (r *CollectionRef) Add(ctx context.Context, data map[string]any) (*DocumentRef, error) {
	if r.err != nil {
		return nil, fmt.Errorf("firemock: %w", r.err)
	}
	doc, err := r.client.docSvc.Add(r.client.ctx(ctx), r.path, data)
	if err != nil {
		return nil, fmt.Errorf("firemock: %w", err)
	}
	return r.Doc(doc.ID()), nil
}

// Count returns the number of documents stored directly in the collection.
func (r *CollectionRef) Count(ctx context.Context) (int, error) {
	if r.err != nil {
		return 0, fmt.Errorf("firemock: %w", r.err)
	}
	n, err := r.client.docSvc.Count(r.client.ctx(ctx), r.path)
	if err != nil {
		return 0, fmt.Errorf("firemock: %w", err)
	}
	return n, nil
}
