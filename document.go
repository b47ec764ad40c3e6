package firemock

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
)

// SetOption changes how DocumentRef.Set writes.
type SetOption struct {
	merge bool
}

// MergeAll merges the given top-level fields into the existing document
// instead of replacing it.
var MergeAll = SetOption{merge: true}

// DocumentRef refers to a document, which may or may not exist.
type DocumentRef struct {
	client *Client
	parent *CollectionRef
	id     string
	err    error
}

// ID returns the document id.
func (r *DocumentRef) ID() string { return r.id }

// Path returns the slash path of the document.
func (r *DocumentRef) Path() string {
	if r.parent == nil {
		return r.id
	}
	return r.parent.path + "/" + r.id
}

// Parent returns the collection the document belongs to.
func (r *DocumentRef) Parent() *CollectionRef { return r.parent }

// Collection returns a reference to a sub-collection of the document.
func (r *DocumentRef) Collection(id string) *CollectionRef {
	return newCollectionRef(r.client, r.Path()+"/"+id)
}

// Set creates or overwrites the document. With MergeAll, fields are merged
// into the existing document.
func (r *DocumentRef) Set(ctx context.Context, data map[string]any, opts ...SetOption) error {
	if r.err != nil {
		return fmt.Errorf("firemock: %w", r.err)
	}
	merge := false
	for _, o := range opts {
		merge = merge || o.merge
	}

	ctx = r.client.ctx(ctx)
	var err error
	if merge {
		_, err = r.client.docSvc.Merge(ctx, r.parent.path, r.id, data)
	} else {
		_, err = r.client.docSvc.Set(ctx, r.parent.path, r.id, data)
	}
	if err != nil {
		return fmt.Errorf("firemock: %s: %w", r.Path(), err)
	}
	return nil
}

// Get reads the document. A missing document yields a snapshot whose
// Exists reports false, not an error.
func (r *DocumentRef) Get(ctx context.Context) (*DocumentSnapshot, error) {
	if r.err != nil {
		return nil, fmt.Errorf("firemock: %w", r.err)
	}
	doc, err := r.client.docSvc.Get(r.client.ctx(ctx), r.parent.path, r.id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &DocumentSnapshot{Ref: r}, nil
	case err != nil:
		return nil, fmt.Errorf("firemock: %s: %w", r.Path(), err)
	}
	return &DocumentSnapshot{Ref: r, exists: true, doc: doc}, nil
}

// Delete removes the document. Deleting a missing document succeeds.
func (r *DocumentRef) Delete(ctx context.Context) error {
	if r.err != nil {
		return fmt.Errorf("firemock: %w", r.err)
	}
	if err := r.client.docSvc.Delete(r.client.ctx(ctx), r.parent.path, r.id); err != nil {
		return fmt.Errorf("firemock: %s: %w", r.Path(), err)
	}
	return nil
}
