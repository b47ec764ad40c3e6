package firemock

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	dombatch "github.com/kailas-cloud/firemock/internal/domain/batch"
)

// WriteResult is the outcome of one committed write.
type WriteResult struct {
	Path    string
	Created bool
}

// WriteBatch groups document writes that are committed together.
// Invalid writes are recorded and reported by Commit, in which case nothing
// is written.
type WriteBatch struct {
	client *Client
	writes    []dombatch.Write
	err       error
	committed bool
}

// Batch starts an empty write batch.
func (c *Client) Batch() *WriteBatch {
	return &WriteBatch{client: c}
}

// Set adds a set (or, with MergeAll, a merge) of ref to the batch.
func (b *WriteBatch) Set(ref *DocumentRef, data map[string]any, opts ...SetOption) *WriteBatch {
	if b.err != nil {
		return b
	}
	if ref.err != nil {
		b.err = ref.err
		return b
	}
	merge := false
	for _, o := range opts {
		merge = merge || o.merge
	}
	w, err := dombatch.NewSet(ref.parent.path, ref.id, data, merge)
	if err != nil {
		b.err = err
		return b
	}
	b.writes = append(b.writes, w)
	return b
}

// Delete adds a delete of ref to the batch.
func (b *WriteBatch) Delete(ref *DocumentRef) *WriteBatch {
	if b.err != nil {
		return b
	}
	if ref.err != nil {
		b.err = ref.err
		return b
	}
	w, err := dombatch.NewDelete(ref.parent.path, ref.id)
	if err != nil {
		b.err = err
		return b
	}
	b.writes = append(b.writes, w)
	return b
}

// Commit applies the writes in the order they were added.
// A batch can be committed once.
func (b *WriteBatch) Commit(ctx context.Context) ([]WriteResult, error) {
	if b.committed {
		return nil, fmt.Errorf("firemock: batch: %w",
			domain.NewValidationError("commit", "", "batch already committed"))
	}
	b.committed = true
	if b.err != nil {
		return nil, fmt.Errorf("firemock: batch: %w", b.err)
	}
	results, err := b.client.batchSvc.Commit(b.client.ctx(ctx), b.writes)
	if err != nil {
		return nil, fmt.Errorf("firemock: batch: %w", err)
	}
	out := make([]WriteResult, len(results))
	for i, r := range results {
		out[i] = WriteResult{Path: r.Path(), Created: r.Created()}
	}
	return out, nil
}
