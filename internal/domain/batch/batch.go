// Package batch describes grouped document writes and their per-write outcomes.
package batch

import (
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// Op is the kind of a batched write.
type Op string

// Write kinds.
const (
	OpSet    Op = "set"
	OpMerge  Op = "merge"
	OpDelete Op = "delete"
)

// Write is one validated write in a batch (immutable value object).
type Write struct {
	collection string
	id         string
	op         Op
	data       map[string]any
}

// NewSet creates a set write. With merge, fields are merged into the
// existing document instead of replacing it.
func NewSet(collectionPath, id string, data map[string]any, merge bool) (Write, error) {
	if err := validateTarget(collectionPath, id); err != nil {
		return Write{}, err
	}
	norm, err := value.NormalizeMap(data)
	if err != nil {
		return Write{}, fmt.Errorf("batch set %s/%s: %w", collectionPath, id, err)
	}
	op := OpSet
	if merge {
		op = OpMerge
	}
	return Write{collection: collectionPath, id: id, op: op, data: norm}, nil
}

// NewDelete creates a delete write.
func NewDelete(collectionPath, id string) (Write, error) {
	if err := validateTarget(collectionPath, id); err != nil {
		return Write{}, err
	}
	return Write{collection: collectionPath, id: id, op: OpDelete}, nil
}

func validateTarget(collectionPath, id string) error {
	if collectionPath == "" {
		return domain.NewValidationError("batch", "", "collection path is required")
	}
	if err := domdoc.ValidateID(id); err != nil {
		return fmt.Errorf("batch %s: %w", collectionPath, err)
	}
	return nil
}

// Collection returns the collection path.
func (w Write) Collection() string { return w.collection }

// ID returns the document id.
func (w Write) ID() string { return w.id }

// Op returns the write kind.
func (w Write) Op() Op { return w.op }

// Data returns a copy of the write payload (nil for deletes).
func (w Write) Data() map[string]any {
	if w.data == nil {
		return nil
	}
	return value.CloneMap(w.data)
}

// Path returns the slash path of the target document.
func (w Write) Path() string { return w.collection + "/" + w.id }

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of applying one write.
type Result struct {
	path    string
	op      Op
	status  ItemStatus
	created bool
	err     error
}

// NewOK creates a successful result. created reports a newly created document.
func NewOK(w Write, created bool) Result {
	return Result{path: w.Path(), op: w.op, status: StatusOK, created: created}
}

// NewError creates a failed result.
func NewError(w Write, err error) Result {
	return Result{path: w.Path(), op: w.op, status: StatusError, err: err}
}

// Path returns the target document path.
func (r Result) Path() string { return r.path }

// Op returns the write kind.
func (r Result) Op() Op { return r.op }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Created reports whether a set created the document.
func (r Result) Created() bool { return r.created }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
