package document

import (
	"context"

	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Set(ctx context.Context, collectionPath string, doc domdoc.Document) (created bool, err error)
	Get(ctx context.Context, collectionPath, id string) (domdoc.Document, error)
	Delete(ctx context.Context, collectionPath, id string) error
	Count(ctx context.Context, collectionPath string) (int, error)
}

// IDGenerator produces identifiers for documents created without one.
type IDGenerator interface {
	NewID() (string, error)
}
