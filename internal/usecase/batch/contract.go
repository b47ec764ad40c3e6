package batch

import (
	"context"

	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// Repository is the storage contract batched writes are applied through.
type Repository interface {
	Set(ctx context.Context, collectionPath string, doc domdoc.Document) (created bool, err error)
	Get(ctx context.Context, collectionPath, id string) (domdoc.Document, error)
	Delete(ctx context.Context, collectionPath, id string) error
}
