package query

import (
	"context"

	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// Reader reads a collection's documents in insertion order.
// A collection that was never populated yields no documents and no error.
type Reader interface {
	Scan(ctx context.Context, collectionPath string) ([]domdoc.Document, error)
}
