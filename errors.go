package firemock

import "github.com/kailas-cloud/firemock/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation        = domain.ErrValidation
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidDocumentID = domain.ErrInvalidDocumentID
	ErrInvalidValue      = domain.ErrInvalidValue
	ErrInvalidFixture    = domain.ErrInvalidFixture
)

// ValidationError carries the rejected operation and field.
// Use errors.As() to inspect it.
type ValidationError = domain.ValidationError
