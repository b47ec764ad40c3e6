package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// MaxIDLength is the maximum document identifier length in bytes.
const MaxIDLength = 1500

// Document is the document aggregate (immutable value object).
type Document struct {
	id   string
	data map[string]any
}

// ValidateID checks a document identifier.
// IDs are non-empty, at most 1500 bytes, contain no '/', and are not "." or "..".
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("document ID is required: %w", domain.ErrInvalidDocumentID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("document ID too long (max %d): %w", MaxIDLength, domain.ErrInvalidDocumentID)
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("document ID %q must not contain '/': %w", id, domain.ErrInvalidDocumentID)
	}
	if id == "." || id == ".." {
		return fmt.Errorf("document ID %q is reserved: %w", id, domain.ErrInvalidDocumentID)
	}
	return nil
}

// New validates and creates a Document. Field data is normalized and deep-copied.
func New(id string, data map[string]any) (Document, error) {
	if err := ValidateID(id); err != nil {
		return Document{}, err
	}
	norm, err := value.NormalizeMap(data)
	if err != nil {
		return Document{}, fmt.Errorf("document %q: %w", id, err)
	}
	return Document{id: id, data: norm}, nil
}

// Reconstruct creates a Document from already-normalized data without validation.
// Ownership of data passes to the Document.
func Reconstruct(id string, data map[string]any) Document {
	if data == nil {
		data = map[string]any{}
	}
	return Document{id: id, data: data}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Data returns a deep copy of the field data.
func (d Document) Data() map[string]any { return value.CloneMap(d.data) }

// Field resolves a dotted field path. The returned value must not be mutated.
func (d Document) Field(path string) (any, bool) {
	return value.Lookup(d.data, path)
}

// Len returns the number of top-level fields.
func (d Document) Len() int { return len(d.data) }

// Merge returns a copy with the top-level fields of patch applied over the current data.
func (d Document) Merge(patch map[string]any) (Document, error) {
	norm, err := value.NormalizeMap(patch)
	if err != nil {
		return Document{}, fmt.Errorf("document %q: %w", d.id, err)
	}
	merged := value.CloneMap(d.data)
	for k, v := range norm {
		merged[k] = v
	}
	return Document{id: d.id, data: merged}, nil
}
