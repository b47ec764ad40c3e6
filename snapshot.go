package firemock

import (
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// DocumentSnapshot is a read-only view of a document at the time it was read.
type DocumentSnapshot struct {
	Ref *DocumentRef

	exists bool
	doc    domdoc.Document
}

// ID returns the document id.
func (s *DocumentSnapshot) ID() string { return s.Ref.ID() }

// Exists reports whether the document existed when it was read.
func (s *DocumentSnapshot) Exists() bool { return s.exists }

// Data returns a copy of the document fields, or nil if the document does not exist.
// Numbers are float64, arrays []any and nested maps map[string]any.
func (s *DocumentSnapshot) Data() map[string]any {
	if !s.exists {
		return nil
	}
	return s.doc.Data()
}

// DataAt returns a copy of the value at a dotted field path such as "address.city".
func (s *DocumentSnapshot) DataAt(path string) (any, error) {
	if !s.exists {
		return nil, fmt.Errorf("firemock: document %s: %w", s.Ref.Path(), domain.ErrNotFound)
	}
	v, ok := s.doc.Field(path)
	if !ok {
		return nil, fmt.Errorf("firemock: field %q of %s: %w", path, s.Ref.Path(), domain.ErrNotFound)
	}
	return value.Clone(v), nil
}

// QuerySnapshot is the ordered result of evaluating a query.
type QuerySnapshot struct {
	docs []*DocumentSnapshot
}

// Size returns the number of documents.
func (s *QuerySnapshot) Size() int { return len(s.docs) }

// Empty reports whether the query matched nothing.
func (s *QuerySnapshot) Empty() bool { return len(s.docs) == 0 }

// Doc returns the i-th document in result order.
func (s *QuerySnapshot) Doc(i int) *DocumentSnapshot { return s.docs[i] }

// Docs returns the documents in result order.
func (s *QuerySnapshot) Docs() []*DocumentSnapshot {
	out := make([]*DocumentSnapshot, len(s.docs))
	copy(out, s.docs)
	return out
}

// IDs returns the document ids in result order.
func (s *QuerySnapshot) IDs() []string {
	ids := make([]string, len(s.docs))
	for i, d := range s.docs {
		ids[i] = d.ID()
	}
	return ids
}
