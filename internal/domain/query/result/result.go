package result

import (
	"slices"

	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// Snapshot is the ordered, read-only outcome of evaluating a query plan.
type Snapshot struct {
	collection string
	docs       []domdoc.Document
}

// New creates a snapshot. The document slice is copied.
func New(collection string, docs []domdoc.Document) Snapshot {
	return Snapshot{collection: collection, docs: slices.Clone(docs)}
}

// Empty returns a zero-result snapshot for a collection.
func Empty(collection string) Snapshot {
	return Snapshot{collection: collection}
}

// Collection returns the collection path the snapshot was taken from.
func (s Snapshot) Collection() string { return s.collection }

// Size returns the number of documents.
func (s Snapshot) Size() int { return len(s.docs) }

// Empty reports whether the snapshot has no documents.
func (s Snapshot) Empty() bool { return len(s.docs) == 0 }

// Doc returns the i-th document. It panics if i is out of range.
func (s Snapshot) Doc(i int) domdoc.Document { return s.docs[i] }

// Docs returns a copy of the ordered documents.
func (s Snapshot) Docs() []domdoc.Document { return slices.Clone(s.docs) }

// IDs returns the ordered document identifiers.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.docs))
	for i, d := range s.docs {
		ids[i] = d.ID()
	}
	return ids
}
