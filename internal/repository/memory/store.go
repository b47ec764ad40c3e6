package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// collection keeps documents by id plus their first-insertion order.
type collection struct {
	order []string
	docs  map[string]domdoc.Document
}

func newCollection() *collection {
	return &collection{docs: make(map[string]domdoc.Document)}
}

// Store is the in-memory document store. Collections are keyed by slash path.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	logger      *zap.Logger
}

// New creates an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		collections: make(map[string]*collection),
		logger:      logger,
	}
}

// Set writes a document. Overwriting keeps the document's original position.
// Returns true if the document was created.
func (s *Store) Set(_ context.Context, collectionPath string, doc domdoc.Document) (bool, error) {
	if collectionPath == "" {
		return false, fmt.Errorf("collection path is required: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionPath]
	if !ok {
		c = newCollection()
		s.collections[collectionPath] = c
	}
	_, exists := c.docs[doc.ID()]
	if !exists {
		c.order = append(c.order, doc.ID())
	}
	c.docs[doc.ID()] = doc

	s.logger.Debug("document stored",
		zap.String("collection", collectionPath),
		zap.String("id", doc.ID()),
		zap.Bool("created", !exists),
	)
	return !exists, nil
}

// Get returns a document by id.
func (s *Store) Get(_ context.Context, collectionPath, id string) (domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionPath]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("document %s/%s: %w", collectionPath, id, domain.ErrNotFound)
	}
	doc, ok := c.docs[id]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("document %s/%s: %w", collectionPath, id, domain.ErrNotFound)
	}
	return doc, nil
}

// Delete removes a document. Deleting a missing document is a no-op.
func (s *Store) Delete(_ context.Context, collectionPath, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionPath]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	if len(c.docs) == 0 {
		delete(s.collections, collectionPath)
	}

	s.logger.Debug("document deleted",
		zap.String("collection", collectionPath),
		zap.String("id", id),
	)
	return nil
}

// Scan returns every document of a collection in insertion order.
// A collection that was never populated yields no documents and no error.
func (s *Store) Scan(_ context.Context, collectionPath string) ([]domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionPath]
	if !ok {
		return nil, nil
	}
	docs := make([]domdoc.Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, c.docs[id])
	}
	return docs, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(_ context.Context, collectionPath string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionPath]
	if !ok {
		return 0, nil
	}
	return len(c.docs), nil
}

// Collections returns the sorted paths of all non-empty collections.
func (s *Store) Collections(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.collections))
	for p := range s.collections {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Reset drops every collection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*collection)
	s.logger.Debug("store reset")
}
