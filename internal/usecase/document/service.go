package document

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/logger"
)

// Service handles document writes and point reads.
type Service struct {
	repo Repository
	ids  IDGenerator
}

// New creates a document service.
func New(repo Repository, ids IDGenerator) *Service {
	return &Service{repo: repo, ids: ids}
}

// NewID returns a fresh document id.
func (s *Service) NewID() (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("new document id: %w", err)
	}
	return id, nil
}

// Set creates or replaces a document.
// Returns true if the document was created, false if replaced.
func (s *Service) Set(ctx context.Context, collectionPath, id string, data map[string]any) (bool, error) {
	doc, err := domdoc.New(id, data)
	if err != nil {
		return false, fmt.Errorf("set document: %w", err)
	}
	created, err := s.repo.Set(ctx, collectionPath, doc)
	if err != nil {
		return false, fmt.Errorf("set document: %w", err)
	}
	return created, nil
}

// Merge merges top-level fields into a document, creating it if missing.
func (s *Service) Merge(ctx context.Context, collectionPath, id string, data map[string]any) (domdoc.Document, error) {
	current, err := s.repo.Get(ctx, collectionPath, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		current, err = domdoc.New(id, nil)
		if err != nil {
			return domdoc.Document{}, fmt.Errorf("merge document: %w", err)
		}
	case err != nil:
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}

	merged, err := current.Merge(data)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("merge document: %w", err)
	}
	if _, err := s.repo.Set(ctx, collectionPath, merged); err != nil {
		return domdoc.Document{}, fmt.Errorf("merge document: %w", err)
	}
	return merged, nil
}

// Add creates a document under a generated id.
func (s *Service) Add(ctx context.Context, collectionPath string, data map[string]any) (domdoc.Document, error) {
	id, err := s.NewID()
	if err != nil {
		return domdoc.Document{}, err
	}
	doc, err := domdoc.New(id, data)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("add document: %w", err)
	}
	if _, err := s.repo.Set(ctx, collectionPath, doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("add document: %w", err)
	}

	logger.FromContext(ctx).Debug("document added",
		zap.String("collection", collectionPath),
		zap.String("id", id),
	)
	return doc, nil
}

// Get retrieves a document by collection path and id.
func (s *Service) Get(ctx context.Context, collectionPath, id string) (domdoc.Document, error) {
	if err := domdoc.ValidateID(id); err != nil {
		return domdoc.Document{}, err
	}
	doc, err := s.repo.Get(ctx, collectionPath, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Delete removes a document. Deleting a missing document succeeds.
func (s *Service) Delete(ctx context.Context, collectionPath, id string) error {
	if err := domdoc.ValidateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, collectionPath, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of documents in a collection.
func (s *Service) Count(ctx context.Context, collectionPath string) (int, error) {
	count, err := s.repo.Count(ctx, collectionPath)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
