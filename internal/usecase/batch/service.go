package batch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/domain"
	dombatch "github.com/kailas-cloud/firemock/internal/domain/batch"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/logger"
)

// MaxBatchSize is the maximum number of writes per batch.
const MaxBatchSize = 500

// Service applies batched writes in order with per-write outcomes.
type Service struct {
	repo         Repository
	maxBatchSize int
}

// New creates a batch service.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Commit applies writes in order. An oversized batch is rejected before
// anything is written. If a write fails, it and every write after it are
// reported with that error and the error is returned; earlier writes stay applied.
func (s *Service) Commit(ctx context.Context, writes []dombatch.Write) ([]dombatch.Result, error) {
	if len(writes) > s.maxBatchSize {
		return nil, domain.NewValidationError("batch", "",
			fmt.Sprintf("batch of %d writes exceeds %d", len(writes), s.maxBatchSize))
	}

	results := make([]dombatch.Result, len(writes))
	for i, w := range writes {
		created, err := s.apply(ctx, w)
		if err != nil {
			err = fmt.Errorf("%s %s: %w", w.Op(), w.Path(), err)
			for j := i; j < len(writes); j++ {
				results[j] = dombatch.NewError(writes[j], err)
			}
			logger.FromContext(ctx).Warn("batch aborted",
				zap.Int("applied", i),
				zap.Int("total", len(writes)),
				zap.Error(err),
			)
			return results, err
		}
		results[i] = dombatch.NewOK(w, created)
	}

	logger.FromContext(ctx).Debug("batch committed", zap.Int("writes", len(writes)))
	return results, nil
}

func (s *Service) apply(ctx context.Context, w dombatch.Write) (bool, error) {
	switch w.Op() {
	case dombatch.OpSet:
		doc, err := domdoc.New(w.ID(), w.Data())
		if err != nil {
			return false, err
		}
		return s.repo.Set(ctx, w.Collection(), doc)
	case dombatch.OpMerge:
		current, err := s.repo.Get(ctx, w.Collection(), w.ID())
		exists := err == nil
		switch {
		case errors.Is(err, domain.ErrNotFound):
			current = domdoc.Reconstruct(w.ID(), nil)
		case err != nil:
			return false, err
		}
		merged, err := current.Merge(w.Data())
		if err != nil {
			return false, err
		}
		if _, err := s.repo.Set(ctx, w.Collection(), merged); err != nil {
			return false, err
		}
		return !exists, nil
	case dombatch.OpDelete:
		return false, s.repo.Delete(ctx, w.Collection(), w.ID())
	default:
		return false, fmt.Errorf("unsupported batch op %q", w.Op())
	}
}
