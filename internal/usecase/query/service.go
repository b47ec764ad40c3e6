package query

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/domain/query/filter"
	"github.com/kailas-cloud/firemock/internal/domain/query/plan"
	"github.com/kailas-cloud/firemock/internal/domain/query/result"
	"github.com/kailas-cloud/firemock/internal/logger"
	"github.com/kailas-cloud/firemock/internal/metrics"
)

// Service evaluates query plans against a document store.
type Service struct {
	reader  Reader
	metrics *metrics.Query
}

// New creates a query service.
func New(reader Reader) *Service {
	return &Service{reader: reader}
}

// WithMetrics attaches query metrics. A nil value disables recording.
func (s *Service) WithMetrics(m *metrics.Query) *Service {
	s.metrics = m
	return s
}

// Execute evaluates p: filter, then sort, then cursor, then limit.
// Any predicate validation error aborts the evaluation without a partial result.
func (s *Service) Execute(ctx context.Context, p plan.Plan) (result.Snapshot, error) {
	start := time.Now()
	collection := p.Collection()
	ctx = logger.With(ctx, zap.String("collection", collection))
	log := logger.FromContext(ctx)

	snap, scanned, err := s.execute(ctx, p)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		s.metrics.Observe(collection, metrics.StatusOK, scanned, snap.Size(), elapsed)
		log.Debug("query evaluated",
			zap.Int("scanned", scanned),
			zap.Int("returned", snap.Size()),
			zap.Duration("duration", elapsed),
		)
		return snap, nil
	case errors.Is(err, domain.ErrValidation):
		s.metrics.Observe(collection, metrics.StatusValidationError, scanned, 0, elapsed)
		log.Warn("query rejected", zap.Error(err))
	default:
		s.metrics.Observe(collection, metrics.StatusError, scanned, 0, elapsed)
		log.Error("query failed", zap.Error(err))
	}
	return result.Snapshot{}, err
}

func (s *Service) execute(ctx context.Context, p plan.Plan) (result.Snapshot, int, error) {
	if err := p.Validate(); err != nil {
		return result.Snapshot{}, 0, err
	}

	docs, err := s.reader.Scan(ctx, p.Collection())
	if err != nil {
		return result.Snapshot{}, 0, fmt.Errorf("scan collection %s: %w", p.Collection(), err)
	}
	if len(docs) == 0 {
		return result.Empty(p.Collection()), 0, nil
	}

	// Filter
	preds := p.Predicates()
	matched := make([]domdoc.Document, 0, len(docs))
	for _, d := range docs {
		ok, err := filter.MatchAll(d, preds)
		if err != nil {
			return result.Snapshot{}, len(docs), fmt.Errorf("document %s: %w", d.ID(), err)
		}
		if ok {
			matched = append(matched, d)
		}
	}

	// Sort + cursor
	if o, ok := p.Order(); ok {
		slices.SortStableFunc(matched, func(a, b domdoc.Document) int {
			return o.Compare(a, b)
		})
		if c, ok := p.Cursor(); ok {
			matched = plan.Apply(matched, c, o)
		}
	}

	// Limit
	if n, ok := p.MaxResults(); ok && len(matched) > n {
		matched = matched[:n]
	}

	return result.New(p.Collection(), matched), len(docs), nil
}
