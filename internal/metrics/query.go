package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query status label values.
const (
	StatusOK              = "ok"
	StatusValidationError = "validation_error"
	StatusError           = "error"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "firemock"

// Query holds Prometheus collectors for query evaluation.
// A nil *Query is valid and records nothing.
type Query struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	scanned    *prometheus.CounterVec
	returned   *prometheus.CounterVec
}

// NewQuery creates query metrics and registers them on reg.
// Collectors already registered under the same names are reused.
// A nil reg yields a nil *Query.
func NewQuery(reg prometheus.Registerer, namespace string) (*Query, error) {
	if reg == nil {
		return nil, nil
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Query{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "executions_total",
			Help:      "Total query evaluations by collection and status.",
		}, []string{"collection", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query evaluation duration in seconds.",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"collection"}),
		scanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "documents_scanned_total",
			Help:      "Documents read from the store during query evaluation.",
		}, []string{"collection"}),
		returned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "documents_returned_total",
			Help:      "Documents returned in result snapshots.",
		}, []string{"collection"}),
	}
	if err := registerOrReuse(reg, &m.executions); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.scanned); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.returned); err != nil {
		return nil, err
	}
	return m, nil
}

// Observe records one query evaluation.
func (m *Query) Observe(collection, status string, scanned, returned int, dur time.Duration) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(collection, status).Inc()
	m.duration.WithLabelValues(collection).Observe(dur.Seconds())
	m.scanned.WithLabelValues(collection).Add(float64(scanned))
	m.returned.WithLabelValues(collection).Add(float64(returned))
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}
