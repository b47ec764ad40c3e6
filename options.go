package firemock

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	logger           *zap.Logger
	metricsReg       prometheus.Registerer
	metricsNamespace string
	idLength         int
	idGenerator      IDGenerator
}

// WithLogger sets the structured logger for store writes and query evaluation.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers query metrics on the given registerer.
// Collectors already registered under the same names are reused.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// WithMetricsNamespace overrides the metric name prefix (default "firemock").
func WithMetricsNamespace(ns string) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsNamespace = ns
	})
}

// WithIDLength sets the length of auto-generated document ids (default 20).
func WithIDLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.idLength = n
	})
}

// WithIDGenerator replaces the auto-id generator, e.g. with a deterministic one in tests.
func WithIDGenerator(g IDGenerator) Option {
	return optionFunc(func(c *clientConfig) {
		c.idGenerator = g
	})
}
