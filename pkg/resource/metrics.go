package resource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collector for resources.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "signals").
	Namespace string

	// Subsystem is the metrics subsystem (default: "resource").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for load duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the load duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics records per-resource load activity. One collector can be shared
// by any number of resources; series are labeled by resource name.
type Metrics struct {
	// loads counts finalized loads by resource and result
	// (success, error, stale).
	loads *prometheus.CounterVec

	// duration observes wall time from fetcher invocation to
	// finalization.
	duration *prometheus.HistogramVec

	// dedups counts refetch calls suppressed by the same-turn guard.
	dedups *prometheus.CounterVec
}

// NewMetrics creates and registers the collector. Register a collector at
// most once per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "signals",
		Subsystem: "resource",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "loads_total",
			Help:        "Finalized resource loads by result.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"resource", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "load_duration_seconds",
			Help:        "Wall time from fetcher invocation to finalization.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"resource"}),
		dedups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "refetch_dedup_total",
			Help:        "Refetch calls suppressed by the same-turn dedup guard.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"resource"}),
	}
}
