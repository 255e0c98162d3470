package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Expansion Metrics
	ExpansionsTotal        *prometheus.CounterVec
	ExpansionDuration      *prometheus.HistogramVec
	NodesMaterialized      prometheus.Counter
	EdgesMaterialized      prometheus.Counter
	CollapsedNodesTotal    prometheus.Counter
	ResolverFailuresTotal  prometheus.Counter
	VisibleNodes           prometheus.Gauge
	VisibleEdges           prometheus.Gauge

	// Repository Metrics
	RepositoryRecordsTotal   prometheus.Gauge
	RepositoryDocumentsTotal prometheus.Gauge
	DuplicatesDiscarded      prometheus.Counter
	VersionsMerged           prometheus.Counter
	MalformedVersionsSkipped prometheus.Counter

	// Search Metrics
	SearchQueriesTotal *prometheus.CounterVec
	SearchDuration     prometheus.Histogram
	SearchResultCount  prometheus.Histogram

	// Layout Metrics
	LayoutRunsTotal *prometheus.CounterVec
	LayoutDuration  *prometheus.HistogramVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initExpansionMetrics()
	r.initRepositoryMetrics()
	r.initSearchMetrics()
	r.initLayoutMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
