package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExpansionMetrics() {
	r.ExpansionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_expansions_total",
			Help: "Total number of expand/collapse/expand-path operations",
		},
		[]string{"operation", "status"},
	)

	r.ExpansionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphview_expansion_duration_seconds",
			Help:    "Expansion operation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	r.NodesMaterialized = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_nodes_materialized_total",
			Help: "Total visual nodes added to the visible graph",
		},
	)

	r.EdgesMaterialized = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_edges_materialized_total",
			Help: "Total visual edges added to the visible graph",
		},
	)

	r.CollapsedNodesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_collapsed_nodes_total",
			Help: "Total visual nodes removed by collapse operations",
		},
	)

	r.ResolverFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_resolver_failures_total",
			Help: "Total link resolution failures during expansion phase 1",
		},
	)

	r.VisibleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_visible_nodes",
			Help: "Current number of nodes in the visible graph",
		},
	)

	r.VisibleEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_visible_edges",
			Help: "Current number of edges in the visible graph",
		},
	)
}
