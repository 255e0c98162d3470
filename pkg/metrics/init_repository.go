package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRepositoryMetrics() {
	r.RepositoryRecordsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_repository_records_total",
			Help: "Deduplicated records held by the repository",
		},
	)

	r.RepositoryDocumentsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_repository_documents_total",
			Help: "Deduplicated documents held by the repository",
		},
	)

	r.DuplicatesDiscarded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_repository_duplicates_discarded_total",
			Help: "Ingested entities discarded as duplicates of an existing key",
		},
	)

	r.VersionsMerged = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_repository_versions_merged_total",
			Help: "Versions added to an existing document by merge",
		},
	)

	r.MalformedVersionsSkipped = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_repository_malformed_versions_skipped_total",
			Help: "Versions dropped during merge for missing an id",
		},
	)
}
