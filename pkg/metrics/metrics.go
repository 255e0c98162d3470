package metrics

import (
	"time"
)

// RecordExpansion records an expand/collapse/expand-path operation
func (r *Registry) RecordExpansion(operation, status string, duration time.Duration) {
	r.ExpansionsTotal.WithLabelValues(operation, status).Inc()
	r.ExpansionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordMaterialized records nodes and edges added by an expansion
func (r *Registry) RecordMaterialized(nodes, edges int) {
	r.NodesMaterialized.Add(float64(nodes))
	r.EdgesMaterialized.Add(float64(edges))
}

// RecordCollapse records nodes removed by a collapse
func (r *Registry) RecordCollapse(removed int) {
	r.CollapsedNodesTotal.Add(float64(removed))
}

// RecordResolverFailure records a phase-1 resolution failure
func (r *Registry) RecordResolverFailure() {
	r.ResolverFailuresTotal.Inc()
}

// UpdateVisibleGraph updates the visible graph gauges
func (r *Registry) UpdateVisibleGraph(nodes, edges int) {
	r.VisibleNodes.Set(float64(nodes))
	r.VisibleEdges.Set(float64(edges))
}

// UpdateRepository updates the repository size gauges
func (r *Registry) UpdateRepository(records, documents int) {
	r.RepositoryRecordsTotal.Set(float64(records))
	r.RepositoryDocumentsTotal.Set(float64(documents))
}

// RecordDuplicateDiscarded records an ingested entity discarded on key collision
func (r *Registry) RecordDuplicateDiscarded() {
	r.DuplicatesDiscarded.Inc()
}

// RecordVersionsMerged records versions added to an existing document
func (r *Registry) RecordVersionsMerged(added int) {
	r.VersionsMerged.Add(float64(added))
}

// RecordMalformedVersionSkipped records a version dropped for missing an id
func (r *Registry) RecordMalformedVersionSkipped() {
	r.MalformedVersionsSkipped.Inc()
}

// RecordSearch records a search query with its duration and result count
func (r *Registry) RecordSearch(status string, duration time.Duration, results int) {
	r.SearchQueriesTotal.WithLabelValues(status).Inc()
	r.SearchDuration.Observe(duration.Seconds())
	r.SearchResultCount.Observe(float64(results))
}

// RecordLayout records a layout computation
func (r *Registry) RecordLayout(algorithm string, duration time.Duration) {
	r.LayoutRunsTotal.WithLabelValues(algorithm).Inc()
	r.LayoutDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}
