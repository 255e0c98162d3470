package metrics

import (
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.ExpansionsTotal == nil {
		t.Error("ExpansionsTotal not initialized")
	}
	if r.SearchQueriesTotal == nil {
		t.Error("SearchQueriesTotal not initialized")
	}
	if r.LayoutDuration == nil {
		t.Error("LayoutDuration not initialized")
	}
	if r.RepositoryRecordsTotal == nil {
		t.Error("RepositoryRecordsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordExpansion(t *testing.T) {
	r := NewRegistry()

	r.RecordExpansion("expand", "success", 5*time.Millisecond)
	r.RecordExpansion("expand", "success", 2*time.Millisecond)
	r.RecordExpansion("collapse", "success", time.Millisecond)

	value := counterVecValue(t, r, "graphview_expansions_total", map[string]string{
		"operation": "expand",
		"status":    "success",
	})
	if value != 2 {
		t.Errorf("Expected 2 expand operations recorded, got %f", value)
	}
}

func TestUpdateVisibleGraph(t *testing.T) {
	r := NewRegistry()
	r.UpdateVisibleGraph(12, 17)

	if got := gaugeValue(t, r, "graphview_visible_nodes"); got != 12 {
		t.Errorf("VisibleNodes = %f, want 12", got)
	}
	if got := gaugeValue(t, r, "graphview_visible_edges"); got != 17 {
		t.Errorf("VisibleEdges = %f, want 17", got)
	}
}

func TestRecordSearch(t *testing.T) {
	r := NewRegistry()
	r.RecordSearch("success", time.Millisecond, 7)

	value := counterVecValue(t, r, "graphview_search_queries_total", map[string]string{
		"status": "success",
	})
	if value != 1 {
		t.Errorf("Expected 1 search query recorded, got %f", value)
	}
}

func TestRepositoryIngestionCounters(t *testing.T) {
	r := NewRegistry()

	r.RecordDuplicateDiscarded()
	r.RecordDuplicateDiscarded()
	r.RecordVersionsMerged(3)
	r.RecordMalformedVersionSkipped()

	if got := counterValue(t, r, "graphview_repository_duplicates_discarded_total"); got != 2 {
		t.Errorf("DuplicatesDiscarded = %f, want 2", got)
	}
	if got := counterValue(t, r, "graphview_repository_versions_merged_total"); got != 3 {
		t.Errorf("VersionsMerged = %f, want 3", got)
	}
	if got := counterValue(t, r, "graphview_repository_malformed_versions_skipped_total"); got != 1 {
		t.Errorf("MalformedVersionsSkipped = %f, want 1", got)
	}
}

func counterValue(t *testing.T, r *Registry, name string) float64 {
	t.Helper()
	mf := gatherFamily(t, r, name)
	metrics := mf.GetMetric()
	if len(metrics) != 1 {
		t.Fatalf("Expected single %s metric, got %d", name, len(metrics))
	}
	return metrics[0].GetCounter().GetValue()
}

// gatherFamily fetches one metric family from the registry
func gatherFamily(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("Metric family %s not found", name)
	return nil
}

func counterVecValue(t *testing.T, r *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mf := gatherFamily(t, r, name)
	for _, m := range mf.GetMetric() {
		matches := true
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				matches = false
				break
			}
		}
		if matches {
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("No metric in %s matching labels %v", name, labels)
	return 0
}

func gaugeValue(t *testing.T, r *Registry, name string) float64 {
	t.Helper()
	mf := gatherFamily(t, r, name)
	metrics := mf.GetMetric()
	if len(metrics) != 1 {
		t.Fatalf("Expected single %s metric, got %d", name, len(metrics))
	}
	return metrics[0].GetGauge().GetValue()
}

func TestMetricNamesCarryPrefix(t *testing.T) {
	r := NewRegistry()
	r.RecordExpansion("expand", "success", time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "graphview_") {
			t.Errorf("Metric %s missing graphview_ prefix", mf.GetName())
		}
	}
}
