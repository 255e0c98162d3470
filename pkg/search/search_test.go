package search

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
	"github.com/dd0wney/cluso-graphview/pkg/metrics"
	"github.com/dd0wney/cluso-graphview/pkg/repository"
)

func buildTestIndex() *Index {
	repo := repository.Build(
		[]*entity.Record{
			{Key: "R1", Title: "API Layer", Description: "gateway routing"},
			{Key: "R2", Title: "Documentation", Description: "user guides"},
			{Key: "R3", Title: "API Gateway", Description: "public API surface"},
		},
		[]*entity.Document{
			{Key: "D1", Title: "API Design Document"},
			{Key: "D2", Title: "Runbook"},
		},
		logging.NewNopLogger(),
	)
	return BuildIndex(repo)
}

func TestSearchRanking(t *testing.T) {
	idx := buildTestIndex()

	results := idx.Search("API", []Category{CategoryAll}, 0)
	if len(results) == 0 {
		t.Fatal("Expected results for 'API'")
	}

	for _, r := range results {
		if r.Title == "Documentation" {
			t.Error("'Documentation' must not match query 'API'")
		}
	}

	// R3 mentions API twice (title + description), should outrank single mentions
	if results[0].Key != "R3" {
		t.Errorf("Highest term frequency should rank first, got %s", results[0].Key)
	}
}

func TestSearchTitleBeatsNoMatch(t *testing.T) {
	idx := buildTestIndex()

	results := idx.Search("API", nil, 0)
	var apiLayer, documentation *Result
	for i := range results {
		switch results[i].Title {
		case "API Layer":
			apiLayer = &results[i]
		case "Documentation":
			documentation = &results[i]
		}
	}

	if apiLayer == nil {
		t.Fatal("'API Layer' should match")
	}
	if documentation != nil {
		t.Error("'Documentation' should not appear at all")
	}
}

func TestSearchBlankQuery(t *testing.T) {
	idx := buildTestIndex()

	if got := idx.Search("", nil, 0); len(got) != 0 {
		t.Errorf("Empty query should return empty, got %d results", len(got))
	}
	if got := idx.Search("   \t  ", nil, 0); len(got) != 0 {
		t.Errorf("Whitespace query should return empty, got %d results", len(got))
	}
}

func TestSearchNoMatches(t *testing.T) {
	idx := buildTestIndex()

	if got := idx.Search("zzzqqqxxx", nil, 0); len(got) != 0 {
		t.Errorf("No-match query should return empty, got %d results", len(got))
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	idx := buildTestIndex()

	results := idx.Search("API", []Category{CategoryDocument}, 0)
	for _, r := range results {
		if r.Category != CategoryDocument {
			t.Errorf("Category filter leaked a %s result: %s", r.Category, r.Key)
		}
	}
	if len(results) != 1 || results[0].Key != "D1" {
		t.Errorf("Expected only D1, got %+v", results)
	}
}

func TestSearchLimit(t *testing.T) {
	repo := repository.New(logging.NewNopLogger())
	for i := 0; i < 30; i++ {
		repo.UpsertRecord(&entity.Record{
			Key:   string(rune('A'+i%26)) + string(rune('0'+i/26)),
			Title: "service mesh",
		})
	}
	idx := BuildIndex(repo)

	results := idx.Search("service", nil, 0)
	if len(results) != DefaultLimit {
		t.Errorf("Default limit should cap results at %d, got %d", DefaultLimit, len(results))
	}

	results = idx.Search("service", nil, 5)
	if len(results) != 5 {
		t.Errorf("Explicit limit 5, got %d", len(results))
	}
}

func TestSearchStableOrderOnTies(t *testing.T) {
	repo := repository.Build(
		[]*entity.Record{
			{Key: "first", Title: "pipeline worker"},
			{Key: "second", Title: "pipeline worker"},
			{Key: "third", Title: "pipeline worker"},
		},
		nil,
		logging.NewNopLogger(),
	)
	idx := BuildIndex(repo)

	results := idx.Search("pipeline", nil, 0)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	want := []string{"first", "second", "third"}
	for i, key := range want {
		if results[i].Key != key {
			t.Errorf("Tie order position %d: got %s, want %s", i, results[i].Key, key)
		}
	}
}

func TestSearchFuzzyMatch(t *testing.T) {
	idx := buildTestIndex()

	// One substitution away from "gateway"
	results := idx.Search("gatewey", nil, 0)
	found := false
	for _, r := range results {
		if r.Key == "R1" || r.Key == "R3" {
			found = true
		}
	}
	if !found {
		t.Error("Fuzzy search should tolerate a single-character typo in a long term")
	}
}

func TestSearchRecordsMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	idx := buildTestIndex().WithMetrics(reg)

	idx.Search("API", nil, 0)
	idx.Search("Runbook", nil, 0)
	idx.Search("   ", nil, 0)

	if got := searchQueryCount(t, reg, "success"); got != 2 {
		t.Errorf("success queries recorded = %f, want 2", got)
	}
	if got := searchQueryCount(t, reg, "blank"); got != 1 {
		t.Errorf("blank queries recorded = %f, want 1", got)
	}
}

// searchQueryCount reads the query counter for one status label.
func searchQueryCount(t *testing.T, reg *metrics.Registry, status string) float64 {
	t.Helper()
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var family *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "graphview_search_queries_total" {
			family = mf
			break
		}
	}
	if family == nil {
		t.Fatal("graphview_search_queries_total not registered")
	}

	for _, m := range family.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "status" && lp.GetValue() == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("No %q sample in graphview_search_queries_total", status)
	return 0
}

func TestSearchResultCarriesNodeID(t *testing.T) {
	idx := buildTestIndex()

	results := idx.Search("Runbook", nil, 0)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ID != "document:D2" {
		t.Errorf("Result should carry the derived node id, got %s", results[0].ID)
	}
}
