package search

import (
	"strings"
	"sync"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
	"github.com/dd0wney/cluso-graphview/pkg/metrics"
	"github.com/dd0wney/cluso-graphview/pkg/repository"
)

// Category filters search results by entity kind.
type Category string

const (
	CategoryRecord   Category = "record"
	CategoryDocument Category = "document"
	CategoryAll      Category = "all"
)

// DefaultLimit caps result counts when the caller does not.
const DefaultLimit = 15

// Result is a single search hit. ID is the visual node id the hit would
// materialize as, so callers can hand it straight to the expansion engine.
type Result struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Key      string          `json:"key"`
	Title    string          `json:"title"`
	Category Category        `json:"category"`
	Metadata entity.Metadata `json:"metadata,omitempty"`
	Score    float64         `json:"score"`
}

// indexedEntry is one searchable entity with its token index position.
type indexedEntry struct {
	result Result
	tokens int // token count of the indexed text
}

// Index is an inverted-index over repository entities with TF-IDF scoring
// and a levenshtein fuzzy fallback. Build once, search many; rebuilding
// after upserts is the caller's job.
type Index struct {
	mu sync.RWMutex

	entries []indexedEntry

	// term → entry index → positions within the entry's text
	inverted map[string]map[int][]int
	// term → number of entries containing it
	docFreq map[string]int

	metrics *metrics.Registry
}

// WithMetrics attaches a metrics registry. Query counters and histograms
// stay silent without one.
func (idx *Index) WithMetrics(reg *metrics.Registry) *Index {
	idx.metrics = reg
	return idx
}

// BuildIndex indexes every record and document in the repository, in
// repository insertion order. That order is the stable tie-break for
// equal-score results.
func BuildIndex(repo *repository.Repository) *Index {
	idx := &Index{
		inverted: make(map[string]map[int][]int),
		docFreq:  make(map[string]int),
	}

	for _, r := range repo.Records() {
		idx.add(Result{
			ID:       graphview.RecordNodeID(r.Key),
			Type:     string(graphview.KindRecord),
			Key:      r.Key,
			Title:    r.Title,
			Category: CategoryRecord,
			Metadata: r.Metadata,
		}, r.Title+" "+r.Description)
	}

	for _, d := range repo.Documents() {
		idx.add(Result{
			ID:       graphview.DocumentNodeID(d.Key),
			Type:     string(graphview.KindDocument),
			Key:      d.Key,
			Title:    d.Title,
			Category: CategoryDocument,
			Metadata: d.Metadata,
		}, d.Title+" "+d.Description)
	}

	return idx
}

// add indexes one entry's text under its entry position.
func (idx *Index) add(result Result, text string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	entryPos := len(idx.entries)
	tokens := tokenize(text)
	idx.entries = append(idx.entries, indexedEntry{result: result, tokens: len(tokens)})

	seenTerms := make(map[string]bool)
	for pos, token := range tokens {
		term := normalize(token)
		if term == "" {
			continue
		}

		if idx.inverted[term] == nil {
			idx.inverted[term] = make(map[int][]int)
		}
		idx.inverted[term][entryPos] = append(idx.inverted[term][entryPos], pos)

		if !seenTerms[term] {
			idx.docFreq[term]++
			seenTerms[term] = true
		}
	}
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// matchesCategory reports whether an entry passes the category filter.
func matchesCategory(entry Category, categories []Category) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c == CategoryAll || c == entry {
			return true
		}
	}
	return false
}

// blankQuery reports whether a query is empty or whitespace-only.
func blankQuery(query string) bool {
	return strings.TrimSpace(query) == ""
}
