package search

import (
	"math"
	"sort"
	"time"
)

// fuzzyWeight discounts matches found via edit distance rather than exactly.
const fuzzyWeight = 0.4

// Search scores indexed entries against the query and returns up to limit
// results ordered by descending score, ties broken by original index order.
// A blank or whitespace-only query returns an empty slice without scoring
// anything. limit <= 0 applies DefaultLimit.
func (idx *Index) Search(query string, categories []Category, limit int) []Result {
	start := time.Now()
	results := idx.search(query, categories, limit)
	if idx.metrics != nil {
		status := "success"
		if blankQuery(query) {
			status = "blank"
		}
		idx.metrics.RecordSearch(status, time.Since(start), len(results))
	}
	return results
}

func (idx *Index) search(query string, categories []Category, limit int) []Result {
	if blankQuery(query) {
		return []Result{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queryTerms := make([]string, 0)
	for _, token := range tokenize(query) {
		if term := normalize(token); term != "" {
			queryTerms = append(queryTerms, term)
		}
	}
	if len(queryTerms) == 0 {
		return []Result{}
	}

	scores := make(map[int]float64)

	for _, qt := range queryTerms {
		// Exact postings
		for entryPos, positions := range idx.inverted[qt] {
			scores[entryPos] += idx.termScore(qt, len(positions), 1.0)
		}

		// Fuzzy fallback over the term dictionary
		maxDist := fuzzyDistance(qt)
		if maxDist == 0 {
			continue
		}
		for term, postings := range idx.inverted {
			if term == qt {
				continue
			}
			if levenshteinDistance(qt, term) > maxDist {
				continue
			}
			for entryPos, positions := range postings {
				scores[entryPos] += idx.termScore(term, len(positions), fuzzyWeight)
			}
		}
	}

	order := make([]int, 0, len(scores))
	for entryPos := range scores {
		order = append(order, entryPos)
	}
	// Ascending entry position first so the stable sort preserves original
	// order among equal scores
	sort.Ints(order)
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	results := make([]Result, 0, len(order))
	for _, entryPos := range order {
		entry := idx.entries[entryPos]
		if !matchesCategory(entry.result.Category, categories) {
			continue
		}
		r := entry.result
		r.Score = scores[entryPos]
		results = append(results, r)
		if len(results) >= limit {
			break
		}
	}

	return results
}

// termScore computes a TF-IDF contribution for one matched term.
func (idx *Index) termScore(term string, tf int, weight float64) float64 {
	df := float64(idx.docFreq[term])
	idf := 1.0
	if df > 0 && len(idx.entries) > 0 {
		// Add 1 to avoid log(1) = 0 for terms in all entries
		idf = math.Log(float64(len(idx.entries)+1) / (df + 1))
	}
	return float64(tf) * (1.0 + idf) * weight
}

// fuzzyDistance picks an edit-distance budget for a query term. Short
// terms get no fuzz: almost everything is within distance 1 of "a".
func fuzzyDistance(term string) int {
	switch {
	case len(term) < 4:
		return 0
	case len(term) < 7:
		return 1
	default:
		return 2
	}
}
