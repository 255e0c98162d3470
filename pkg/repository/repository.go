package repository

import (
	"sync"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
	"github.com/dd0wney/cluso-graphview/pkg/metrics"
)

// Repository owns the deduplicated record and document sets. It is the
// single source of truth for entity lookup by key: ingesting the same key
// twice never produces two stored entities. Reads are safe for concurrent
// use; upserts are serialized by the internal lock.
type Repository struct {
	mu sync.RWMutex

	records   map[string]*entity.Record
	documents map[string]*entity.Document

	// Insertion order, for stable iteration (search tie-breaks depend on it)
	recordOrder   []string
	documentOrder []string

	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates an empty repository.
func New(logger logging.Logger) *Repository {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Repository{
		records:   make(map[string]*entity.Record),
		documents: make(map[string]*entity.Document),
		logger:    logger.With(logging.Component("repository")),
	}
}

// WithMetrics attaches a metrics registry. Ingestion counters stay silent
// without one.
func (repo *Repository) WithMetrics(reg *metrics.Registry) *Repository {
	repo.metrics = reg
	return repo
}

// Build creates a repository from bulk input, applying the dedup and
// version-merge rules in input order. The input slices are not modified.
func Build(records []*entity.Record, documents []*entity.Document, logger logging.Logger) *Repository {
	repo := New(logger)
	for _, r := range records {
		repo.UpsertRecord(r)
	}
	for _, d := range documents {
		repo.UpsertDocument(d)
	}
	return repo
}

// UpsertRecord ingests a record. The first record seen for a key is
// canonical; later records with the same key are discarded.
func (repo *Repository) UpsertRecord(r *entity.Record) {
	if r == nil || r.Key == "" {
		return
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[r.Key]; exists {
		repo.logger.Debug("duplicate record discarded", logging.EntityKey(r.Key))
		if repo.metrics != nil {
			repo.metrics.RecordDuplicateDiscarded()
		}
		return
	}

	repo.records[r.Key] = cloneRecord(r)
	repo.recordOrder = append(repo.recordOrder, r.Key)
}

// UpsertDocument ingests a document. On key collision the first-seen
// document's non-version fields stay canonical and the version sets are
// unioned by VersionID. Versions without an id are skipped and logged.
func (repo *Repository) UpsertDocument(d *entity.Document) {
	if d == nil || d.Key == "" {
		return
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	existing, exists := repo.documents[d.Key]
	if !exists {
		doc := cloneDocument(d)
		doc.Versions = repo.mergeVersions(d.Key, nil, d.Versions)
		repo.documents[d.Key] = doc
		repo.documentOrder = append(repo.documentOrder, d.Key)
		return
	}

	before := len(existing.Versions)
	existing.Versions = repo.mergeVersions(d.Key, existing.Versions, d.Versions)
	if repo.metrics != nil {
		repo.metrics.RecordDuplicateDiscarded()
		repo.metrics.RecordVersionsMerged(len(existing.Versions) - before)
	}
}

// mergeVersions unions incoming versions into base by VersionID, dropping
// malformed entries, and returns the union sorted newest-first.
// Must be called with the lock held.
func (repo *Repository) mergeVersions(docKey string, base []entity.Version, incoming []entity.Version) []entity.Version {
	seen := make(map[string]bool, len(base))
	merged := make([]entity.Version, 0, len(base)+len(incoming))

	for _, v := range base {
		seen[v.VersionID] = true
		merged = append(merged, v)
	}

	for _, v := range incoming {
		if v.VersionID == "" {
			repo.logger.Warn("version without id skipped during merge", logging.EntityKey(docKey))
			if repo.metrics != nil {
				repo.metrics.RecordMalformedVersionSkipped()
			}
			continue
		}
		if seen[v.VersionID] {
			continue
		}
		seen[v.VersionID] = true
		v.Metadata = cloneMetadata(v.Metadata)
		merged = append(merged, v)
	}

	entity.SortVersions(merged)
	return merged
}

// GetRecord looks up a record by key. Unknown keys report absence, never
// an error.
func (repo *Repository) GetRecord(key string) (*entity.Record, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	r, ok := repo.records[key]
	return r, ok
}

// GetDocument looks up a document by key.
func (repo *Repository) GetDocument(key string) (*entity.Document, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	d, ok := repo.documents[key]
	return d, ok
}

// Records returns all records in insertion order.
func (repo *Repository) Records() []*entity.Record {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]*entity.Record, 0, len(repo.recordOrder))
	for _, key := range repo.recordOrder {
		out = append(out, repo.records[key])
	}
	return out
}

// Documents returns all documents in insertion order.
func (repo *Repository) Documents() []*entity.Document {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]*entity.Document, 0, len(repo.documentOrder))
	for _, key := range repo.documentOrder {
		out = append(out, repo.documents[key])
	}
	return out
}

// RecordCount returns the number of deduplicated records.
func (repo *Repository) RecordCount() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.records)
}

// DocumentCount returns the number of deduplicated documents.
func (repo *Repository) DocumentCount() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.documents)
}

// cloneRecord copies a record so later caller mutations cannot reach the
// stored canonical entity.
func cloneRecord(r *entity.Record) *entity.Record {
	out := *r
	out.Metadata = cloneMetadata(r.Metadata)
	out.LinkedRecords = append([]entity.Link(nil), r.LinkedRecords...)
	out.LinkedDocuments = append([]entity.Link(nil), r.LinkedDocuments...)
	return &out
}

func cloneDocument(d *entity.Document) *entity.Document {
	out := *d
	out.Metadata = cloneMetadata(d.Metadata)
	out.Versions = nil
	out.LinkedRecords = append([]entity.Link(nil), d.LinkedRecords...)
	out.LinkedDocuments = append([]entity.Link(nil), d.LinkedDocuments...)
	return &out
}

func cloneMetadata(m entity.Metadata) entity.Metadata {
	if m == nil {
		return nil
	}
	out := make(entity.Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
