package expansion

import (
	"context"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/repository"
)

// LinkResolver supplies the entities a key links to. It is the only
// asynchronous boundary in the engine: implementations backed by a remote
// source may block, so both operations take a context. The engine calls it
// during phase 1 of an expansion and buffers the results; nothing is
// written to the visible graph until resolution has fully succeeded.
type LinkResolver interface {
	ResolveLinkedRecords(ctx context.Context, key string) ([]*entity.Record, error)
	ResolveLinkedDocuments(ctx context.Context, key string) ([]*entity.Document, error)
}

// RepositoryResolver resolves links from the local repository. It is the
// trivial, always-available implementation: links whose targets are not
// resident simply resolve to nothing.
type RepositoryResolver struct {
	repo *repository.Repository
}

// NewRepositoryResolver creates a resolver reading from the repository.
func NewRepositoryResolver(repo *repository.Repository) *RepositoryResolver {
	return &RepositoryResolver{repo: repo}
}

// ResolveLinkedRecords returns the resident records the keyed entity links to.
func (r *RepositoryResolver) ResolveLinkedRecords(ctx context.Context, key string) ([]*entity.Record, error) {
	links := r.linksOf(key, func(rec *entity.Record) []entity.Link { return rec.LinkedRecords },
		func(doc *entity.Document) []entity.Link { return doc.LinkedRecords })

	out := make([]*entity.Record, 0, len(links))
	for _, l := range links {
		if rec, ok := r.repo.GetRecord(l.TargetKey); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ResolveLinkedDocuments returns the resident documents the keyed entity links to.
func (r *RepositoryResolver) ResolveLinkedDocuments(ctx context.Context, key string) ([]*entity.Document, error) {
	links := r.linksOf(key, func(rec *entity.Record) []entity.Link { return rec.LinkedDocuments },
		func(doc *entity.Document) []entity.Link { return doc.LinkedDocuments })

	out := make([]*entity.Document, 0, len(links))
	for _, l := range links {
		if doc, ok := r.repo.GetDocument(l.TargetKey); ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

// linksOf finds the link list for a key, whichever entity kind holds it.
func (r *RepositoryResolver) linksOf(key string, fromRecord func(*entity.Record) []entity.Link, fromDocument func(*entity.Document) []entity.Link) []entity.Link {
	if rec, ok := r.repo.GetRecord(key); ok {
		return fromRecord(rec)
	}
	if doc, ok := r.repo.GetDocument(key); ok {
		return fromDocument(doc)
	}
	return nil
}
