package graphview

import (
	"sync"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

// NodeIndex memoizes exactly one visual node per (entity key, kind) for the
// life of a session. It keeps two mappings: by domain key, for resolving
// links, and by node id, for walking the visible graph. Collapse never
// touches the memo; re-expansion reuses the same node at its original
// position.
type NodeIndex struct {
	mu   sync.RWMutex
	byID map[string]*VisualNode
	// byKey: entity key → kind → node
	byKey map[string]map[NodeKind]*VisualNode
}

// NewNodeIndex creates an empty index.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{
		byID:  make(map[string]*VisualNode),
		byKey: make(map[string]map[NodeKind]*VisualNode),
	}
}

// GetOrCreateRecord returns the memoized node for a record, creating it at
// the seed position on first sight. The seed is ignored on a hit: a node's
// position is fixed at creation and only ever moved by the layout engine.
func (idx *NodeIndex) GetOrCreateRecord(r *entity.Record, seed Position) *VisualNode {
	return idx.getOrCreate(r.Key, KindRecord, func() *VisualNode {
		return &VisualNode{
			ID:          RecordNodeID(r.Key),
			Kind:        KindRecord,
			Key:         r.Key,
			Title:       r.Title,
			Description: r.Description,
			Metadata:    r.Metadata,
			Position:    seed,
			ChildCount:  r.ChildCount(),
		}
	})
}

// GetOrCreateDocument returns the memoized node for a document.
func (idx *NodeIndex) GetOrCreateDocument(d *entity.Document, seed Position) *VisualNode {
	return idx.getOrCreate(d.Key, KindDocument, func() *VisualNode {
		return &VisualNode{
			ID:          DocumentNodeID(d.Key),
			Kind:        KindDocument,
			Key:         d.Key,
			Title:       d.Title,
			Description: d.Description,
			Metadata:    d.Metadata,
			Position:    seed,
			ChildCount:  d.ChildCount(),
		}
	})
}

// GetOrCreateVersion returns the memoized node for a document version.
// Versions are keyed under their owning document's key.
func (idx *NodeIndex) GetOrCreateVersion(docKey string, v entity.Version, seed Position) *VisualNode {
	id := VersionNodeID(docKey, v.VersionID)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if node, ok := idx.byID[id]; ok {
		return node
	}

	node := &VisualNode{
		ID:            id,
		Kind:          KindVersion,
		Key:           docKey,
		VersionID:     v.VersionID,
		Title:         v.VersionNumber,
		VersionNumber: v.VersionNumber,
		Metadata:      v.Metadata,
		Position:      seed,
	}
	idx.byID[id] = node
	return node
}

func (idx *NodeIndex) getOrCreate(key string, kind NodeKind, build func() *VisualNode) *VisualNode {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if kinds, ok := idx.byKey[key]; ok {
		if node, ok := kinds[kind]; ok {
			return node
		}
	}

	node := build()
	idx.byID[node.ID] = node
	if idx.byKey[key] == nil {
		idx.byKey[key] = make(map[NodeKind]*VisualNode)
	}
	idx.byKey[key][kind] = node
	return node
}

// ByID looks up a memoized node by its node id.
func (idx *NodeIndex) ByID(id string) (*VisualNode, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	node, ok := idx.byID[id]
	return node, ok
}

// ByKey looks up a memoized node by domain key and kind.
func (idx *NodeIndex) ByKey(key string, kind NodeKind) (*VisualNode, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	kinds, ok := idx.byKey[key]
	if !ok {
		return nil, false
	}
	node, ok := kinds[kind]
	return node, ok
}

// Len returns the number of memoized nodes.
func (idx *NodeIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.byID)
}
