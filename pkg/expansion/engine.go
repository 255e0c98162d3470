package expansion

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
	"github.com/dd0wney/cluso-graphview/pkg/layout"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
	"github.com/dd0wney/cluso-graphview/pkg/metrics"
	"github.com/dd0wney/cluso-graphview/pkg/repository"
)

// Child placement heuristics: children start one column right of their
// source, staggered vertically. Documents get a wider stagger to leave
// room for version pills; versions nest further right under their document.
const (
	childOffsetX    = 250.0
	versionOffsetX  = 400.0
	staggerStart    = -100.0
	recordStagger   = 120.0
	documentStagger = 140.0
	versionStagger  = 90.0
)

// Config assembles an Engine. Repository is required; everything else has
// a working default.
type Config struct {
	Repository *repository.Repository
	Index      *graphview.NodeIndex
	// Layout, when set, is used for every relayout as-is. When nil the
	// engine lays out each affected subgraph hierarchically, rooted at
	// the expanded node.
	Layout   layout.Layout
	Resolver LinkResolver
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

// Engine orchestrates the repository, node index and layout engine to turn
// user actions into visible-graph mutations. The working State is owned by
// the caller; every operation is atomic relative to its own inputs.
// Concurrent operations on the same node id are serialized by an in-flight
// lock per id.
type Engine struct {
	repo     *repository.Repository
	index    *graphview.NodeIndex
	fixed    layout.Layout
	resolver LinkResolver
	logger   logging.Logger
	metrics  *metrics.Registry

	sessionID string

	expansions atomic.Uint64
	collapses  atomic.Uint64

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// New creates an engine from the config.
func New(cfg Config) *Engine {
	if cfg.Index == nil {
		cfg.Index = graphview.NewNodeIndex()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewRepositoryResolver(cfg.Repository)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}

	sessionID := uuid.NewString()
	return &Engine{
		repo:      cfg.Repository,
		index:     cfg.Index,
		fixed:     cfg.Layout,
		resolver:  cfg.Resolver,
		logger:    cfg.Logger.With(logging.Component("expansion"), logging.Session(sessionID)),
		metrics:   cfg.Metrics,
		sessionID: sessionID,
		inflight:  make(map[string]*sync.Mutex),
	}
}

// Index exposes the node index, the sole authority for node creation.
func (e *Engine) Index() *graphview.NodeIndex {
	return e.index
}

// SessionID identifies this engine instance in logs.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// lockNode serializes operations on a single node id.
func (e *Engine) lockNode(id string) func() {
	e.mu.Lock()
	l, ok := e.inflight[id]
	if !ok {
		l = &sync.Mutex{}
		e.inflight[id] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// resolved buffers the outcome of expansion phase 1. Phase 2 consumes it
// without touching the resolver again.
type resolved struct {
	linkedRecords   []entity.Link
	linkedDocuments []entity.Link
	versions        []entity.Version
	records         map[string]*entity.Record
	documents       map[string]*entity.Document
}

// Expand materializes a node's direct linked entities into the visible
// graph, marks the node expanded, and relays out the affected subgraph.
// Re-expanding is idempotent: existence checks guarantee no duplicate
// nodes or edges. Unknown node ids are a no-op. A phase-1 resolver failure
// returns an error wrapping ErrResolverFailure and leaves the state
// exactly as it was.
func (e *Engine) Expand(ctx context.Context, nodeID string, state *graphview.State) error {
	unlock := e.lockNode(nodeID)
	defer unlock()

	start := time.Now()

	node, ok := e.index.ByID(nodeID)
	if !ok {
		e.logger.Debug("expand on unknown node", logging.NodeID(nodeID))
		e.record("expand", "noop", start)
		return nil
	}

	// Versions are leaves
	if node.Kind == graphview.KindVersion {
		e.markExpanded(node, state)
		e.record("expand", "success", start)
		return nil
	}

	// Phase 1: resolve. May block on the resolver; the visible graph is
	// untouched until this completes.
	res, found, err := e.resolve(ctx, node)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordResolverFailure()
		}
		e.record("expand", "error", start)
		e.logger.Error("link resolution failed", logging.NodeID(nodeID), logging.Error(err))
		return NewError("Expand").Node(nodeID).Cause(fmt.Errorf("%w: %v", ErrResolverFailure, err)).Err()
	}

	// Phase 2: synchronous materialization from the buffer.
	nodesAdded, edgesAdded := 0, 0
	if found {
		nodesAdded, edgesAdded = e.materialize(node, res, state)
	}

	e.markExpanded(node, state)
	e.relayout(state, nodeID)

	e.expansions.Add(1)
	if e.metrics != nil {
		e.metrics.RecordMaterialized(nodesAdded, edgesAdded)
		e.metrics.UpdateVisibleGraph(len(state.Nodes), len(state.Edges))
	}
	e.record("expand", "success", start)
	e.logger.Debug("expanded",
		logging.NodeID(nodeID),
		logging.Int("nodes_added", nodesAdded),
		logging.Int("edges_added", edgesAdded))
	return nil
}

// Collapse removes the node's descendant closure from the visible graph
// and flips its expanded flag. The node itself survives; memoized index
// entries are untouched, so re-expansion reuses the same nodes at their
// original positions. Unknown ids are a no-op.
func (e *Engine) Collapse(nodeID string, state *graphview.State) {
	unlock := e.lockNode(nodeID)
	defer unlock()

	start := time.Now()

	node, ok := e.index.ByID(nodeID)
	if !ok {
		e.record("collapse", "noop", start)
		return
	}

	closure := descendantClosure(state, nodeID)
	state.RemoveNodes(closure)

	state.Expanded[nodeID] = false
	node.Expanded = false

	e.collapses.Add(1)
	if e.metrics != nil {
		e.metrics.RecordCollapse(len(closure))
		e.metrics.UpdateVisibleGraph(len(state.Nodes), len(state.Edges))
	}
	e.record("collapse", "success", start)
	e.logger.Debug("collapsed", logging.NodeID(nodeID), logging.Int("removed", len(closure)))
}

// ExpandPath expands every ancestor of the target over the currently
// visible edges, wiring a seeded node into the existing graph. Ancestor
// order does not matter: expand only adds, and is idempotent.
func (e *Engine) ExpandPath(ctx context.Context, targetID string, state *graphview.State) error {
	start := time.Now()

	if _, ok := e.index.ByID(targetID); !ok {
		e.record("expand_path", "noop", start)
		return nil
	}

	ancestors := ancestorClosure(state, targetID)
	for id := range ancestors {
		if err := e.Expand(ctx, id, state); err != nil {
			e.record("expand_path", "error", start)
			return err
		}
	}

	e.record("expand_path", "success", start)
	return nil
}

// SeedNode places a standalone visual node for an entity key, typically a
// search hit about to be wired in via ExpandPath. Reports false when no
// such entity exists.
func (e *Engine) SeedNode(kind graphview.NodeKind, key string, seed graphview.Position, state *graphview.State) (*graphview.VisualNode, bool) {
	switch kind {
	case graphview.KindRecord:
		rec, ok := e.repo.GetRecord(key)
		if !ok {
			return nil, false
		}
		node := e.index.GetOrCreateRecord(rec, seed)
		state.AddNode(node)
		return node, true
	case graphview.KindDocument:
		doc, ok := e.repo.GetDocument(key)
		if !ok {
			return nil, false
		}
		node := e.index.GetOrCreateDocument(doc, seed)
		state.AddNode(node)
		return node, true
	}
	return nil, false
}

// markExpanded flips the expanded flag on both the node and the state.
func (e *Engine) markExpanded(node *graphview.VisualNode, state *graphview.State) {
	state.Expanded[node.ID] = true
	node.Expanded = true
}

// resolve is expansion phase 1: gather the source's link lists and the
// linked entities, buffering everything needed for materialization. found
// is false when the backing entity is gone; per the collapse-symmetric
// contract the caller still flips the expanded flag.
func (e *Engine) resolve(ctx context.Context, node *graphview.VisualNode) (*resolved, bool, error) {
	res := &resolved{
		records:   make(map[string]*entity.Record),
		documents: make(map[string]*entity.Document),
	}

	switch node.Kind {
	case graphview.KindRecord:
		rec, ok := e.repo.GetRecord(node.Key)
		if !ok {
			return nil, false, nil
		}
		res.linkedRecords = rec.LinkedRecords
		res.linkedDocuments = rec.LinkedDocuments
	case graphview.KindDocument:
		doc, ok := e.repo.GetDocument(node.Key)
		if !ok {
			return nil, false, nil
		}
		res.linkedRecords = doc.LinkedRecords
		res.linkedDocuments = doc.LinkedDocuments
		res.versions = doc.Versions
	default:
		return nil, false, nil
	}

	if len(res.linkedRecords) > 0 {
		records, err := e.resolver.ResolveLinkedRecords(ctx, node.Key)
		if err != nil {
			return nil, false, err
		}
		for _, r := range records {
			res.records[r.Key] = r
		}
	}

	if len(res.linkedDocuments) > 0 {
		documents, err := e.resolver.ResolveLinkedDocuments(ctx, node.Key)
		if err != nil {
			return nil, false, err
		}
		for _, d := range documents {
			res.documents[d.Key] = d
		}
	}

	return res, true, nil
}

// materialize is expansion phase 2: purely synchronous application of the
// phase-1 buffer to the visible graph. Links whose targets did not resolve
// are skipped. Existing nodes and edge triples are never duplicated.
func (e *Engine) materialize(node *graphview.VisualNode, res *resolved, state *graphview.State) (nodesAdded, edgesAdded int) {
	srcPos := node.Position

	for i, link := range res.linkedRecords {
		target, ok := res.records[link.TargetKey]
		if !ok {
			continue
		}
		seed := graphview.Position{
			X: srcPos.X + childOffsetX,
			Y: srcPos.Y + staggerStart + float64(i)*recordStagger,
		}
		child := e.index.GetOrCreateRecord(target, seed)
		if state.AddNode(child) {
			nodesAdded++
		}
		if state.AddEdge(node.ID, child.ID, link.Type) {
			edgesAdded++
		}
	}

	for i, link := range res.linkedDocuments {
		target, ok := res.documents[link.TargetKey]
		if !ok {
			continue
		}
		seed := graphview.Position{
			X: srcPos.X + childOffsetX,
			Y: srcPos.Y + staggerStart + float64(i)*documentStagger,
		}
		child := e.index.GetOrCreateDocument(target, seed)
		if state.AddNode(child) {
			nodesAdded++
		}
		if state.AddEdge(node.ID, child.ID, link.Type) {
			edgesAdded++
		}
	}

	for i, v := range res.versions {
		seed := graphview.Position{
			X: srcPos.X + versionOffsetX,
			Y: srcPos.Y + staggerStart + float64(i)*versionStagger,
		}
		child := e.index.GetOrCreateVersion(node.Key, v, seed)
		if state.AddNode(child) {
			nodesAdded++
		}
		if state.AddEdge(node.ID, child.ID, entity.LinkHierarchy) {
			edgesAdded++
		}
	}

	return nodesAdded, edgesAdded
}

// relayout recomputes positions for the visible subgraph rooted at rootID,
// translated so the root keeps its position. Branches outside the subgraph
// are not touched.
func (e *Engine) relayout(state *graphview.State, rootID string) {
	root, ok := state.NodeByID(rootID)
	if !ok {
		return
	}

	start := time.Now()

	closure := descendantClosure(state, rootID)
	closure[rootID] = true

	subNodes := make([]*graphview.VisualNode, 0, len(closure))
	for _, n := range state.Nodes {
		if closure[n.ID] {
			subNodes = append(subNodes, n)
		}
	}
	subEdges := make([]*graphview.VisualEdge, 0)
	for _, edge := range state.Edges {
		if closure[edge.Source] && closure[edge.Target] {
			subEdges = append(subEdges, edge)
		}
	}

	l := e.fixed
	algorithm := "fixed"
	if l == nil {
		l = layout.NewHierarchicalLayout(layout.HierarchicalConfig{RootID: rootID})
		algorithm = "hierarchical"
	}

	positions, err := l.ComputeLayout(subNodes, subEdges)
	if err != nil {
		e.logger.Warn("relayout failed", logging.NodeID(rootID), logging.Error(err))
		return
	}

	// Anchor the root at its current position
	anchor := root.Position
	rootPos, ok := positions[rootID]
	if !ok {
		return
	}
	dx := anchor.X - rootPos.X
	dy := anchor.Y - rootPos.Y

	for _, n := range subNodes {
		if pos, ok := positions[n.ID]; ok {
			n.Position = graphview.Position{X: pos.X + dx, Y: pos.Y + dy}
		}
	}

	if e.metrics != nil {
		e.metrics.RecordLayout(algorithm, time.Since(start))
	}
}

// record observes an operation on the metrics registry, if any.
func (e *Engine) record(operation, status string, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordExpansion(operation, status, time.Since(start))
}

// Stats is a point-in-time snapshot of engine activity.
type Stats struct {
	SessionID     string
	VisibleNodes  int
	VisibleEdges  int
	MemoizedNodes int
	Expansions    uint64
	Collapses     uint64
}

// Stats reports engine activity against the given working state.
func (e *Engine) Stats(state *graphview.State) Stats {
	return Stats{
		SessionID:     e.sessionID,
		VisibleNodes:  len(state.Nodes),
		VisibleEdges:  len(state.Edges),
		MemoizedNodes: e.index.Len(),
		Expansions:    e.expansions.Load(),
		Collapses:     e.collapses.Load(),
	}
}
