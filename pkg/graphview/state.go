package graphview

import "github.com/dd0wney/cluso-graphview/pkg/entity"

// State is the working (visibleNodes, visibleEdges, expandedFlags) triple
// handed to the renderer after every operation. It is owned by the caller
// and mutated only through the expansion engine.
type State struct {
	Nodes    []*VisualNode
	Edges    []*VisualEdge
	Expanded map[string]bool

	nodeIDs map[string]bool
	edgeIDs map[string]bool
}

// NewState creates an empty visible graph.
func NewState() *State {
	return &State{
		Expanded: make(map[string]bool),
		nodeIDs:  make(map[string]bool),
		edgeIDs:  make(map[string]bool),
	}
}

// HasNode reports whether a node id is currently visible.
func (s *State) HasNode(id string) bool {
	return s.nodeIDs[id]
}

// HasEdge reports whether an edge with this exact (source, target, type)
// triple is currently visible.
func (s *State) HasEdge(source, target string, linkType entity.LinkType) bool {
	return s.edgeIDs[EdgeID(source, target, linkType)]
}

// AddNode appends a node unless its id is already visible. Reports whether
// the node was added.
func (s *State) AddNode(n *VisualNode) bool {
	if n == nil || s.nodeIDs[n.ID] {
		return false
	}
	s.Nodes = append(s.Nodes, n)
	s.nodeIDs[n.ID] = true
	return true
}

// AddEdge appends an edge unless its identity triple is already visible.
// Reports whether the edge was added.
func (s *State) AddEdge(source, target string, linkType entity.LinkType) bool {
	id := EdgeID(source, target, linkType)
	if s.edgeIDs[id] {
		return false
	}
	s.Edges = append(s.Edges, &VisualEdge{
		ID:     id,
		Source: source,
		Target: target,
		Type:   linkType,
	})
	s.edgeIDs[id] = true
	return true
}

// RemoveNodes removes every node whose id is in the given set, plus every
// edge with either endpoint in the set. The subtree is fully severed: edges
// crossing the removal boundary go too.
func (s *State) RemoveNodes(ids map[string]bool) {
	if len(ids) == 0 {
		return
	}

	nodes := s.Nodes[:0]
	for _, n := range s.Nodes {
		if ids[n.ID] {
			delete(s.nodeIDs, n.ID)
			delete(s.Expanded, n.ID)
			continue
		}
		nodes = append(nodes, n)
	}
	s.Nodes = nodes

	edges := s.Edges[:0]
	for _, e := range s.Edges {
		if ids[e.Source] || ids[e.Target] {
			delete(s.edgeIDs, e.ID)
			continue
		}
		edges = append(edges, e)
	}
	s.Edges = edges
}

// NodeByID returns the visible node with the given id.
func (s *State) NodeByID(id string) (*VisualNode, bool) {
	if !s.nodeIDs[id] {
		return nil, false
	}
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// OutgoingEdges returns the visible edges whose source is the given id.
func (s *State) OutgoingEdges(id string) []*VisualEdge {
	var out []*VisualEdge
	for _, e := range s.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// IncomingEdges returns the visible edges whose target is the given id.
func (s *State) IncomingEdges(id string) []*VisualEdge {
	var out []*VisualEdge
	for _, e := range s.Edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}
