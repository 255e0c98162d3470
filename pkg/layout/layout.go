package layout

import (
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
)

// Layout positions a node set. Implementations are pure: same nodes, edges
// and config produce the same result (ForceDirected requires a fixed Seed
// for that to hold). The returned map carries a new position for every
// input node; inputs are not mutated.
type Layout interface {
	ComputeLayout(nodes []*graphview.VisualNode, edges []*graphview.VisualEdge) (map[string]graphview.Position, error)
}

// Direction controls which way a hierarchical layout grows.
type Direction int

const (
	// DirectionRight grows levels left to right (the default)
	DirectionRight Direction = iota
	// DirectionDown grows levels top to bottom
	DirectionDown
	// DirectionLeft grows levels right to left
	DirectionLeft
	// DirectionUp grows levels bottom to top
	DirectionUp
)

// Apply writes computed positions back onto the nodes.
func Apply(nodes []*graphview.VisualNode, positions map[string]graphview.Position) {
	for _, n := range nodes {
		if pos, ok := positions[n.ID]; ok {
			n.Position = pos
		}
	}
}

// adjacency builds an undirected neighbour map for force simulation.
func adjacency(edges []*graphview.VisualEdge) map[string]map[string]bool {
	adj := make(map[string]map[string]bool)
	add := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]bool)
		}
		adj[a][b] = true
	}
	for _, e := range edges {
		add(e.Source, e.Target)
		add(e.Target, e.Source)
	}
	return adj
}

// incomingCount maps node id to its number of incoming edges.
func incomingCount(edges []*graphview.VisualEdge) map[string]int {
	in := make(map[string]int)
	for _, e := range edges {
		in[e.Target]++
	}
	return in
}
