package layout

import (
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
)

// HierarchicalConfig configures the hierarchical layout
type HierarchicalConfig struct {
	// RootID designates the BFS root. Empty selects the first node (input
	// order) without incoming edges, falling back to the first node.
	RootID     string
	Direction  Direction
	NodeExtent float64 // size reserved per node along both axes
	LevelGap   float64 // extra space between levels
	NodeGap    float64 // extra space between siblings within a level
}

// HierarchicalLayout arranges nodes in BFS levels from a root. It is
// deterministic for a given node/edge set and root.
type HierarchicalLayout struct {
	config HierarchicalConfig
}

// NewHierarchicalLayout creates a hierarchical layout, filling in defaults.
func NewHierarchicalLayout(config HierarchicalConfig) *HierarchicalLayout {
	if config.NodeExtent == 0 {
		config.NodeExtent = 160
	}
	if config.LevelGap == 0 {
		config.LevelGap = 120
	}
	if config.NodeGap == 0 {
		config.NodeGap = 40
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout assigns each node a BFS level and positions levels along
// the primary axis, centering each level's nodes on the cross axis.
func (hl *HierarchicalLayout) ComputeLayout(nodes []*graphview.VisualNode, edges []*graphview.VisualEdge) (map[string]graphview.Position, error) {
	positions := make(map[string]graphview.Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	root := hl.pickRoot(nodes, edges)

	// BFS levels from the root, following edge direction
	outgoing := make(map[string][]string)
	for _, e := range edges {
		outgoing[e.Source] = append(outgoing[e.Source], e.Target)
	}

	level := map[string]int{root: 0}
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range outgoing[current] {
			if _, seen := level[next]; seen {
				continue
			}
			level[next] = level[current] + 1
			queue = append(queue, next)
		}
	}

	// Group by level in input order; unreached nodes default to level 0
	byLevel := make(map[int][]string)
	maxLevel := 0
	for _, n := range nodes {
		lvl := level[n.ID]
		byLevel[lvl] = append(byLevel[lvl], n.ID)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	levelStep := hl.config.NodeExtent + hl.config.LevelGap
	nodeStep := hl.config.NodeExtent + hl.config.NodeGap

	for lvl := 0; lvl <= maxLevel; lvl++ {
		ids := byLevel[lvl]
		primary := float64(lvl) * levelStep
		for i, id := range ids {
			// Center the level's nodes around 0 on the cross axis
			cross := (float64(i) - float64(len(ids)-1)/2) * nodeStep
			positions[id] = hl.orient(primary, cross)
		}
	}

	return positions, nil
}

// pickRoot selects the designated root, or the first node without incoming
// edges, or the first node.
func (hl *HierarchicalLayout) pickRoot(nodes []*graphview.VisualNode, edges []*graphview.VisualEdge) string {
	if hl.config.RootID != "" {
		for _, n := range nodes {
			if n.ID == hl.config.RootID {
				return n.ID
			}
		}
	}

	in := incomingCount(edges)
	for _, n := range nodes {
		if in[n.ID] == 0 {
			return n.ID
		}
	}
	return nodes[0].ID
}

// orient maps (primary, cross) coordinates onto x/y per the direction.
func (hl *HierarchicalLayout) orient(primary, cross float64) graphview.Position {
	switch hl.config.Direction {
	case DirectionDown:
		return graphview.Position{X: cross, Y: primary}
	case DirectionLeft:
		return graphview.Position{X: -primary, Y: cross}
	case DirectionUp:
		return graphview.Position{X: cross, Y: -primary}
	default: // DirectionRight
		return graphview.Position{X: primary, Y: cross}
	}
}
