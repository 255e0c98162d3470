package layout

import (
	"math"

	"github.com/dd0wney/cluso-graphview/pkg/graphview"
)

// CircularConfig configures the circular layout
type CircularConfig struct {
	CenterX   float64
	CenterY   float64
	MinRadius float64 // lower bound on the circle radius
	Spacing   float64 // radius contribution per node
}

// CircularLayout places nodes evenly on a circle whose radius grows with
// the node count.
type CircularLayout struct {
	config CircularConfig
}

// NewCircularLayout creates a circular layout, filling defaults.
func NewCircularLayout(config CircularConfig) *CircularLayout {
	if config.MinRadius == 0 {
		config.MinRadius = 100
	}
	if config.Spacing == 0 {
		config.Spacing = 30
	}
	return &CircularLayout{config: config}
}

// ComputeLayout places node i at angle i*2π/n on the circle.
func (cl *CircularLayout) ComputeLayout(nodes []*graphview.VisualNode, edges []*graphview.VisualEdge) (map[string]graphview.Position, error) {
	positions := make(map[string]graphview.Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	radius := math.Max(cl.config.MinRadius, float64(len(nodes))*cl.config.Spacing)
	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, n := range nodes {
		angle := float64(i) * angleStep
		positions[n.ID] = graphview.Position{
			X: cl.config.CenterX + radius*math.Cos(angle),
			Y: cl.config.CenterY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
