package layout

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-graphview/pkg/graphview"
)

// ForceConfig configures the force-directed layout
type ForceConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of simulation iterations
	Seed       int64   // PRNG seed; fix it for reproducible layouts
}

// ForceDirectedLayout implements a spring-embedder layout: pairwise
// repulsion proportional to k²/distance, spring attraction along edges
// proportional to distance²/k, applied with a cooling damped step. Initial
// positions are pseudo-random; results are reproducible only with a fixed
// Seed.
type ForceDirectedLayout struct {
	config ForceConfig
}

// NewForceDirectedLayout creates a force-directed layout, filling defaults.
func NewForceDirectedLayout(config ForceConfig) *ForceDirectedLayout {
	if config.Width == 0 {
		config.Width = 800
	}
	if config.Height == 0 {
		config.Height = 600
	}
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout runs the fixed-iteration simulation.
func (fdl *ForceDirectedLayout) ComputeLayout(nodes []*graphview.VisualNode, edges []*graphview.VisualEdge) (map[string]graphview.Position, error) {
	positions := make(map[string]graphview.Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	if len(nodes) == 1 {
		positions[nodes[0].ID] = graphview.Position{
			X: fdl.config.Width / 2,
			Y: fdl.config.Height / 2,
		}
		return positions, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))
	for _, n := range nodes {
		positions[n.ID] = graphview.Position{
			X: rng.Float64() * fdl.config.Width,
			Y: rng.Float64() * fdl.config.Height,
		}
	}

	adj := adjacency(edges)

	// Optimal pairwise distance
	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes)))
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]graphview.Position, len(nodes))

		// Repulsion between all pairs
		for i, n1 := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				n2 := nodes[j]
				dx := positions[n1.ID].X - positions[n2.ID].X
				dy := positions[n1.ID].Y - positions[n2.ID].Y
				dist := math.Sqrt(dx*dx+dy*dy) + 0.01 // epsilon avoids division by zero

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				f1 := forces[n1.ID]
				forces[n1.ID] = graphview.Position{X: f1.X + fx, Y: f1.Y + fy}
				f2 := forces[n2.ID]
				forces[n2.ID] = graphview.Position{X: f2.X - fx, Y: f2.Y - fy}
			}
		}

		// Attraction along edges
		for _, n1 := range nodes {
			for neighbour := range adj[n1.ID] {
				if _, exists := positions[neighbour]; !exists {
					continue
				}

				dx := positions[n1.ID].X - positions[neighbour].X
				dy := positions[n1.ID].Y - positions[neighbour].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				f := forces[n1.ID]
				forces[n1.ID] = graphview.Position{X: f.X - fx, Y: f.Y - fy}
			}
		}

		// Damped step with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, n := range nodes {
			fx := forces[n.ID].X
			fy := forces[n.ID].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force == 0 {
				continue
			}

			step := math.Min(force, temperature) * cool
			positions[n.ID] = graphview.Position{
				X: positions[n.ID].X + (fx/force)*step,
				Y: positions[n.ID].Y + (fy/force)*step,
			}
		}

		temperature *= 0.95
	}

	return positions, nil
}
