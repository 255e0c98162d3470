package graphview

import (
	"encoding/json"
	"math"
)

// ExportPayload is the renderer-facing JSON shape of the visible graph.
type ExportPayload struct {
	Nodes []NodeViz `json:"nodes"`
	Edges []EdgeViz `json:"edges"`
}

// NodeViz is a flattened node for renderers
type NodeViz struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Key        string            `json:"key"`
	Title      string            `json:"title"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Expanded   bool              `json:"expanded"`
	ChildCount int               `json:"childCount"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// EdgeViz is a flattened edge for renderers
type EdgeViz struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"linkType"`
}

// ExportJSON serializes the visible graph for an external renderer.
func (s *State) ExportJSON() ([]byte, error) {
	payload := ExportPayload{
		Nodes: make([]NodeViz, 0, len(s.Nodes)),
		Edges: make([]EdgeViz, 0, len(s.Edges)),
	}

	for _, n := range s.Nodes {
		payload.Nodes = append(payload.Nodes, NodeViz{
			ID:         n.ID,
			Kind:       string(n.Kind),
			Key:        n.Key,
			Title:      n.Title,
			X:          n.Position.X,
			Y:          n.Position.Y,
			Expanded:   n.Expanded,
			ChildCount: n.ChildCount,
			Metadata:   n.Metadata,
		})
	}

	for _, e := range s.Edges {
		payload.Edges = append(payload.Edges, EdgeViz{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Type:   string(e.Type),
		})
	}

	return json.Marshal(payload)
}

// NormalizePositions scales node positions to fit a width×height canvas
// with the given padding, preserving relative placement. Useful for
// renderers with a fixed viewport.
func NormalizePositions(nodes []*VisualNode, width, height, padding float64) {
	if len(nodes) == 0 {
		return
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, n := range nodes {
		minX = math.Min(minX, n.Position.X)
		maxX = math.Max(maxX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxY = math.Max(maxY, n.Position.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	for _, n := range nodes {
		n.Position = Position{
			X: padding + ((n.Position.X-minX)/rangeX)*targetWidth,
			Y: padding + ((n.Position.Y-minY)/rangeY)*targetHeight,
		}
	}
}
