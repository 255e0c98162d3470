package graphview

import (
	"fmt"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

// Position is a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeKind tags the entity variant a visual node materializes.
type NodeKind string

const (
	KindRecord   NodeKind = "record"
	KindDocument NodeKind = "document"
	KindVersion  NodeKind = "version"
)

// VisualNode is the positioned, renderer-facing representation of an
// entity. For a given session the mapping (entity key, kind) → ID is
// injective; the NodeIndex is the sole authority for creating nodes.
type VisualNode struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`

	// Key is the backing entity key. For version nodes it is the owning
	// document's key, with VersionID identifying the version.
	Key       string `json:"key"`
	VersionID string `json:"versionId,omitempty"`

	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	VersionNumber string          `json:"versionNumber,omitempty"`
	Metadata      entity.Metadata `json:"metadata,omitempty"`

	Position   Position `json:"position"`
	Expanded   bool     `json:"expanded"`
	ChildCount int      `json:"childCount"`
}

// VisualEdge is the renderer-facing representation of a typed link. No two
// edges share the same (source, target, type) triple.
type VisualEdge struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Target string          `json:"target"`
	Type   entity.LinkType `json:"linkType"`
}

// RecordNodeID derives the visual node id for a record key.
func RecordNodeID(key string) string {
	return "record:" + key
}

// DocumentNodeID derives the visual node id for a document key.
func DocumentNodeID(key string) string {
	return "document:" + key
}

// VersionNodeID derives the visual node id for a version of a document.
func VersionNodeID(docKey, versionID string) string {
	return "version:" + docKey + ":" + versionID
}

// EdgeID derives the edge id from its identity triple.
func EdgeID(source, target string, linkType entity.LinkType) string {
	return fmt.Sprintf("%s->%s:%s", source, target, linkType)
}
