package graphview

import (
	"encoding/json"
	"testing"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

func TestGetOrCreateRecordMemoizes(t *testing.T) {
	idx := NewNodeIndex()
	rec := &entity.Record{Key: "R1", Title: "Record One"}

	first := idx.GetOrCreateRecord(rec, Position{X: 10, Y: 20})
	second := idx.GetOrCreateRecord(rec, Position{X: 999, Y: 999})

	if first != second {
		t.Fatal("Same (key, kind) produced two distinct nodes")
	}
	// Seed position ignored on hit
	if second.Position.X != 10 || second.Position.Y != 20 {
		t.Errorf("Position re-seeded on cache hit: %+v", second.Position)
	}
	if idx.Len() != 1 {
		t.Errorf("Index should hold one node, got %d", idx.Len())
	}
}

func TestRecordAndDocumentWithSameKeyAreDistinct(t *testing.T) {
	idx := NewNodeIndex()

	rn := idx.GetOrCreateRecord(&entity.Record{Key: "X", Title: "record"}, Position{})
	dn := idx.GetOrCreateDocument(&entity.Document{Key: "X", Title: "document"}, Position{})

	if rn.ID == dn.ID {
		t.Error("Record and document nodes for the same key must have distinct ids")
	}
	if rn.ID != "record:X" || dn.ID != "document:X" {
		t.Errorf("Unexpected ids: %s / %s", rn.ID, dn.ID)
	}
}

func TestVersionNodeID(t *testing.T) {
	idx := NewNodeIndex()
	v := entity.Version{VersionID: "v1", VersionNumber: "1.0"}

	node := idx.GetOrCreateVersion("D1", v, Position{X: 5})
	if node.ID != "version:D1:v1" {
		t.Errorf("Unexpected version node id: %s", node.ID)
	}

	again := idx.GetOrCreateVersion("D1", v, Position{X: 50})
	if again != node {
		t.Error("Version node not memoized")
	}
	if again.Position.X != 5 {
		t.Error("Version position re-seeded on hit")
	}
}

func TestChildCountComputedOnCreate(t *testing.T) {
	idx := NewNodeIndex()
	doc := &entity.Document{
		Key:           "D1",
		Title:         "Doc",
		LinkedRecords: []entity.Link{{TargetKey: "R1", Type: entity.LinkRelated}},
		Versions:      []entity.Version{{VersionID: "v1"}, {VersionID: "v2"}},
	}

	node := idx.GetOrCreateDocument(doc, Position{})
	if node.ChildCount != 3 {
		t.Errorf("Document child count = %d, want 3", node.ChildCount)
	}
}

func TestByIDAndByKey(t *testing.T) {
	idx := NewNodeIndex()
	idx.GetOrCreateRecord(&entity.Record{Key: "R1", Title: "r"}, Position{})

	if _, ok := idx.ByID("record:R1"); !ok {
		t.Error("ByID lookup failed")
	}
	if _, ok := idx.ByKey("R1", KindRecord); !ok {
		t.Error("ByKey lookup failed")
	}
	if _, ok := idx.ByKey("R1", KindDocument); ok {
		t.Error("ByKey should miss for wrong kind")
	}
	if _, ok := idx.ByID("record:unknown"); ok {
		t.Error("ByID should miss for unknown id")
	}
}

func TestStateDedup(t *testing.T) {
	s := NewState()
	n := &VisualNode{ID: "record:R1", Kind: KindRecord, Key: "R1"}

	if !s.AddNode(n) {
		t.Fatal("First AddNode should succeed")
	}
	if s.AddNode(n) {
		t.Error("Duplicate AddNode should be rejected")
	}

	if !s.AddEdge("record:R1", "record:R2", entity.LinkRelated) {
		t.Fatal("First AddEdge should succeed")
	}
	if s.AddEdge("record:R1", "record:R2", entity.LinkRelated) {
		t.Error("Duplicate edge triple should be rejected")
	}
	// Same endpoints, different type: distinct edge
	if !s.AddEdge("record:R1", "record:R2", entity.LinkReference) {
		t.Error("Distinct link type should produce a distinct edge")
	}
}

func TestStateRemoveNodesSeversBoundaryEdges(t *testing.T) {
	s := NewState()
	for _, id := range []string{"a", "b", "c"} {
		s.AddNode(&VisualNode{ID: id})
	}
	s.AddEdge("a", "b", entity.LinkRelated)
	s.AddEdge("b", "c", entity.LinkRelated)
	s.AddEdge("c", "a", entity.LinkRelated)

	s.RemoveNodes(map[string]bool{"b": true})

	if s.HasNode("b") {
		t.Error("b should be removed")
	}
	if len(s.Edges) != 1 {
		t.Fatalf("Edges touching b should be severed, %d edges remain", len(s.Edges))
	}
	if s.Edges[0].Source != "c" || s.Edges[0].Target != "a" {
		t.Errorf("Wrong surviving edge: %+v", s.Edges[0])
	}
}

func TestExportJSON(t *testing.T) {
	s := NewState()
	s.AddNode(&VisualNode{ID: "record:R1", Kind: KindRecord, Key: "R1", Title: "One", Position: Position{X: 1, Y: 2}})
	s.AddEdge("record:R1", "document:D1", entity.LinkReference)

	data, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var payload ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(payload.Nodes) != 1 || payload.Nodes[0].ID != "record:R1" {
		t.Errorf("Unexpected nodes payload: %+v", payload.Nodes)
	}
	if len(payload.Edges) != 1 || payload.Edges[0].Type != "reference" {
		t.Errorf("Unexpected edges payload: %+v", payload.Edges)
	}
}

func TestNormalizePositions(t *testing.T) {
	nodes := []*VisualNode{
		{ID: "a", Position: Position{X: -100, Y: -100}},
		{ID: "b", Position: Position{X: 100, Y: 100}},
	}

	NormalizePositions(nodes, 800, 600, 50)

	for _, n := range nodes {
		if n.Position.X < 50 || n.Position.X > 750 {
			t.Errorf("Node %s X out of bounds: %f", n.ID, n.Position.X)
		}
		if n.Position.Y < 50 || n.Position.Y > 550 {
			t.Errorf("Node %s Y out of bounds: %f", n.ID, n.Position.Y)
		}
	}
}
