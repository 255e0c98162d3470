package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp dataset: %v", err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeDataset(t, `{
		"records": [
			{"key": "R1", "title": "First", "linkedRecords": [{"targetKey": "R2", "linkType": "depends_on"}]},
			{"key": "R2", "title": "Second"}
		],
		"documents": [
			{"key": "D1", "title": "Doc", "versions": [{"versionId": "v1", "versionNumber": "1.0"}]}
		]
	}`)

	records, documents, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	if len(records) != 2 || len(documents) != 1 {
		t.Fatalf("Got %d records, %d documents", len(records), len(documents))
	}
	if records[0].LinkedRecords[0].Type != entity.LinkDependsOn {
		t.Errorf("Link type = %q, want depends_on", records[0].LinkedRecords[0].Type)
	}
}

func TestLoadDatasetDefaultsLinkType(t *testing.T) {
	path := writeDataset(t, `{
		"records": [{"key": "R1", "title": "First", "linkedRecords": [{"targetKey": "R2"}]}]
	}`)

	records, _, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if records[0].LinkedRecords[0].Type != entity.LinkRelated {
		t.Errorf("Missing link type should default to related, got %q", records[0].LinkedRecords[0].Type)
	}
}

func TestLoadShippedDataset(t *testing.T) {
	records, documents, err := LoadDataset("../../dataset.json")
	if err != nil {
		t.Fatalf("Shipped dataset must load: %v", err)
	}
	if len(records) == 0 || len(documents) == 0 {
		t.Fatalf("Shipped dataset is empty: %d records, %d documents", len(records), len(documents))
	}
}

func TestLoadDatasetRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing title", `{"records": [{"key": "R1"}]}`},
		{"bad link type", `{"records": [{"key": "R1", "title": "x", "linkedRecords": [{"targetKey": "R2", "linkType": "friend_of"}]}]}`},
		{"bad key characters", `{"records": [{"key": "no spaces", "title": "x"}]}`},
		{"not json", `[`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDataset(t, tc.content)
			if _, _, err := LoadDataset(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
