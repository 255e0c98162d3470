package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
	"github.com/dd0wney/cluso-graphview/pkg/validation"
)

// Dataset is the on-disk ingestion format: raw requests, validated and
// normalized before they reach the repository.
type Dataset struct {
	Records   []validation.RecordRequest   `json:"records"`
	Documents []validation.DocumentRequest `json:"documents"`
}

// LoadDataset reads, validates and converts a JSON dataset file.
func LoadDataset(path string) ([]*entity.Record, []*entity.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, nil, fmt.Errorf("parse dataset: %w", err)
	}

	records := make([]*entity.Record, 0, len(ds.Records))
	for i := range ds.Records {
		req := &ds.Records[i]
		if err := validation.ValidateRecordRequest(req); err != nil {
			return nil, nil, fmt.Errorf("record %d (%s): %w", i, req.Key, err)
		}
		r, err := req.ToRecord()
		if err != nil {
			return nil, nil, fmt.Errorf("record %d (%s): %w", i, req.Key, err)
		}
		records = append(records, r)
	}

	documents := make([]*entity.Document, 0, len(ds.Documents))
	for i := range ds.Documents {
		req := &ds.Documents[i]
		if err := validation.ValidateDocumentRequest(req); err != nil {
			return nil, nil, fmt.Errorf("document %d (%s): %w", i, req.Key, err)
		}
		d, err := req.ToDocument()
		if err != nil {
			return nil, nil, fmt.Errorf("document %d (%s): %w", i, req.Key, err)
		}
		documents = append(documents, d)
	}

	return records, documents, nil
}
