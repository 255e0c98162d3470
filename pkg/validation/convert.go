package validation

import (
	"fmt"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

// ToRecord converts a validated request into a domain record, normalizing
// link types onto the closed enumeration.
func (req *RecordRequest) ToRecord() (*entity.Record, error) {
	linkedRecords, err := convertLinks(req.LinkedRecords)
	if err != nil {
		return nil, err
	}
	linkedDocuments, err := convertLinks(req.LinkedDocuments)
	if err != nil {
		return nil, err
	}

	return &entity.Record{
		Key:             req.Key,
		Title:           req.Title,
		Description:     req.Description,
		Metadata:        entity.Metadata(req.Metadata),
		LinkedRecords:   linkedRecords,
		LinkedDocuments: linkedDocuments,
	}, nil
}

// ToDocument converts a validated request into a domain document.
func (req *DocumentRequest) ToDocument() (*entity.Document, error) {
	linkedRecords, err := convertLinks(req.LinkedRecords)
	if err != nil {
		return nil, err
	}
	linkedDocuments, err := convertLinks(req.LinkedDocuments)
	if err != nil {
		return nil, err
	}

	versions := make([]entity.Version, 0, len(req.Versions))
	for _, v := range req.Versions {
		versions = append(versions, entity.Version{
			VersionID:     v.VersionID,
			VersionNumber: v.VersionNumber,
			CreatedAt:     v.CreatedAt,
			Metadata:      entity.Metadata(v.Metadata),
		})
	}

	return &entity.Document{
		Key:             req.Key,
		Title:           req.Title,
		Description:     req.Description,
		Metadata:        entity.Metadata(req.Metadata),
		Versions:        versions,
		LinkedRecords:   linkedRecords,
		LinkedDocuments: linkedDocuments,
	}, nil
}

func convertLinks(links []LinkRequest) ([]entity.Link, error) {
	if len(links) == 0 {
		return nil, nil
	}
	out := make([]entity.Link, 0, len(links))
	for i, l := range links {
		lt, ok := entity.NormalizeLinkType(l.Type)
		if !ok {
			return nil, fmt.Errorf("link %d: unknown link type '%s'", i, l.Type)
		}
		out = append(out, entity.Link{TargetKey: l.TargetKey, Type: lt})
	}
	return out, nil
}
