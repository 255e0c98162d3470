package entity

// Metadata is an opaque key-value bag attached to entities. The engine
// passes it through to renderers untouched and never inspects its contents.
type Metadata map[string]string

// Link is a typed reference from one entity to another by key.
type Link struct {
	TargetKey string   `json:"targetKey"`
	Type      LinkType `json:"linkType"`
}

// Record is a domain record entity. The Key is immutable once created.
type Record struct {
	Key             string   `json:"key"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Metadata        Metadata `json:"metadata,omitempty"`
	LinkedRecords   []Link   `json:"linkedRecords,omitempty"`
	LinkedDocuments []Link   `json:"linkedDocuments,omitempty"`
}

// Document is a versioned document entity. Versions are owned exclusively
// by their document and are unique by VersionID within it.
type Document struct {
	Key             string    `json:"key"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"`
	Versions        []Version `json:"versions,omitempty"`
	LinkedRecords   []Link    `json:"linkedRecords,omitempty"`
	LinkedDocuments []Link    `json:"linkedDocuments,omitempty"`
}

// Version is a single version of a Document.
type Version struct {
	VersionID     string   `json:"versionId"`
	VersionNumber string   `json:"versionNumber"`
	CreatedAt     string   `json:"createdAt"` // ISO-8601, sorts correctly as a string
	Metadata      Metadata `json:"metadata,omitempty"`
}

// distinctLinkCount counts distinct target keys across the given link lists.
func distinctLinkCount(lists ...[]Link) int {
	seen := make(map[string]bool)
	for _, links := range lists {
		for _, l := range links {
			seen[l.TargetKey] = true
		}
	}
	return len(seen)
}

// ChildCount returns the number of children a record expansion materializes:
// distinct linked record keys plus distinct linked document keys.
func (r *Record) ChildCount() int {
	return distinctLinkCount(r.LinkedRecords) + distinctLinkCount(r.LinkedDocuments)
}

// ChildCount returns the number of children a document expansion
// materializes: distinct linked record and document keys plus one child per
// version.
func (d *Document) ChildCount() int {
	return distinctLinkCount(d.LinkedRecords) + distinctLinkCount(d.LinkedDocuments) + len(d.Versions)
}
