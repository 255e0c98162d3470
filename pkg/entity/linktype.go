package entity

// LinkType is the closed set of semantic relationships an edge can carry.
// Unknown values are rejected or defaulted at the ingestion boundary, never
// at use-site.
type LinkType string

const (
	// LinkRelated is the generic association and the ingestion default.
	LinkRelated LinkType = "related"
	// LinkReference marks an explicit citation of another entity.
	LinkReference LinkType = "reference"
	// LinkDependsOn marks a dependency on another entity.
	LinkDependsOn LinkType = "depends_on"
	// LinkHierarchy is the intrinsic parent-child relationship. Document
	// version edges always carry this type.
	LinkHierarchy LinkType = "hierarchy"
)

// DefaultLinkType is applied when an ingested link omits its type.
const DefaultLinkType = LinkRelated

// IsValid reports whether lt is a member of the closed enumeration.
func (lt LinkType) IsValid() bool {
	switch lt {
	case LinkRelated, LinkReference, LinkDependsOn, LinkHierarchy:
		return true
	}
	return false
}

// NormalizeLinkType maps an ingested value onto the closed enumeration,
// substituting the default for the empty string. The second return is false
// for values that are neither empty nor valid.
func NormalizeLinkType(raw string) (LinkType, bool) {
	if raw == "" {
		return DefaultLinkType, true
	}
	lt := LinkType(raw)
	return lt, lt.IsValid()
}
