package models

// Worksheet row kinds, matching the "type" column of the input CSV.
const (
	RecordKindMetadata = "metadata"
	RecordKindFacet    = "facet"
)

// FieldRecord is one parsed worksheet row: one application declaring one
// field under one category. Immutable once extracted.
type FieldRecord struct {
	Application string
	Kind        string // metadata or facet
	Category    string
	Field       string
	Values      []string // optional facet enum values
}
