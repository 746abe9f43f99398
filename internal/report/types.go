package report

// FieldType classifies how a raw field value is normalized.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTag      FieldType = "tag"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
	FieldNumber   FieldType = "number"
	FieldBool     FieldType = "boolean"
	FieldCategory FieldType = "category"
	FieldFreeText FieldType = "free_text"
)

// FieldSpec describes one column of a resolved schema.
type FieldSpec struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Schema is an ordered, fixed-length field layout applied to the data rows
// of one section. Schemas are values; they are never mutated after
// resolution.
type Schema struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

// FieldNames returns the field names in schema order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields in the schema.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Grid is row-major cell data read from a spreadsheet. A cell holding the
// empty string is treated as absent; short rows are padded with absent
// cells during slicing.
type Grid [][]string

// Record maps resolved field names to normalized values. Every record
// produced from one schema carries exactly the schema's field names as its
// key set; a value is nil when the raw cell was absent or unparseable.
type Record map[string]any

// SchemaSource tells which step of the resolution chain produced the field
// name list.
type SchemaSource string

const (
	SchemaFromHeader    SchemaSource = "header"
	SchemaFromSnapshot  SchemaSource = "snapshot"
	SchemaFromSupplied  SchemaSource = "supplied"
	SchemaFromDefault   SchemaSource = "default"
	SchemaFromSynthetic SchemaSource = "synthetic"
)

// SectionStats reports per-section row accounting.
type SectionStats struct {
	Marker         string       `json:"marker,omitempty"`
	Rows           int          `json:"rows"`
	Records        int          `json:"records"`
	SkippedRows    int          `json:"skipped_rows"`
	HeaderDetected bool         `json:"header_detected"`
	SchemaSource   SchemaSource `json:"schema_source"`
	Variant        string       `json:"variant,omitempty"`
}

// Metadata describes how a parse run resolved its input. The chosen
// variant is always surfaced so callers can override a wrong guess.
type Metadata struct {
	RunID        string         `json:"run_id"`
	Family       string         `json:"family"`
	Variant      string         `json:"variant,omitempty"`
	SchemaSource SchemaSource   `json:"schema_source"`
	Fields       []string       `json:"fields"`
	Sections     []SectionStats `json:"sections"`
	TotalRows    int            `json:"total_rows"`
	TotalRecords int            `json:"total_records"`
	SkippedRows  int            `json:"skipped_rows"`
	Duplicates   int            `json:"duplicates"`
}

// ParseResult is the core's output: the deduplicated record list plus
// resolution metadata.
type ParseResult struct {
	Records  []Record `json:"records"`
	Metadata Metadata `json:"metadata"`
}
