package report

import (
	"regexp"
	"strings"
)

// ShapeClass is the expected semantic shape of a value at a fixed
// position, used by the variant probe to tell near-identical layouts
// apart.
type ShapeClass string

const (
	ShapeAny      ShapeClass = "any"
	ShapeBlank    ShapeClass = "blank"
	ShapeNumber   ShapeClass = "number"
	ShapeDate     ShapeClass = "date"
	ShapeTime     ShapeClass = "time"
	ShapeYesNo    ShapeClass = "yes_no"
	ShapeTag      ShapeClass = "tag"
	ShapeCategory ShapeClass = "category"
)

var (
	shapeNumberPattern = regexp.MustCompile(`^-?[0-9]+([.,][0-9]+)?$`)
	shapeDatePattern   = regexp.MustCompile(`^[0-9]{1,4}[-./][0-9]{1,2}[-./][0-9]{1,4}$`)
	shapeTimePattern   = regexp.MustCompile(`^[0-9]{1,2}:[0-9]{2}$`)
)

// Variant is one known, mutually exclusive field layout of a document
// family. Patterns is the row-shape cascade for free-text sections,
// ordered most specific first; Probe lists the expected shape per column
// for grid disambiguation.
type Variant struct {
	Name     string
	Fields   []FieldSpec
	Patterns []RowPattern
	Probe    []ShapeClass
}

// FieldNames returns the variant's field names in order.
func (v Variant) FieldNames() []string {
	names := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Name
	}
	return names
}

// CategoryGroup maps every known spelling prefix of one categorical label
// (diacritic and plain) to a single canonical form.
type CategoryGroup struct {
	Canonical string
	Prefixes  []string
}

// FamilyConfig describes one document family: its section markers, known
// layout variants, identity key, fallback names and the literals its
// categorical fields use. Configs are data; the pipeline never
// special-cases a family by name.
type FamilyConfig struct {
	Name          string
	Markers       []string
	IdentityField string
	// DefaultFields is the built-in fallback name list used when no
	// header, snapshot or supplied list is available and the family has
	// no variants.
	DefaultFields []string
	// Variants is ordered from most to least specific (highest field
	// count first). The probe defaults to the first entry when no probe
	// succeeds.
	Variants []Variant
	// FieldTypes assigns semantic types to field names resolved from a
	// header, snapshot or supplied list. Lookup is case-insensitive;
	// unknown names normalize as plain text.
	FieldTypes map[string]FieldType
	// YesLiteral / NoLiteral are the family's two-valued category
	// literals (compared diacritic- and case-insensitively).
	YesLiteral string
	NoLiteral  string
	Categories []CategoryGroup
}

// fieldTypeFor resolves the semantic type for a field name, falling back
// to plain text.
func (f FamilyConfig) fieldTypeFor(name string) FieldType {
	for k, t := range f.FieldTypes {
		if strings.EqualFold(k, name) {
			return t
		}
	}
	return FieldText
}

// schemaFromNames builds a schema by typing each resolved name through
// the family's field-type table.
func (f FamilyConfig) schemaFromNames(name string, names []string) Schema {
	fields := make([]FieldSpec, len(names))
	for i, n := range names {
		fields[i] = FieldSpec{Name: n, Type: f.fieldTypeFor(n)}
	}
	return Schema{Name: name, Fields: fields}
}

// matchesShape reports whether a raw value fits the expected shape class.
// Two-valued literals are compared against the family's yes/no words.
func (f FamilyConfig) matchesShape(value string, class ShapeClass) bool {
	value = strings.TrimSpace(value)
	switch class {
	case ShapeAny, ShapeCategory:
		return true
	case ShapeBlank:
		return value == ""
	case ShapeNumber:
		return shapeNumberPattern.MatchString(value)
	case ShapeDate:
		return shapeDatePattern.MatchString(value)
	case ShapeTime:
		return shapeTimePattern.MatchString(value)
	case ShapeTag:
		return IsIdentityTag(value)
	case ShapeYesNo:
		folded := FoldKey(value)
		return folded == FoldKey(f.YesLiteral) || folded == FoldKey(f.NoLiteral)
	default:
		return false
	}
}
