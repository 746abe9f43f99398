package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SnapshotStore persists the last successfully detected header per
// document family. Absence is a normal condition, not an error; writers
// are last-write-wins.
type SnapshotStore interface {
	// Load returns the stored field names for a family and whether a
	// snapshot exists.
	Load(ctx context.Context, family string) ([]string, bool, error)
	// Save replaces the family's snapshot with the given field names.
	Save(ctx context.Context, family string, fields []string) error
}

// Resolution is the outcome of schema resolution for one section.
type Resolution struct {
	Schema         Schema
	Source         SchemaSource
	Variant        Variant
	HeaderDetected bool
	// DataStart is the index of the first data row inside the section
	// (1 when the first row was consumed as a header).
	DataStart int
}

// Resolver determines the field layout of a section. It is total: some
// schema always comes back, through the chain detected header → persisted
// snapshot → supplied fallback → built-in default → synthetic names.
type Resolver struct {
	store  SnapshotStore
	logger *zap.Logger
}

// NewResolver builds a resolver around the given snapshot store. The
// store may be nil, which skips the snapshot step of the chain.
func NewResolver(store SnapshotStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve picks the schema and layout variant for a section given its
// rows as cell slices. Snapshot store failures degrade to the next chain
// step; they never fail the call.
func (r *Resolver) Resolve(ctx context.Context, family FamilyConfig, rows [][]string, supplied []string) Resolution {
	res := Resolution{}

	if len(rows) > 0 && DetectHeader(rows[0]) {
		names := HeaderNames(rows[0])
		variant := r.pickVariant(family, rows[1:])
		// Free-text rows carry exactly the variant's field count. A
		// "header" of a different width is a report title or a wrapped
		// fragment, not a column row.
		if len(variant.Patterns) == 0 || len(names) == len(variant.Fields) {
			res.HeaderDetected = true
			res.DataStart = 1
			res.Source = SchemaFromHeader
			res.Schema = family.schemaFromNames(family.Name, names)
			res.Variant = variant
			if r.store != nil {
				if err := r.store.Save(ctx, family.Name, names); err != nil {
					r.logger.Warn("header snapshot save failed",
						zap.String("family", family.Name), zap.Error(err))
				}
			}
			return res
		}
	}

	res.Variant = r.pickVariant(family, rows)

	if names, ok := r.loadSnapshot(ctx, family.Name); ok {
		res.Source = SchemaFromSnapshot
		res.Schema = family.schemaFromNames(family.Name, names)
		return res
	}
	if len(supplied) > 0 {
		res.Source = SchemaFromSupplied
		res.Schema = family.schemaFromNames(family.Name, supplied)
		return res
	}
	if len(res.Variant.Fields) > 0 {
		res.Source = SchemaFromDefault
		res.Schema = Schema{Name: family.Name, Fields: res.Variant.Fields}
		return res
	}
	if len(family.DefaultFields) > 0 {
		res.Source = SchemaFromDefault
		res.Schema = family.schemaFromNames(family.Name, family.DefaultFields)
		return res
	}

	res.Source = SchemaFromSynthetic
	res.Schema = syntheticSchema(family.Name, rows)
	return res
}

func (r *Resolver) loadSnapshot(ctx context.Context, family string) ([]string, bool) {
	if r.store == nil {
		return nil, false
	}
	names, ok, err := r.store.Load(ctx, family)
	if err != nil {
		r.logger.Warn("header snapshot load failed",
			zap.String("family", family), zap.Error(err))
		return nil, false
	}
	return names, ok && len(names) > 0
}

// pickVariant runs the shape probe over the first non-blank data row.
// The first variant whose every probed position matches wins; when no
// probe succeeds the first (most specific) variant is kept. The guess is
// surfaced in metadata so callers can override it.
func (r *Resolver) pickVariant(family FamilyConfig, dataRows [][]string) Variant {
	switch len(family.Variants) {
	case 0:
		return Variant{}
	case 1:
		return family.Variants[0]
	}

	var probe []string
	for _, row := range dataRows {
		if !isBlankRow(row) {
			probe = row
			break
		}
	}
	if probe == nil {
		return family.Variants[0]
	}

	for _, v := range family.Variants {
		if variantMatches(family, v, probe) {
			return v
		}
	}
	return family.Variants[0]
}

func variantMatches(family FamilyConfig, v Variant, row []string) bool {
	if len(v.Probe) == 0 {
		return false
	}
	for i, class := range v.Probe {
		var value string
		if i < len(row) {
			value = row[i]
		}
		if !family.matchesShape(value, class) {
			return false
		}
	}
	return true
}

// syntheticSchema yields placeholder names Col_1..Col_N sized to the
// longest row observed, typed as plain text.
func syntheticSchema(name string, rows [][]string) Schema {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	fields := make([]FieldSpec, width)
	for i := range fields {
		fields[i] = FieldSpec{Name: fmt.Sprintf("Col_%d", i+1), Type: FieldText}
	}
	return Schema{Name: name, Fields: fields}
}
