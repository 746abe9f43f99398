package report

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the core entry point: it turns a raw text blob or a cell
// grid plus a family configuration into typed records and resolution
// metadata. One call owns all intermediate state; the snapshot store is
// the only thing shared across calls.
type Service struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewService builds the recovery pipeline around a snapshot store. The
// store may be nil when no persistence is wanted.
func NewService(store SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: NewResolver(store, logger),
		logger:   logger,
	}
}

// ParseText recovers records from an extracted text stream. Only
// ErrEmptyInput and MissingMarkerError abort the call; unmatched rows
// and unparseable fields degrade to skip counts and nil values.
func (s *Service) ParseText(ctx context.Context, family FamilyConfig, text string, supplied []string) (*ParseResult, error) {
	lines := NormalizeLines(text)
	sections, err := SplitTextSections(lines, family.Markers)
	if err != nil {
		return nil, err
	}

	result := s.newResult(family)
	normalizer := NewNormalizer(family)

	for _, sec := range sections {
		cells := make([][]string, len(sec.Lines))
		for i, l := range sec.Lines {
			cells[i] = strings.Fields(l)
		}
		res := s.resolver.Resolve(ctx, family, cells, supplied)
		s.noteResolution(result, res)

		stats := SectionStats{
			Marker:         sec.Marker,
			HeaderDetected: res.HeaderDetected,
			SchemaSource:   res.Source,
			Variant:        res.Variant.Name,
		}

		tok := NewTokenizer(res.Variant)
		for i := res.DataStart; i < len(sec.Lines); i++ {
			stats.Rows++
			var rec Record
			if len(res.Variant.Patterns) > 0 {
				raw, _, ok := tok.Match(sec.Lines[i])
				if !ok {
					stats.SkippedRows++
					continue
				}
				rec = buildPatternRecord(res.Schema, res.Variant, raw, normalizer)
			} else {
				if len(cells[i]) == 0 {
					stats.SkippedRows++
					continue
				}
				rec = buildCellRecord(res.Schema, res.Variant, cells[i], normalizer)
			}
			result.Records = append(result.Records, rec)
			stats.Records++
		}
		s.closeSection(result, stats)
	}

	s.finish(result, family)
	return result, nil
}

// ParseGrid recovers records from spreadsheet rows. Grid sections are
// already tokenized into cells, so rows slice directly against the
// resolved schema; blank interior rows are counted as skipped.
func (s *Service) ParseGrid(ctx context.Context, family FamilyConfig, grid Grid, supplied []string) (*ParseResult, error) {
	sections, err := SplitGridSections(grid, family.Markers)
	if err != nil {
		return nil, err
	}

	result := s.newResult(family)
	normalizer := NewNormalizer(family)

	for _, sec := range sections {
		res := s.resolver.Resolve(ctx, family, sec.Rows, supplied)
		s.noteResolution(result, res)

		stats := SectionStats{
			Marker:         sec.Marker,
			HeaderDetected: res.HeaderDetected,
			SchemaSource:   res.Source,
			Variant:        res.Variant.Name,
		}

		for i := res.DataStart; i < len(sec.Rows); i++ {
			stats.Rows++
			if isBlankRow(sec.Rows[i]) {
				stats.SkippedRows++
				continue
			}
			rec := buildCellRecord(res.Schema, res.Variant, sec.Rows[i], normalizer)
			result.Records = append(result.Records, rec)
			stats.Records++
		}
		s.closeSection(result, stats)
	}

	s.finish(result, family)
	return result, nil
}

func (s *Service) newResult(family FamilyConfig) *ParseResult {
	return &ParseResult{
		Records: []Record{},
		Metadata: Metadata{
			RunID:  uuid.NewString(),
			Family: family.Name,
		},
	}
}

// noteResolution records the first section's resolution as the run-level
// schema answer; sections normally share one layout.
func (s *Service) noteResolution(result *ParseResult, res Resolution) {
	if result.Metadata.Fields != nil {
		return
	}
	result.Metadata.Fields = res.Schema.FieldNames()
	result.Metadata.SchemaSource = res.Source
	result.Metadata.Variant = res.Variant.Name
}

func (s *Service) closeSection(result *ParseResult, stats SectionStats) {
	result.Metadata.Sections = append(result.Metadata.Sections, stats)
	result.Metadata.TotalRows += stats.Rows
	result.Metadata.SkippedRows += stats.SkippedRows
}

func (s *Service) finish(result *ParseResult, family FamilyConfig) {
	if hasField(result.Metadata.Fields, family.IdentityField) {
		deduped, dropped := Deduplicate(result.Records, family.IdentityField)
		result.Records = deduped
		result.Metadata.Duplicates = dropped
	}
	result.Metadata.TotalRecords = len(result.Records)

	s.logger.Debug("parse finished",
		zap.String("run_id", result.Metadata.RunID),
		zap.String("family", family.Name),
		zap.String("variant", result.Metadata.Variant),
		zap.String("schema_source", string(result.Metadata.SchemaSource)),
		zap.Int("records", result.Metadata.TotalRecords),
		zap.Int("skipped_rows", result.Metadata.SkippedRows),
	)
}

func hasField(fields []string, name string) bool {
	if name == "" {
		return false
	}
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

// buildPatternRecord assembles a record from tokenizer output. Schema
// and variant fields bridge positionally, so header-derived names still
// pick up the variant's semantic types.
func buildPatternRecord(schema Schema, variant Variant, raw map[string]string, n *Normalizer) Record {
	rec := make(Record, schema.Len())
	for i, f := range schema.Fields {
		spec := f
		var value string
		if i < len(variant.Fields) {
			spec.Type = variant.Fields[i].Type
			value = raw[variant.Fields[i].Name]
		}
		rec[f.Name] = n.Normalize(spec, value)
	}
	return rec
}

// buildCellRecord assembles a record by slicing cells against the schema
// positionally. Short rows pad with absent cells; surplus cells beyond
// the schema are dropped.
func buildCellRecord(schema Schema, variant Variant, row []string, n *Normalizer) Record {
	rec := make(Record, schema.Len())
	for i, f := range schema.Fields {
		spec := f
		if i < len(variant.Fields) {
			spec.Type = variant.Fields[i].Type
		}
		var value string
		if i < len(row) {
			value = row[i]
		}
		rec[f.Name] = n.Normalize(spec, value)
	}
	return rec
}
