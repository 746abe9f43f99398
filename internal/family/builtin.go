// Package family carries the built-in document family configurations:
// marker schemes, layout variants, pattern cascades and category tables
// for the registry reports the service understands. Everything here is
// data; the recovery pipeline in internal/report never branches on a
// family name.
package family

import (
	"sort"

	"github.com/Chatbots-automated/zub-berciunai/internal/report"
)

// Date literal shared by the row patterns: ISO-ish year-first or European
// day-first, any of '-', '.', '/' as separators.
const dateExpr = `\d{4}[-./]\d{1,2}[-./]\d{1,2}|\d{1,2}[-./]\d{1,2}[-./]\d{4}`

// HerdRegister is the cattle register listing: one row per animal, ear
// tag as identity. Extracted PDF text loses column boundaries, so the
// row cascade goes from the full nine-column layout down to a minimal
// five-column one.
func HerdRegister() report.FamilyConfig {
	fullFields := []report.FieldSpec{
		{Name: "No", Type: report.FieldNumber},
		{Name: "Species", Type: report.FieldCategory},
		{Name: "Tag", Type: report.FieldTag},
		{Name: "Name", Type: report.FieldText},
		{Name: "Sex", Type: report.FieldCategory},
		{Name: "Breed", Type: report.FieldFreeText},
		{Name: "BirthDate", Type: report.FieldDate},
		{Name: "AgeMonths", Type: report.FieldNumber},
		{Name: "Status", Type: report.FieldText},
	}

	patterns := []report.RowPattern{
		// Breed is a free-text span that may itself contain digits,
		// slashes and punctuation, so it is captured non-greedily up to
		// the date literal that always follows it. The age may arrive
		// glued to the date with no separating space; the fixed date
		// width leaves the remaining digit run to the age group.
		report.MustRowPattern("full",
			`^(\d+)\.? (\p{L}+) ([A-Za-z]{2}\d{6,}) (\S+) (\p{L}+) (.+?) (`+dateExpr+`) ?(\d{1,3})(?: (\S+))?$`,
			"No", "Species", "Tag", "Name", "Sex", "Breed", "BirthDate", "AgeMonths", "Status"),
		report.MustRowPattern("reduced",
			`^(\d+)\.? ([A-Za-z]{2}\d{6,}) (\S+) (\p{L}+) (.+?) (`+dateExpr+`) ?(\d{1,3})$`,
			"No", "Tag", "Name", "Sex", "Breed", "BirthDate", "AgeMonths"),
		report.MustRowPattern("minimal",
			`^(\d+)\.? ([A-Za-z]{2}\d{6,}) (\p{L}+) (`+dateExpr+`) ?(\d{1,3})$`,
			"No", "Tag", "Sex", "BirthDate", "AgeMonths"),
	}

	return report.FamilyConfig{
		Name:          "herd-register",
		IdentityField: "Tag",
		Variants: []report.Variant{
			{Name: "register", Fields: fullFields, Patterns: patterns},
		},
		FieldTypes: map[string]report.FieldType{
			"Nr":          report.FieldNumber,
			"No":          report.FieldNumber,
			"Rūšis":       report.FieldCategory,
			"Species":     report.FieldCategory,
			"Numeris":     report.FieldTag,
			"Tag":         report.FieldTag,
			"Vardas":      report.FieldText,
			"Name":        report.FieldText,
			"Lytis":       report.FieldCategory,
			"Sex":         report.FieldCategory,
			"Veislė":      report.FieldFreeText,
			"Breed":       report.FieldFreeText,
			"Gimimo data": report.FieldDate,
			"BirthDate":   report.FieldDate,
			"Amžius":      report.FieldNumber,
			"AgeMonths":   report.FieldNumber,
			"Būsena":      report.FieldText,
			"Status":      report.FieldText,
		},
		YesLiteral: "Taip",
		NoLiteral:  "Ne",
		Categories: []report.CategoryGroup{
			{Canonical: "Telyčia", Prefixes: []string{"telyč", "telyc"}},
			{Canonical: "Buliukas", Prefixes: []string{"buliuk"}},
			{Canonical: "Bulius", Prefixes: []string{"buli"}},
			{Canonical: "Karvė", Prefixes: []string{"karv"}},
			{Canonical: "Galvijas", Prefixes: []string{"galvij"}},
		},
	}
}

// MilkProduction is the milk yield report, delivered as a spreadsheet.
// Two layouts share the same template: the extended one carries an audit
// column that stays blank in exported files. The shape probe tells them
// apart from the first data row; when it cannot, the extended (more
// specific) layout wins and the choice is surfaced in metadata.
func MilkProduction() report.FamilyConfig {
	extended := report.Variant{
		Name: "extended",
		Fields: []report.FieldSpec{
			{Name: "Tag", Type: report.FieldTag},
			{Name: "Name", Type: report.FieldText},
			{Name: "MilkKg", Type: report.FieldNumber},
			{Name: "FatPct", Type: report.FieldNumber},
			{Name: "ProteinPct", Type: report.FieldNumber},
			{Name: "Audit", Type: report.FieldText},
			{Name: "Date", Type: report.FieldDate},
		},
		Probe: []report.ShapeClass{
			report.ShapeTag, report.ShapeAny, report.ShapeNumber,
			report.ShapeNumber, report.ShapeNumber, report.ShapeBlank,
			report.ShapeDate,
		},
	}
	standard := report.Variant{
		Name: "standard",
		Fields: []report.FieldSpec{
			{Name: "Tag", Type: report.FieldTag},
			{Name: "Name", Type: report.FieldText},
			{Name: "MilkKg", Type: report.FieldNumber},
			{Name: "FatPct", Type: report.FieldNumber},
			{Name: "ProteinPct", Type: report.FieldNumber},
			{Name: "Date", Type: report.FieldDate},
		},
		Probe: []report.ShapeClass{
			report.ShapeTag, report.ShapeAny, report.ShapeNumber,
			report.ShapeNumber, report.ShapeNumber, report.ShapeDate,
		},
	}

	return report.FamilyConfig{
		Name:          "milk-production",
		IdentityField: "Tag",
		Variants:      []report.Variant{extended, standard},
		FieldTypes: map[string]report.FieldType{
			"Numeris":    report.FieldTag,
			"Tag":        report.FieldTag,
			"Vardas":     report.FieldText,
			"Name":       report.FieldText,
			"Pienas":     report.FieldNumber,
			"MilkKg":     report.FieldNumber,
			"Riebalai":   report.FieldNumber,
			"FatPct":     report.FieldNumber,
			"Baltymai":   report.FieldNumber,
			"ProteinPct": report.FieldNumber,
			"Data":       report.FieldDate,
			"Date":       report.FieldDate,
		},
		YesLiteral: "Taip",
		NoLiteral:  "Ne",
		Categories: []report.CategoryGroup{
			{Canonical: "Karvė", Prefixes: []string{"karv"}},
		},
	}
}

// Deliveries is the multi-section delivery summary: numbered part
// headings split the document into independent tables with identical
// layout, one row per delivery.
func Deliveries() report.FamilyConfig {
	fields := []report.FieldSpec{
		{Name: "Date", Type: report.FieldDate},
		{Name: "Time", Type: report.FieldTime},
		{Name: "Tag", Type: report.FieldTag},
		{Name: "Product", Type: report.FieldCategory},
		{Name: "Quantity", Type: report.FieldNumber},
		{Name: "Accepted", Type: report.FieldBool},
	}

	patterns := []report.RowPattern{
		report.MustRowPattern("full",
			`^(`+dateExpr+`) (\d{1,2}:\d{2}) ([A-Za-z]{2}\d{6,}) (\p{L}+) ([\d., ]+?) (\p{L}+)$`,
			"Date", "Time", "Tag", "Product", "Quantity", "Accepted"),
		report.MustRowPattern("reduced",
			`^(`+dateExpr+`) ([A-Za-z]{2}\d{6,}) ([\d.,]+) (\p{L}+)$`,
			"Date", "Tag", "Quantity", "Accepted"),
	}

	return report.FamilyConfig{
		Name:          "deliveries",
		Markers:       []string{"1 DALIS", "2 DALIS"},
		IdentityField: "Tag",
		Variants: []report.Variant{
			{Name: "summary", Fields: fields, Patterns: patterns},
		},
		FieldTypes: map[string]report.FieldType{
			"Data":      report.FieldDate,
			"Date":      report.FieldDate,
			"Laikas":    report.FieldTime,
			"Time":      report.FieldTime,
			"Numeris":   report.FieldTag,
			"Tag":       report.FieldTag,
			"Produktas": report.FieldCategory,
			"Product":   report.FieldCategory,
			"Kiekis":    report.FieldNumber,
			"Quantity":  report.FieldNumber,
			"Priimta":   report.FieldBool,
			"Accepted":  report.FieldBool,
		},
		YesLiteral: "Taip",
		NoLiteral:  "Ne",
		Categories: []report.CategoryGroup{
			{Canonical: "Pienas", Prefixes: []string{"pien"}},
			{Canonical: "Mėsa", Prefixes: []string{"mės", "mes"}},
		},
	}
}

// Builtin returns every built-in family keyed by name.
func Builtin() map[string]report.FamilyConfig {
	families := []report.FamilyConfig{
		HerdRegister(),
		MilkProduction(),
		Deliveries(),
	}
	out := make(map[string]report.FamilyConfig, len(families))
	for _, f := range families {
		out[f.Name] = f
	}
	return out
}

// Lookup fetches a built-in family by name.
func Lookup(name string) (report.FamilyConfig, bool) {
	f, ok := Builtin()[name]
	return f, ok
}

// Names lists the built-in family names in stable order.
func Names() []string {
	m := Builtin()
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
