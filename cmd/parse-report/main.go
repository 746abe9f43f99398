package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Chatbots-automated/zub-berciunai/internal/family"
	"github.com/Chatbots-automated/zub-berciunai/internal/report"
	"github.com/Chatbots-automated/zub-berciunai/internal/snapshot"
	"github.com/Chatbots-automated/zub-berciunai/internal/source"
	"github.com/spf13/pflag"
)

var (
	familyName   = pflag.String("family", "", "Document family (auto-detected from content when empty)")
	sheetName    = pflag.String("sheet", "", "Sheet name for spreadsheet input (first sheet if empty)")
	fieldList    = pflag.String("fields", "", "Comma-separated fallback field names for headerless documents")
	snapshotDB   = pflag.String("snapshotdb", "", "Path to the header snapshot database (in-memory if empty)")
	outputFormat = pflag.String("format", "json", "Output format: json, summary")
	maxFileSize  = pflag.Int64("maxfilesize", 100*1024*1024, "Maximum input file size in bytes")
	verbose      = pflag.Bool("verbose", false, "Enable verbose logging")
	help         = pflag.Bool("help", false, "Show help message")
)

func main() {
	pflag.Parse()

	if *help {
		printHelp()
		return
	}

	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: report file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	path := pflag.Arg(0)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", path)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: building logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	parser := report.NewService(store, logger)

	result, err := parseFile(ctx, parser, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := outputResult(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", err)
		os.Exit(1)
	}
}

// closableStore unifies the two snapshot backends for this one-shot tool.
type closableStore interface {
	report.SnapshotStore
	Close() error
}

func openStore(ctx context.Context) (closableStore, error) {
	if *snapshotDB == "" {
		return snapshot.NewMemoryStore(), nil
	}
	return snapshot.OpenSQLite(ctx, *snapshotDB)
}

func parseFile(ctx context.Context, parser *report.Service, path string) (*report.ParseResult, error) {
	supplied := splitFields(*fieldList)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		grid, err := source.NewXLSXReader(*maxFileSize).ReadGrid(path, *sheetName)
		if err != nil {
			return nil, err
		}
		fam, err := resolveFamily("")
		if err != nil {
			return nil, err
		}
		return parser.ParseGrid(ctx, fam, grid, supplied)

	case ".pdf":
		doc, err := source.NewPDFReader(*maxFileSize).ReadText(path)
		if err != nil {
			return nil, err
		}
		fam, err := resolveFamily(doc.Text)
		if err != nil {
			return nil, err
		}
		return parser.ParseText(ctx, fam, doc.Text, supplied)

	default:
		text, err := source.ReadTextFile(path, *maxFileSize)
		if err != nil {
			return nil, err
		}
		fam, err := resolveFamily(text)
		if err != nil {
			return nil, err
		}
		return parser.ParseText(ctx, fam, text, supplied)
	}
}

// resolveFamily prefers the explicit flag; otherwise the classifier
// guesses from content. Grid input cannot be classified, so the flag is
// mandatory there.
func resolveFamily(text string) (report.FamilyConfig, error) {
	if *familyName != "" {
		fam, ok := family.Lookup(*familyName)
		if !ok {
			return report.FamilyConfig{}, fmt.Errorf("unknown document family: %s (known: %s)",
				*familyName, strings.Join(family.Names(), ", "))
		}
		return fam, nil
	}
	if text == "" {
		return report.FamilyConfig{}, fmt.Errorf("--family is required for spreadsheet input")
	}
	best, ok := family.NewClassifier().Best(text)
	if !ok {
		return report.FamilyConfig{}, fmt.Errorf("could not detect a document family; pass --family explicitly")
	}
	fam, _ := family.Lookup(best.Family)
	return fam, nil
}

func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func outputResult(result *report.ParseResult) error {
	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "summary":
		m := result.Metadata
		fmt.Printf("Family: %s\n", m.Family)
		fmt.Printf("Variant: %s\n", m.Variant)
		fmt.Printf("Schema source: %s\n", m.SchemaSource)
		fmt.Printf("Fields: %s\n", strings.Join(m.Fields, ", "))
		for _, sec := range m.Sections {
			fmt.Printf("Section %q: %d rows, %d records, %d skipped\n",
				sec.Marker, sec.Rows, sec.Records, sec.SkippedRows)
		}
		fmt.Printf("Total records: %d (skipped rows: %d, duplicates removed: %d)\n",
			m.TotalRecords, m.SkippedRows, m.Duplicates)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", *outputFormat)
	}
}

func printHelp() {
	fmt.Println("parse-report - Recover typed records from registry report files")
	fmt.Println()
	fmt.Println("Reads a PDF, spreadsheet or plain-text report and prints the recovered")
	fmt.Println("records with resolution metadata. PDF and text input can auto-detect the")
	fmt.Println("document family from content; spreadsheets need --family.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	pflag.PrintDefaults()
}

func printUsage() {
	fmt.Printf("Usage: %s [options] <report-file>\n", filepath.Base(os.Args[0]))
}
