package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Parsing Tools
	ReportParsePDFDescription = `Recover typed records from a PDF registry report.

**When to use:** You have a registry report, invoice or production report as a PDF and need its table rows back as structured, typed records.

**Why it's useful:** Extracted PDF text loses column boundaries; this tool re-detects headers, resolves the field layout and splits each row despite inconsistent or missing separators, then normalizes dates, numbers, booleans and category labels to canonical forms.

**Examples:**
• Herd register: "Parse herd-2024.pdf with family herd-register to list every animal with its ear tag"
• Delivery summary: "Parse deliveries-05.pdf to get per-section delivery records"

**Common workflows:**
1. Known template: report_parse_pdf with the family name → consume records
2. Unknown template: report_detect_family → report_parse_pdf with the winner
3. Headerless export: parse once with a headered file, later headerless files reuse the persisted header snapshot

**Best practices:** Check the metadata's schema_source and variant to see how the layout was resolved; skipped_rows > 0 means some lines matched no known row shape.`

	ReportParseXLSXDescription = `Recover typed records from a spreadsheet registry report.

**When to use:** The report arrived as an .xlsx/.xlsm workbook instead of a PDF.

**Why it's useful:** Spreadsheet rows are already split into cells, but headers may be absent and the same template ships in several near-identical layouts; the shape probe picks the right variant and every cell still goes through type normalization.

**Examples:**
• Milk yields: "Parse milk-april.xlsx with family milk-production"
• Specific sheet: "Parse workbook.xlsx sheet 'Suvestinė'"

**Common workflows:**
1. Single sheet: report_parse_xlsx → records + metadata
2. Multi-sheet workbook: parse each sheet separately, naming it in the call

**Best practices:** The chosen layout variant is surfaced in metadata; override the family if the probe guessed wrong on edge-case data.`

	ReportParseTextDescription = `Recover typed records from already-extracted report text.

**When to use:** A collaborator already pulled the text out of the source document and you only need the recovery pipeline.

**Why it's useful:** Runs exactly the same header detection, schema resolution, row tokenization and field normalization as the file-based tools, without touching disk.

**Examples:**
• Piped text: "Parse this pasted herd register text with family herd-register"

**Best practices:** Pass the text exactly as extracted; the pipeline does its own whitespace normalization.`

	ReportDetectFamilyDescription = `Guess which document family a report text belongs to.

**When to use:** You received a report but do not know which template produced it.

**Why it's useful:** Scores each known family's content keywords and section markers against the text, diacritic-insensitively, so the right family can be passed to the parse tools.

**Best practices:** The guess is advisory; low scores mean you should inspect the document yourself.`

	ReportFamiliesDescription = `List the built-in document families.

**When to use:** To discover what templates the server understands before parsing.

**Why it's useful:** Shows each family's section markers, identity field and known layout variants, which is exactly what the parse tools need to be told.`

	ReportServerInfoDescription = `Get server information, available tools and usage guidance.

**When to use:** First contact with the server, or when deciding which tool fits a task.

**Why it's useful:** Summarizes configuration, the configured report directory and the recommended workflow for each document kind.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"report_parse_pdf":     ReportParsePDFDescription,
	"report_parse_xlsx":    ReportParseXLSXDescription,
	"report_parse_text":    ReportParseTextDescription,
	"report_detect_family": ReportDetectFamilyDescription,
	"report_families":      ReportFamiliesDescription,
	"report_server_info":   ReportServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
