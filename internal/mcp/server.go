package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Chatbots-automated/zub-berciunai/internal/config"
	"github.com/Chatbots-automated/zub-berciunai/internal/descriptions"
	"github.com/Chatbots-automated/zub-berciunai/internal/family"
	"github.com/Chatbots-automated/zub-berciunai/internal/report"
	"github.com/Chatbots-automated/zub-berciunai/internal/source"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	parser     *report.Service
	pdfReader  *source.PDFReader
	xlsxReader *source.XLSXReader
	classifier *family.Classifier
	logger     *zap.Logger
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, parser *report.Service, logger *zap.Logger) (*Server, error) {
	if parser == nil {
		return nil, fmt.Errorf("parser cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		parser:     parser,
		pdfReader:  source.NewPDFReader(cfg.MaxFileSize),
		xlsxReader: source.NewXLSXReader(cfg.MaxFileSize),
		classifier: family.NewClassifier(),
		logger:     logger,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parsePDFTool := mcp.NewTool(
		"report_parse_pdf",
		mcp.WithDescription(descriptions.ReportParsePDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF report"),
		),
		mcp.WithString("family",
			mcp.Description("Document family name (uses the configured default if empty)"),
		),
		mcp.WithString("fields",
			mcp.Description("Optional comma-separated fallback field names for headerless documents"),
		),
	)
	s.mcpServer.AddTool(parsePDFTool, s.handleReportParsePDF)

	parseXLSXTool := mcp.NewTool(
		"report_parse_xlsx",
		mcp.WithDescription(descriptions.ReportParseXLSXDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the spreadsheet report"),
		),
		mcp.WithString("sheet",
			mcp.Description("Sheet name (first sheet if empty)"),
		),
		mcp.WithString("family",
			mcp.Description("Document family name (uses the configured default if empty)"),
		),
		mcp.WithString("fields",
			mcp.Description("Optional comma-separated fallback field names for headerless documents"),
		),
	)
	s.mcpServer.AddTool(parseXLSXTool, s.handleReportParseXLSX)

	parseTextTool := mcp.NewTool(
		"report_parse_text",
		mcp.WithDescription(descriptions.ReportParseTextDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Already-extracted report text"),
		),
		mcp.WithString("family",
			mcp.Description("Document family name (uses the configured default if empty)"),
		),
		mcp.WithString("fields",
			mcp.Description("Optional comma-separated fallback field names for headerless documents"),
		),
	)
	s.mcpServer.AddTool(parseTextTool, s.handleReportParseText)

	detectFamilyTool := mcp.NewTool(
		"report_detect_family",
		mcp.WithDescription(descriptions.ReportDetectFamilyDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Report text to classify"),
		),
	)
	s.mcpServer.AddTool(detectFamilyTool, s.handleReportDetectFamily)

	familiesTool := mcp.NewTool(
		"report_families",
		mcp.WithDescription(descriptions.ReportFamiliesDescription),
	)
	s.mcpServer.AddTool(familiesTool, s.handleReportFamilies)

	serverInfoTool := mcp.NewTool(
		"report_server_info",
		mcp.WithDescription(descriptions.ReportServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleReportServerInfo)
}

// Handler functions
func (s *Server) handleReportParsePDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fam, supplied, err := s.familyFromArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.pdfReader.ReadText(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.parser.ParseText(ctx, fam, doc.Text, supplied)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Parsed PDF report: %s (%d pages, %d bytes)\n", doc.Path, doc.Pages, doc.Size)
	return s.formatParseResult(responseText, result)
}

func (s *Server) handleReportParseXLSX(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fam, supplied, err := s.familyFromArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sheet := request.GetString("sheet", "")
	grid, err := s.xlsxReader.ReadGrid(path, sheet)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.parser.ParseGrid(ctx, fam, grid, supplied)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Parsed spreadsheet report: %s\n", path)
	return s.formatParseResult(responseText, result)
}

func (s *Server) handleReportParseText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fam, supplied, err := s.familyFromArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.parser.ParseText(ctx, fam, text, supplied)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.formatParseResult("Parsed report text\n", result)
}

func (s *Server) handleReportDetectFamily(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := s.classifier.Detect(text)
	if len(results) == 0 {
		return mcp.NewToolResultText("No known document family matched the text."), nil
	}

	responseText := "Document family candidates (best first):\n"
	for i, r := range results {
		responseText += fmt.Sprintf("%d. %s (score %.2f", i+1, r.Family, r.Score)
		if len(r.Keywords) > 0 {
			responseText += fmt.Sprintf(", keywords: %s", strings.Join(r.Keywords, ", "))
		}
		if r.MarkersHit > 0 {
			responseText += fmt.Sprintf(", markers hit: %d", r.MarkersHit)
		}
		responseText += ")\n"
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleReportFamilies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseText := "Built-in document families:\n"
	for _, name := range family.Names() {
		fam, _ := family.Lookup(name)
		responseText += fmt.Sprintf("\n• %s\n", fam.Name)
		responseText += fmt.Sprintf("  Identity field: %s\n", fam.IdentityField)
		if len(fam.Markers) > 0 {
			responseText += fmt.Sprintf("  Section markers: %s\n", strings.Join(fam.Markers, ", "))
		}
		for _, v := range fam.Variants {
			responseText += fmt.Sprintf("  Variant %s: %s\n", v.Name, strings.Join(v.FieldNames(), ", "))
		}
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleReportServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Mode: %s\n", s.config.Mode)
	text += fmt.Sprintf("Report directory: %s\n", s.config.ReportDirectory)
	if s.config.SnapshotDB != "" {
		text += fmt.Sprintf("Snapshot database: %s\n", s.config.SnapshotDB)
	} else {
		text += "Snapshot database: in-memory\n"
	}
	text += fmt.Sprintf("Default family: %s\n", s.config.DefaultFamily)
	text += fmt.Sprintf("Max file size: %d bytes\n", s.config.MaxFileSize)

	text += "\n🛠️  Available Tools:\n"
	for _, name := range descriptions.GetAllToolNames() {
		text += fmt.Sprintf("  • %s\n", name)
	}

	text += "\nRecommended workflow:\n"
	text += "1. report_detect_family when the template is unknown\n"
	text += "2. report_parse_pdf / report_parse_xlsx / report_parse_text with the family name\n"
	text += "3. Inspect metadata.schema_source, variant and skipped_rows before trusting the records\n"
	return mcp.NewToolResultText(text), nil
}

// familyFromArgs resolves the family argument against the built-in
// registry and splits the optional fallback field list.
func (s *Server) familyFromArgs(request mcp.CallToolRequest) (report.FamilyConfig, []string, error) {
	name := request.GetString("family", "")
	if name == "" {
		name = s.config.DefaultFamily
	}
	fam, ok := family.Lookup(name)
	if !ok {
		return report.FamilyConfig{}, nil, fmt.Errorf("unknown document family: %s (known: %s)",
			name, strings.Join(family.Names(), ", "))
	}

	var supplied []string
	if raw := request.GetString("fields", ""); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				supplied = append(supplied, f)
			}
		}
	}
	return fam, supplied, nil
}

// formatParseResult renders records and metadata as indented JSON after
// a short human-readable summary line.
func (s *Server) formatParseResult(preamble string, result *report.ParseResult) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}

	text := preamble
	text += fmt.Sprintf("Family: %s, variant: %s, schema source: %s\n",
		result.Metadata.Family, result.Metadata.Variant, result.Metadata.SchemaSource)
	text += fmt.Sprintf("Records: %d, skipped rows: %d, duplicates removed: %d\n",
		result.Metadata.TotalRecords, result.Metadata.SkippedRows, result.Metadata.Duplicates)
	text += "\n"
	text += string(payload)
	return mcp.NewToolResultText(text), nil
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		s.logger.Debug("starting report MCP server in stdio mode",
			zap.String("report_directory", s.config.ReportDirectory))
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	s.logger.Info("starting report MCP server over HTTP",
		zap.String("address", s.config.Address()))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	}
}
