// Package source contains the input collaborators: they turn files on
// disk into the raw text blobs and cell grids the recovery pipeline
// consumes. Nothing in here interprets table content.
package source

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFReader extracts the linearized text stream from PDF reports.
type PDFReader struct {
	maxFileSize int64
}

// NewPDFReader builds a reader enforcing the given file size limit.
func NewPDFReader(maxFileSize int64) *PDFReader {
	return &PDFReader{maxFileSize: maxFileSize}
}

// PDFDocument is the raw extraction result handed to the core.
type PDFDocument struct {
	Path  string
	Pages int
	Size  int64
	Text  string
}

// ReadText validates the file and extracts its plain text, page by page.
// Column boundaries are not preserved; that is exactly what the recovery
// pipeline compensates for.
func (r *PDFReader) ReadText(path string) (*PDFDocument, error) {
	info, err := r.validate(path)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; a single malformed page should not lose the
			// rest of the document.
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &PDFDocument{
		Path:  path,
		Pages: reader.NumPage(),
		Size:  info.Size(),
		Text:  buf.String(),
	}, nil
}

// validate checks the file exists, is a plausible PDF and passes
// relaxed pdfcpu validation before extraction is attempted.
func (r *PDFReader) validate(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if r.maxFileSize > 0 && info.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), r.maxFileSize)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}
	return info, nil
}

// PageCount returns the page count without extracting text.
func (r *PDFReader) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}
