package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Chatbots-automated/zub-berciunai/internal/report"
)

// XLSXReader reads spreadsheet reports into row-major cell grids.
type XLSXReader struct {
	maxFileSize int64
}

// NewXLSXReader builds a reader enforcing the given file size limit.
func NewXLSXReader(maxFileSize int64) *XLSXReader {
	return &XLSXReader{maxFileSize: maxFileSize}
}

// Workbook is the raw grid extraction result for one spreadsheet file.
type Workbook struct {
	Path   string
	Sheets []string
	Size   int64
}

// ReadGrid opens the workbook and returns the named sheet as a cell
// grid. An empty sheet name selects the first sheet.
func (r *XLSXReader) ReadGrid(path, sheet string) (report.Grid, error) {
	if _, err := r.validate(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, sheet)
}

// ReadGridFrom reads a workbook from an in-memory stream, for callers
// that received the file over a transport instead of from disk.
func (r *XLSXReader) ReadGridFrom(src io.Reader, sheet string) (report.Grid, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, sheet)
}

// Describe lists a workbook's sheets without reading cell data.
func (r *XLSXReader) Describe(path string) (*Workbook, error) {
	info, err := r.validate(path)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return &Workbook{
		Path:   path,
		Sheets: f.GetSheetList(),
		Size:   info.Size(),
	}, nil
}

func readSheet(f *excelize.File, sheet string) (report.Grid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	grid := make(report.Grid, len(rows))
	for i, row := range rows {
		grid[i] = row
	}
	return grid, nil
}

func (r *XLSXReader) validate(path string) (os.FileInfo, error) {
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
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xlsm") {
		return nil, fmt.Errorf("file is not a spreadsheet: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if r.maxFileSize > 0 && info.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), r.maxFileSize)
	}
	return info, nil
}
