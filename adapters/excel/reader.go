package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workgen/domain/core"
	"workgen/domain/table"
	"workgen/internal"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader handles reading Excel and CSV uploads into tables
type DataReader struct {
	config Config
	logger *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(config Config) *DataReader {
	return &DataReader{config: config, logger: internal.DefaultLogger.Named("DataReader")}
}

// DetectFileType maps a filename extension to a supported file type
func DetectFileType(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FileTypeCSV, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	}
	return "", fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(filename))
}

// ReadFile reads a spreadsheet from disk
func (r *DataReader) ReadFile(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewParseError(filepath.Base(path), err)
	}
	defer f.Close()
	return r.Read(ctx, filepath.Base(path), f)
}

// Read parses an uploaded spreadsheet. The format is chosen by extension.
func (r *DataReader) Read(ctx context.Context, filename string, src io.Reader) (*table.Table, error) {
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}

	start := time.Now()
	var sheet *RawSheet
	switch fileType {
	case FileTypeCSV:
		sheet, err = r.readCSV(src)
	case FileTypeXLSX:
		sheet, err = r.readExcel(src)
	}
	if err != nil {
		r.logger.Warn("failed to parse %s: %v", filename, err)
		return nil, core.NewParseError(filename, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := table.New(sheet.Headers, sheet.Rows)
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}

	r.logger.Info("%s parsed in %.2fms (%d columns, %d rows)",
		filename, float64(time.Since(start).Nanoseconds())/1e6, t.NumColumns(), t.NumRows())
	return t, nil
}

// readCSV reads CSV data. Rows wider than the header are rejected.
func (r *DataReader) readCSV(src io.Reader) (*RawSheet, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file has no header row")
	}

	sheet := &RawSheet{Headers: rows[0]}
	for i, row := range rows[1:] {
		if len(row) > len(sheet.Headers) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", i+2, len(sheet.Headers), len(row))
		}
		if r.config.MaxRows > 0 && len(sheet.Rows) >= r.config.MaxRows {
			break
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// readExcel reads the configured (or first) worksheet
func (r *DataReader) readExcel(src io.Reader) (*RawSheet, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := r.config.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", sheetName)
	}

	sheet := &RawSheet{Headers: rows[0]}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if r.config.MaxRows > 0 && len(sheet.Rows) >= r.config.MaxRows {
			break
		}
		// Cells right of the header become unnamed columns
		for len(row) > len(sheet.Headers) {
			sheet.Headers = append(sheet.Headers, "")
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
