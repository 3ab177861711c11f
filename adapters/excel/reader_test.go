package excel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workgen/domain/core"
	"workgen/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func xlsxFixture(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadCSV(t *testing.T) {
	csvData := "\ufeffEmpID,Dept,JobSatisfaction,Dept\n1,Eng,4,a\n2,Sales,2\n3,HR,5,c\n"
	reader := NewDataReader(DefaultConfig())

	tbl, err := reader.Read(context.Background(), "employees.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"EmpID", "Dept", "JobSatisfaction", "Dept_1"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.NumRows())

	sat, ok := tbl.Column("JobSatisfaction")
	require.True(t, ok)
	assert.Equal(t, table.TypeNumeric, sat.Type)

	extra, _ := tbl.Column("Dept_1")
	assert.Equal(t, []string{"a", "", "c"}, extra.Values)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tbl, err := NewDataReader(DefaultConfig()).Read(context.Background(), "empty.csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
}

func TestReadCSVMaxRows(t *testing.T) {
	config := DefaultConfig()
	config.MaxRows = 2
	tbl, err := NewDataReader(config).Read(context.Background(), "rows.csv", strings.NewReader("a\n1\n2\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestReadParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"empty csv", "empty.csv", ""},
		{"row wider than header", "wide.csv", "a,b\n1,2,3\n"},
		{"unterminated quote", "quote.csv", "a,b\n\"1,2\n"},
		{"unsupported extension", "notes.txt", "a,b\n1,2\n"},
		{"corrupt workbook", "broken.xlsx", "not a zip archive"},
	}

	reader := NewDataReader(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := reader.Read(context.Background(), tt.filename, strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.True(t, errors.Is(err, core.ErrParse), "expected ErrParse, got %v", err)
		})
	}
}

func TestReadExcel(t *testing.T) {
	buf := xlsxFixture(t, "Sheet1", [][]interface{}{
		{"EmpID", "Dept", "Score", "Score"},
		{101, "Eng", 10, 1},
		{},
		{102, "Sales", 25.5, 2},
	})

	tbl, err := NewDataReader(DefaultConfig()).Read(context.Background(), "staff.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"EmpID", "Dept", "Score", "Score_1"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows(), "blank rows are skipped")

	score, _ := tbl.Column("Score")
	assert.Equal(t, table.TypeNumeric, score.Type)
	assert.Equal(t, []float64{10, 25.5}, score.Floats())
}

func TestReadExcelNamedSheet(t *testing.T) {
	buf := xlsxFixture(t, "People", [][]interface{}{
		{"EmpID"},
		{"E-1"},
	})

	config := DefaultConfig()
	config.SheetName = "People"
	tbl, err := NewDataReader(config).Read(context.Background(), "staff.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.csv")
	require.NoError(t, os.WriteFile(path, []byte("EmpID,JobSatisfaction\n1,3\n"), 0o644))

	tbl, err := NewDataReader(DefaultConfig()).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	_, err = NewDataReader(DefaultConfig()).ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, core.ErrParse))
}

func TestDetectFileType(t *testing.T) {
	ft, err := DetectFileType("A.CSV")
	require.NoError(t, err)
	assert.Equal(t, FileTypeCSV, ft)

	ft, err = DetectFileType("book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FileTypeXLSX, ft)

	_, err = DetectFileType("book.xls")
	assert.Error(t, err)
}
