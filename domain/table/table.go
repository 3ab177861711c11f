package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType is the inferred semantic type of a column
type ValueType string

const (
	TypeNumeric     ValueType = "numeric"
	TypeCategorical ValueType = "categorical"
	TypeText        ValueType = "text"
)

// Column is a named sequence of raw cell values; an empty cell is missing
type Column struct {
	Name   string    `json:"name"`
	Type   ValueType `json:"type"`
	Values []string  `json:"-"`
}

// IsNumeric reports whether the column was inferred as numeric
func (c *Column) IsNumeric() bool {
	return c.Type == TypeNumeric
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	return len(c.Values)
}

// Float parses the cell at row i. ok is false for missing or non-numeric cells.
func (c *Column) Float(i int) (float64, bool) {
	if i < 0 || i >= len(c.Values) {
		return 0, false
	}
	return ParseNumber(c.Values[i])
}

// Floats returns all parseable numeric cells in row order
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i := range c.Values {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Present returns the non-missing cells in row order
func (c *Column) Present() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Table is an ordered collection of uniquely named columns of equal length
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a table from headers and row-major records. Short records are
// padded with missing cells; header names are made unique with
// DedupeColumnNames.
func New(headers []string, records [][]string) (*Table, error) {
	for i, rec := range records {
		if len(rec) > len(headers) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(rec), len(headers))
		}
	}

	names := DedupeColumnNames(NameBlankHeaders(headers))
	columns := make([]Column, len(names))
	for j, name := range names {
		values := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				values[i] = strings.TrimSpace(rec[j])
			}
		}
		columns[j] = Column{Name: name, Type: InferType(values), Values: values}
	}

	return FromColumns(columns)
}

// FromColumns builds a table from already-typed columns. Column names must be
// unique and all columns must have the same length.
func FromColumns(columns []Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), t.rows)
		}
		t.index[col.Name] = i
	}
	return t, nil
}

// NumRows returns the number of records
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the number of columns
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in table order
func (t *Table) Columns() []Column {
	return t.columns
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.columns[i], true
}

// HasColumns reports whether every named column exists
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return false
		}
	}
	return true
}

// Head returns up to n rows in row-major order
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.columns))
		for j := range t.columns {
			row[j] = t.columns[j].Values[i]
		}
		rows[i] = row
	}
	return rows
}

// Limit returns a view of the first n rows and first m columns.
// Non-positive limits mean no limit.
func (t *Table) Limit(n, m int) *Table {
	if (n <= 0 || n >= t.rows) && (m <= 0 || m >= len(t.columns)) {
		return t
	}
	if n <= 0 || n > t.rows {
		n = t.rows
	}
	if m <= 0 || m > len(t.columns) {
		m = len(t.columns)
	}
	cols := make([]Column, m)
	for j := 0; j < m; j++ {
		src := t.columns[j]
		cols[j] = Column{Name: src.Name, Type: src.Type, Values: src.Values[:n]}
	}
	limited, _ := FromColumns(cols)
	return limited
}

// IsMissing reports whether a raw cell counts as a missing value
func IsMissing(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "na", "n/a", "null", "none":
		return true
	}
	return false
}

// ParseNumber parses a raw cell as a finite float64. Infinities and NaN
// spellings are not numbers.
func ParseNumber(v string) (float64, bool) {
	if IsMissing(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ValueCounts returns the distinct non-missing values in first-seen order
// with their occurrence counts
func (c *Column) ValueCounts() ([]string, []int) {
	index := make(map[string]int)
	var labels []string
	var counts []int
	for _, v := range c.Values {
		if IsMissing(v) {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(labels)
			index[v] = i
			labels = append(labels, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return labels, counts
}

// Mode returns the most frequent non-missing value and its count. Ties go to
// the value that appears first in the column. ok is false when the column has
// no values.
func (c *Column) Mode() (value string, count int, ok bool) {
	labels, counts := c.ValueCounts()
	for i, n := range counts {
		if n > count {
			value, count, ok = labels[i], n, true
		}
	}
	return value, count, ok
}
