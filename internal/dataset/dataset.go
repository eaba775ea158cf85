// Package dataset provides an in-memory tabular dataset loaded from CSV,
// with column typing, per-column statistics, and row-range slicing. It is
// the data source consumed by the chunker during ingestion.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ColumnType labels a column as numeric or categorical.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
)

// Table is a loaded tabular dataset. Rows hold raw cell strings; column
// types are detected once at construction and never change.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	types []ColumnType
}

// New builds a Table from pre-parsed columns and rows, detecting column types.
func New(name string, columns []string, rows [][]string) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows}
	t.types = detectTypes(columns, rows)
	return t
}

// LoadCSV reads a CSV stream with a header row into a Table.
func LoadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %q has no header row", name)
	}

	header := records[0]
	rows := records[1:]

	// Pad short rows so every row has one cell per column.
	for i, row := range rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}

	return New(name, header, rows), nil
}

// LoadCSVFile reads a CSV file from disk into a Table.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	name := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		name = path[idx+1:]
	}
	return LoadCSV(f, name)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Type returns the detected type of the named column.
func (t *Table) Type(column string) ColumnType {
	idx := t.columnIndex(column)
	if idx < 0 {
		return TypeCategorical
	}
	return t.types[idx]
}

// TypeLabels maps every column name to its type label.
func (t *Table) TypeLabels() map[string]string {
	labels := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[col] = string(t.types[i])
	}
	return labels
}

// NumericColumns returns the numeric column names in column order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for i, col := range t.Columns {
		if t.types[i] == TypeNumeric {
			cols = append(cols, col)
		}
	}
	return cols
}

// CategoricalColumns returns the categorical column names in column order.
func (t *Table) CategoricalColumns() []string {
	var cols []string
	for i, col := range t.Columns {
		if t.types[i] == TypeCategorical {
			cols = append(cols, col)
		}
	}
	return cols
}

// Slice returns a new Table holding rows [start, end). Bounds are clamped.
// Column types are inherited from the parent, not re-detected, so a slice
// of a numeric column stays numeric even if all its values are missing.
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	if start > end {
		start = end
	}
	return &Table{
		Name:    t.Name,
		Columns: t.Columns,
		Rows:    t.Rows[start:end],
		types:   t.types,
	}
}

// Values returns every raw cell of the named column, including missing ones.
func (t *Table) Values(column string) []string {
	idx := t.columnIndex(column)
	if idx < 0 {
		return nil
	}
	vals := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			vals = append(vals, row[idx])
		} else {
			vals = append(vals, "")
		}
	}
	return vals
}

// Float64s returns the parsed non-missing values of a numeric column.
func (t *Table) Float64s(column string) []float64 {
	var out []float64
	for _, raw := range t.Values(column) {
		if isMissing(raw) {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// MissingCount returns the number of missing cells in the named column.
func (t *Table) MissingCount(column string) int {
	count := 0
	for _, raw := range t.Values(column) {
		if isMissing(raw) {
			count++
		}
	}
	return count
}

// TotalMissing returns the number of missing cells across all columns.
func (t *Table) TotalMissing() int {
	total := 0
	for _, col := range t.Columns {
		total += t.MissingCount(col)
	}
	return total
}

func (t *Table) columnIndex(column string) int {
	for i, col := range t.Columns {
		if col == column {
			return i
		}
	}
	return -1
}

// detectTypes classifies each column: numeric when every non-missing cell
// parses as a float and at least one such cell exists, categorical otherwise.
func detectTypes(columns []string, rows [][]string) []ColumnType {
	types := make([]ColumnType, len(columns))
	for i := range columns {
		types[i] = TypeCategorical
		seen := 0
		numeric := true
		for _, row := range rows {
			if i >= len(row) || isMissing(row[i]) {
				continue
			}
			seen++
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric && seen > 0 {
			types[i] = TypeNumeric
		}
	}
	return types
}

// parseCell parses one cell as a float, reporting whether it held a value.
func parseCell(raw string) (float64, bool) {
	if isMissing(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isMissing reports whether a raw cell represents a missing value.
func isMissing(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "null", "none", "nan", "na", "n/a":
		return true
	}
	return false
}
