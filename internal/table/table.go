// Package table reads and writes the operator's tabular files. CSV goes
// through encoding/csv; .xlsx/.xls workbooks go through excelize.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyTable reports an input file with no header row or no columns. It is
// fatal to a run before any extraction begins.
var ErrEmptyTable = errors.New("input table is empty or has no columns")

// Table is a header row plus data rows. Rows may be ragged; Cell pads reads.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Result is the per-row outcome appended to the results table.
type Result struct {
	Found    bool   `json:"found"`
	Filename string `json:"filename,omitempty"`
}

// Load reads a .csv, .xlsx or .xls file into a Table.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return loadWorkbook(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records)
}

func loadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyTable
	}
	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

// Column resolves a header name to an index. An empty name selects the first
// column.
func (t *Table) Column(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in input table", name)
}

// Cell returns the value at (row, col), or empty when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// WithResults returns a copy of the table with logo_found and logo_filename
// columns appended. Rows without an entry in results read as not found.
func (t *Table) WithResults(results map[int]Result) *Table {
	headers := make([]string, 0, len(t.Headers)+2)
	headers = append(headers, t.Headers...)
	headers = append(headers, "logo_found", "logo_filename")

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, len(t.Headers), len(headers))
		copy(out, row)
		r := results[i]
		rows[i] = append(out, strconv.FormatBool(r.Found), r.Filename)
	}
	return &Table{Headers: headers, Rows: rows}
}

// Write stores the table as csv or, for .xlsx/.xls paths, as a workbook.
func Write(path string, t *Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return writeWorkbook(path, t)
	default:
		return writeCSV(path, t)
	}
}

func writeCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeWorkbook(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, t.Headers); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
