// Package workbook is the in-memory model of an uploaded spreadsheet: ordered
// named sheets, rows and cells. Cells keep their raw representation (literal,
// formula with cached result, rich text); only the cellvalue package looks
// inside them.
package workbook

import "strings"

// Cell is a closed set of variants: Empty, Value, Formula and RichText.
type Cell interface {
	isCell()
}

// Empty is a blank or missing cell.
type Empty struct{}

// Value is a literal: float64, string, bool or time.Time.
type Value struct {
	V any
}

// Formula keeps the expression and the last computed result stored in the file.
type Formula struct {
	Expr   string
	Result any
}

// RichText is styled text split into runs.
type RichText struct {
	Runs []string
}

func (Empty) isCell()    {}
func (Value) isCell()    {}
func (Formula) isCell()  {}
func (RichText) isCell() {}

// Plain flattens the runs.
func (r RichText) Plain() string {
	return strings.Join(r.Runs, "")
}

// Row is a 0-indexed slice of cells.
type Row []Cell

// At returns the cell in the 0-based column, Empty when out of range.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) || r[col] == nil {
		return Empty{}
	}
	return r[col]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		switch v := c.(type) {
		case nil, Empty:
		case Value:
			if s, ok := v.V.(string); !ok || strings.TrimSpace(s) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type Sheet struct {
	Name string
	Rows []Row
}

// Row returns the 1-based row n as it appears in the spreadsheet UI.
func (s *Sheet) Row(n int) Row {
	if n < 1 || n > len(s.Rows) {
		return nil
	}
	return s.Rows[n-1]
}

// Cell returns the cell at a 1-based row and 0-based column.
func (s *Sheet) Cell(row, col int) Cell {
	return s.Row(row).At(col)
}

// RowCount is the number of the last row present in the sheet.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

type Workbook struct {
	Sheets []*Sheet
}

func (wb *Workbook) SheetNames() []string {
	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// Sheet looks a sheet up by exact name.
func (wb *Workbook) Sheet(name string) *Sheet {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}
