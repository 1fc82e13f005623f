package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("file is not a readable xlsx or xls workbook")

const xlsCharset = "utf-8"

// Open reads an uploaded file. xlsx is tried first, legacy xls second, the
// file extension only decides which one goes first.
func Open(data []byte, fileName string) (*Workbook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
	}
	if strings.EqualFold(filepath.Ext(fileName), ".xls") {
		if wb, err := openXLS(data); err == nil {
			return wb, nil
		}
		return openXLSX(data)
	}
	wb, err := openXLSX(data)
	if err == nil {
		return wb, nil
	}
	if xwb, xerr := openXLS(data); xerr == nil {
		return xwb, nil
	}
	return nil, err
}

func openXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()
	return FromExcelize(f)
}

// FromExcelize materialises every sheet of an open excelize file.
func FromExcelize(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to get rows of sheet %q: %w", name, err)
		}
		sheet := &Sheet{Name: name, Rows: make([]Row, len(raw))}
		for i, rawRow := range raw {
			row := make(Row, len(rawRow))
			for j, v := range rawRow {
				ref, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return nil, err
				}
				row[j] = excelizeCell(f, name, ref, v)
			}
			sheet.Rows[i] = row
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// excelizeCell decides which variant the raw cell is. GetRows already joins
// rich text runs and returns the cached value of formula cells.
func excelizeCell(f *excelize.File, sheet, ref, raw string) Cell {
	formula, _ := f.GetCellFormula(sheet, ref)
	typ, _ := f.GetCellType(sheet, ref)
	if formula != "" {
		return Formula{Expr: formula, Result: typedRaw(typ, raw)}
	}
	if raw == "" {
		return Empty{}
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		if runs, err := f.GetCellRichText(sheet, ref); err == nil && len(runs) > 1 {
			rt := RichText{Runs: make([]string, len(runs))}
			for i, r := range runs {
				rt.Runs[i] = r.Text
			}
			return rt
		}
	}
	return Value{V: typedRaw(typ, raw)}
}

func typedRaw(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeFormula:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE")
	}
	if raw == "" {
		return nil
	}
	return raw
}

func openXLS(data []byte) (wb *Workbook, err error) {
	// the xls reader panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, r)
		}
	}()
	book, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return FromXLS(book), nil
}

// FromXLS copies a legacy workbook. The format only gives us rendered text,
// so every non-blank cell becomes a string Value.
func FromXLS(book *xls.WorkBook) *Workbook {
	wb := &Workbook{}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := &Sheet{Name: ws.Name}
		if ws.MaxRow > 0 || xlsRow(ws, 0) != nil {
			sheet.Rows = make([]Row, int(ws.MaxRow)+1)
			for r := 0; r <= int(ws.MaxRow); r++ {
				xr := xlsRow(ws, r)
				if xr == nil {
					continue
				}
				row := make(Row, xr.LastCol()+1)
				for c := xr.FirstCol(); c <= xr.LastCol(); c++ {
					if s := xr.Col(c); strings.TrimSpace(s) != "" {
						row[c] = Value{V: s}
					} else {
						row[c] = Empty{}
					}
				}
				sheet.Rows[r] = row
			}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb
}

// xlsRow guards WorkSheet.Row, which dereferences missing rows.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
