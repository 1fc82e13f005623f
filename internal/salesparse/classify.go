package salesparse

import (
	"path/filepath"
	"strings"

	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

const (
	titleRow       = 1
	titleCol       = 0
	structuralRows = 10
)

// Classify returns the layout of the first sheet carrying a recognised
// anchor. Header anchors are checked before titles; later sheets are not
// consulted once one matches.
func Classify(wb *workbook.Workbook) sales.Layout {
	for _, sheet := range wb.Sheets {
		if l := classifySheet(sheet); l != sales.LayoutUnknown {
			return l
		}
	}
	return sales.LayoutUnknown
}

func classifySheet(sheet *workbook.Sheet) sales.Layout {
	specs := []layoutSpec{specA, specB}
	for _, spec := range specs {
		if foldedCell(sheet.Cell(spec.headerRow, spec.headerCol)) == spec.headerToken {
			return spec.layout
		}
	}
	title := foldedCell(sheet.Cell(titleRow, titleCol))
	if title == "" {
		return sales.LayoutUnknown
	}
	for _, spec := range specs {
		if strings.Contains(title, spec.titleToken) {
			return spec.layout
		}
	}
	return sales.LayoutUnknown
}

// anchorSheet is the first sheet recognised as the given layout.
func anchorSheet(wb *workbook.Workbook, l sales.Layout) *workbook.Sheet {
	for _, sheet := range wb.Sheets {
		if classifySheet(sheet) == l {
			return sheet
		}
	}
	return nil
}

// ClassifyFileName guesses from names such as "ventas_exportacion_2025.xlsx".
func ClassifyFileName(name string) sales.Layout {
	base := fold(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	switch {
	case containsAny(base, []string{"EXPORT", "FACTURAS", "USD"}):
		return sales.LayoutB
	case containsAny(base, []string{"NACIONAL", "VENTAS", "DOMESTIC"}):
		return sales.LayoutA
	}
	return sales.LayoutUnknown
}

// ClassifyStructure looks for layout specific header vocabulary in the top
// rows of every sheet.
func ClassifyStructure(wb *workbook.Workbook) sales.Layout {
	for _, sheet := range wb.Sheets {
		for r := 1; r <= structuralRows && r <= sheet.RowCount(); r++ {
			var cells []string
			for _, c := range sheet.Row(r) {
				if s := foldedCell(c); s != "" {
					cells = append(cells, s)
				}
			}
			line := strings.Join(cells, " | ")
			if !strings.Contains(line, "CLIENTE") {
				continue
			}
			for _, spec := range []layoutSpec{specB, specA} {
				if containsAny(line, spec.structural) {
					return spec.layout
				}
			}
		}
	}
	return sales.LayoutUnknown
}
