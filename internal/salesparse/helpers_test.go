package salesparse

import "SalesIngest/internal/workbook"

func cell(x any) workbook.Cell {
	switch v := x.(type) {
	case nil:
		return workbook.Empty{}
	case workbook.Cell:
		return v
	case int:
		return workbook.Value{V: float64(v)}
	default:
		return workbook.Value{V: v}
	}
}

func row(xs ...any) workbook.Row {
	r := make(workbook.Row, len(xs))
	for i, x := range xs {
		r[i] = cell(x)
	}
	return r
}

var (
	headerA = row("FECHA", "FOLIO", "CLIENTE", "PRODUCTO", "CANTIDAD", "PRECIO UNITARIO", "TOTAL", "COSTO UNITARIO", "MARGEN")
	headerB = row("FACTURA", "FECHA", "CLIENTE", "FAMILIA", "PRODUCTO", "UNIDAD", "CANTIDAD", "PRECIO USD", "TOTAL USD", "TIPO DE CAMBIO", "TOTAL MXN")
)

// sheetA lays out a domestic report: title in A1, header in row 4.
func sheetA(name string, data ...workbook.Row) *workbook.Sheet {
	rows := []workbook.Row{
		row("REPORTE DE VENTAS"),
		row("Periodo: 2025"),
		nil,
		headerA,
	}
	return &workbook.Sheet{Name: name, Rows: append(rows, data...)}
}

// sheetB lays out an export register: title in A1, header in row 6.
func sheetB(name string, data ...workbook.Row) *workbook.Sheet {
	rows := []workbook.Row{
		row("RELACION DE FACTURAS"),
		row("Exportaciones"),
		nil,
		nil,
		nil,
		headerB,
	}
	return &workbook.Sheet{Name: name, Rows: append(rows, data...)}
}

func book(sheets ...*workbook.Sheet) *workbook.Workbook {
	return &workbook.Workbook{Sheets: sheets}
}
