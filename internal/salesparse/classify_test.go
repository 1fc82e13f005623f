package salesparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

func noiseSheet(name string) *workbook.Sheet {
	return &workbook.Sheet{Name: name, Rows: []workbook.Row{
		row("Notas"),
		row("cifras preliminares", 123),
	}}
}

func TestClassifyByHeaderAnchor(t *testing.T) {
	a := &workbook.Sheet{Name: "Datos", Rows: []workbook.Row{nil, nil, nil, row("Fecha", "Folio", "Cliente")}}
	b := &workbook.Sheet{Name: "Datos", Rows: []workbook.Row{nil, nil, nil, nil, nil, row(" factura ", "fecha")}}

	assert.Equal(t, sales.LayoutA, Classify(book(a)))
	assert.Equal(t, sales.LayoutB, Classify(book(b)))
}

func TestClassifyByTitle(t *testing.T) {
	a := &workbook.Sheet{Name: "x", Rows: []workbook.Row{row("Reporte de Ventas Nacionales 2025")}}
	b := &workbook.Sheet{Name: "x", Rows: []workbook.Row{row("Relación de Facturas - Exportación")}}

	assert.Equal(t, sales.LayoutA, Classify(book(a)))
	assert.Equal(t, sales.LayoutB, Classify(book(b)))
}

func TestClassifyIgnoresNoiseSheets(t *testing.T) {
	a := sheetA("Ventas")
	for _, wb := range []*workbook.Workbook{
		book(a),
		book(noiseSheet("Notas"), a),
		book(a, noiseSheet("Notas")),
		book(noiseSheet("Portada"), noiseSheet("Notas"), a, noiseSheet("Graficas")),
	} {
		assert.Equal(t, sales.LayoutA, Classify(wb), wb.SheetNames())
	}
}

func TestClassifyFirstRecognisedSheetWins(t *testing.T) {
	assert.Equal(t, sales.LayoutA, Classify(book(sheetA("a"), sheetB("b"))))
	assert.Equal(t, sales.LayoutB, Classify(book(sheetB("b"), sheetA("a"))))
}

func TestClassifyUnknown(t *testing.T) {
	assert.Equal(t, sales.LayoutUnknown, Classify(book(noiseSheet("Notas"), noiseSheet("Hoja2"))))
	assert.Equal(t, sales.LayoutUnknown, Classify(book()))
	assert.Equal(t, sales.LayoutUnknown, Classify(book(&workbook.Sheet{Name: "vacia"})))
}

func TestClassifyFileName(t *testing.T) {
	tests := map[string]sales.Layout{
		"ventas_nacionales_2025.xlsx":   sales.LayoutA,
		"/tmp/uploads/Ventas Marzo.xls": sales.LayoutA,
		"exportacion-2025.xlsx":         sales.LayoutB,
		"Relación de facturas USD.xlsx": sales.LayoutB,
		"ventas_exportacion_2025.xlsx":  sales.LayoutB,
		"reporte.xlsx":                  sales.LayoutUnknown,
		"":                              sales.LayoutUnknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, ClassifyFileName(name), name)
	}
}

func TestClassifyStructure(t *testing.T) {
	b := &workbook.Sheet{Name: "s", Rows: []workbook.Row{
		row("Informe"),
		row("Factura", "Fecha", "Cliente", "Familia", "Producto", "Tipo de cambio"),
	}}
	a := &workbook.Sheet{Name: "s", Rows: []workbook.Row{
		row("Fecha", "Doc", "Cliente", "Producto", "Cant", "Precio", "Importe", "Costo unitario", "Margen"),
	}}
	noClient := &workbook.Sheet{Name: "s", Rows: []workbook.Row{row("Tipo de cambio", "Margen")}}

	assert.Equal(t, sales.LayoutB, ClassifyStructure(book(b)))
	assert.Equal(t, sales.LayoutA, ClassifyStructure(book(a)))
	assert.Equal(t, sales.LayoutUnknown, ClassifyStructure(book(noClient)))
}
