package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRowAndSheetAccessors(t *testing.T) {
	sheet := &Sheet{Name: "Datos", Rows: []Row{
		{Value{V: "REPORTE DE VENTAS"}},
		nil,
		{Empty{}, Value{V: 3.0}},
	}}
	assert.Equal(t, 3, sheet.RowCount())
	assert.Equal(t, Value{V: "REPORTE DE VENTAS"}, sheet.Cell(1, 0))
	assert.Equal(t, Empty{}, sheet.Cell(1, 5))
	assert.Equal(t, Empty{}, sheet.Cell(2, 0))
	assert.Equal(t, Empty{}, sheet.Cell(0, 0))
	assert.Equal(t, Empty{}, sheet.Cell(9, 0))
	assert.Nil(t, sheet.Row(4))
	assert.True(t, sheet.Row(2).IsBlank())
	assert.False(t, sheet.Row(3).IsBlank())
	assert.Equal(t, Value{V: 3.0}, sheet.Row(3).At(1))

	wb := &Workbook{Sheets: []*Sheet{sheet, {Name: "Otra"}}}
	assert.Equal(t, []string{"Datos", "Otra"}, wb.SheetNames())
	assert.Same(t, sheet, wb.Sheet("Datos"))
	assert.Nil(t, wb.Sheet("missing"))
}

func TestRichTextPlain(t *testing.T) {
	assert.Equal(t, "Distribuidora Norte", RichText{Runs: []string{"Distribuidora", " ", "Norte"}}.Plain())
}

func newFixture(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	require.NoError(t, f.SetSheetName("Sheet1", "ACUMULADO 2025"))
	require.NoError(t, f.SetCellValue("ACUMULADO 2025", "A1", "REPORTE DE VENTAS"))
	require.NoError(t, f.SetCellValue("ACUMULADO 2025", "A2", 45721))
	require.NoError(t, f.SetCellValue("ACUMULADO 2025", "B2", "F-100"))
	require.NoError(t, f.SetCellRichText("ACUMULADO 2025", "C2", []excelize.RichTextRun{
		{Text: "ACME "},
		{Text: "Foods", Font: &excelize.Font{Bold: true}},
	}))
	require.NoError(t, f.SetCellValue("ACUMULADO 2025", "D2", true))
	require.NoError(t, f.SetCellValue("ACUMULADO 2025", "E2", 12.5))
	_, err := f.NewSheet("Marzo")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Marzo", "B3", "x"))
	return f
}

func assertFixture(t *testing.T, wb *Workbook) {
	t.Helper()
	require.Equal(t, []string{"ACUMULADO 2025", "Marzo"}, wb.SheetNames())
	acc := wb.Sheet("ACUMULADO 2025")
	assert.Equal(t, Value{V: "REPORTE DE VENTAS"}, acc.Cell(1, 0))
	assert.Equal(t, Value{V: 45721.0}, acc.Cell(2, 0))
	assert.Equal(t, Value{V: "F-100"}, acc.Cell(2, 1))
	assert.Equal(t, RichText{Runs: []string{"ACME ", "Foods"}}, acc.Cell(2, 2))
	assert.Equal(t, Value{V: true}, acc.Cell(2, 3))
	assert.Equal(t, Value{V: 12.5}, acc.Cell(2, 4))

	marzo := wb.Sheet("Marzo")
	assert.Equal(t, Empty{}, marzo.Cell(3, 0))
	assert.Equal(t, Value{V: "x"}, marzo.Cell(3, 1))
}

func TestFromExcelize(t *testing.T) {
	wb, err := FromExcelize(newFixture(t))
	require.NoError(t, err)
	assertFixture(t, wb)
}

func TestOpenXLSXBytes(t *testing.T) {
	buf, err := newFixture(t).WriteToBuffer()
	require.NoError(t, err)

	// the extension only changes the order readers are tried in
	for _, name := range []string{"ventas.xlsx", "ventas.xls", "ventas"} {
		wb, err := Open(buf.Bytes(), name)
		require.NoError(t, err, name)
		assertFixture(t, wb)
	}
}

func TestOpenRejectsNonWorkbooks(t *testing.T) {
	_, err := Open(nil, "empty.xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open([]byte("fecha,cliente\n2025-03-05,ACME\n"), "ventas.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
