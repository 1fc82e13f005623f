package salesparse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid, "expected %s, got null", want)
	assert.True(t, dec(want).Equal(got.Decimal), "expected %s, got %s", want, got.Decimal)
}

func TestParserFor(t *testing.T) {
	p, err := ParserFor(sales.LayoutA)
	require.NoError(t, err)
	assert.Equal(t, sales.LayoutA, p.Layout())

	p, err = ParserFor(sales.LayoutB)
	require.NoError(t, err)
	assert.Equal(t, sales.LayoutB, p.Layout())

	_, err = ParserFor(sales.LayoutUnknown)
	assert.Error(t, err)
}

func TestLayoutAParse(t *testing.T) {
	sheet := sheetA("Marzo 2025",
		row("2025-03-05", "F-001", "Abarrotes del Norte", "Aceite 1L", 10, 25.5, 255, 18, 75),
		row("2025-03-06", "F-002", nil, "Aceite 1L", 5, 25.5, 127.5, 18, 37.5),
		row(45722, "F-003", " Comercial Sur ", "Arroz 1kg", "1,200", "$ 14.00", nil, nil, nil),
		nil,
		row("2025-03-08", nil, "Abarrotes del Norte", "Frijol 1kg", 3),
	)

	txs, diags := layoutAParser{}.Parse(sheet, MonthHint{})

	require.Len(t, txs, 3)
	require.Len(t, diags, 1)
	assert.Equal(t, sales.Diagnostic{Sheet: "Marzo 2025", Row: 6, Message: "missing client name"}, diags[0])

	first := txs[0]
	assert.Equal(t, day(2025, 3, 5), first.Date)
	require.NotNil(t, first.DocumentRef)
	assert.Equal(t, "F-001", *first.DocumentRef)
	assert.Equal(t, "Abarrotes del Norte", first.ClientName)
	assert.Equal(t, "Aceite 1L", first.ProductName)
	assert.True(t, dec("10").Equal(first.Quantity))
	assertDec(t, "25.5", first.UnitPrice)
	assertDec(t, "255", first.TotalAmount)
	assertDec(t, "18", first.UnitCost)
	assertDec(t, "75", first.GrossMargin)
	assert.False(t, first.ExchangeRate.Valid)
	assert.False(t, first.LocalAmount.Valid)
	assert.Nil(t, first.ProductFamily)
	assert.Equal(t, 2025, first.SourceYear)
	assert.Equal(t, 3, first.SourceMonth)
	assert.Equal(t, "Marzo 2025", first.SourceSheet)
	assert.Equal(t, 5, first.SourceRow)

	third := txs[1]
	assert.Equal(t, day(2025, 3, 6), third.Date)
	assert.Equal(t, "Comercial Sur", third.ClientName)
	assert.True(t, dec("1200").Equal(third.Quantity))
	assertDec(t, "14", third.UnitPrice)
	assert.False(t, third.TotalAmount.Valid)
	assert.Equal(t, 7, third.SourceRow)

	last := txs[2]
	assert.Nil(t, last.DocumentRef)
	assert.False(t, last.UnitPrice.Valid)
	assert.Equal(t, 9, last.SourceRow)
}

func TestLayoutARowWithoutDate(t *testing.T) {
	a := sheetA("Marzo 2025", row(nil, "F-9", "Cliente", "Producto", 4))

	txs, diags := layoutAParser{}.Parse(a, MonthHint{Year: 2025, Month: time.March})
	require.Len(t, txs, 1)
	assert.Empty(t, diags)
	assert.Equal(t, day(2025, time.March, 1), txs[0].Date)
	assert.Equal(t, 5, txs[0].SourceRow)

	txs, diags = layoutAParser{}.Parse(a, MonthHint{})
	assert.Empty(t, txs)
	require.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Row)
	assert.Contains(t, diags[0].Message, "date cell is empty")
}

func TestSentinelRowsAreSkippedSilently(t *testing.T) {
	a := sheetA("Resumen",
		row("TOTAL MARZO", nil, nil, nil, 120, nil, 3000),
		row("Resumen del mes"),
		row(nil, "F-9"),
		row("** Cancelada **", "F-10", "Cliente", "Producto", 1),
		row("Ventas del mes de marzo"),
	)
	txs, diags := layoutAParser{}.Parse(a, MonthHint{})
	assert.Empty(t, txs)
	assert.Empty(t, diags)

	b := sheetB("Resumen",
		row("FAMILIA: SALSAS"),
		row("Total familia", nil, nil, nil, nil, nil, 300),
		row("Exportación marítima"),
		row("Embarque 12"),
		row(nil, "2025-03-01", "Cliente", nil, "Producto", nil, 1),
	)
	txs, diags = layoutBParser{}.Parse(b, MonthHint{})
	assert.Empty(t, txs)
	assert.Empty(t, diags)
}

func TestQuantityDiagnostics(t *testing.T) {
	sheet := sheetA("Q",
		row("2025-03-05", "F-1", "C", "P", 0),
		row("2025-03-05", "F-2", "C", "P", -3),
		row("2025-03-05", "F-3", "C", "P", "abc"),
		row("2025-03-05", "F-4", "C", "P"),
		row("2025-03-05", "F-5", "C", nil, 2),
	)
	txs, diags := layoutAParser{}.Parse(sheet, MonthHint{})
	assert.Empty(t, txs)

	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{
		"quantity must be positive, got 0",
		"quantity must be positive, got -3",
		`unparsable quantity "abc"`,
		"missing quantity",
		"missing product name",
	}, msgs)
}

func TestUnreadableDateFallsBackToMonthHint(t *testing.T) {
	sheet := sheetA("Marzo",
		row("s/f", "F-1", "Cliente", "Producto", 2),
	)

	txs, diags := layoutAParser{}.Parse(sheet, MonthHint{Year: 2025, Month: time.March})
	require.Len(t, txs, 1)
	assert.Empty(t, diags)
	assert.Equal(t, day(2025, 3, 1), txs[0].Date)

	txs, diags = layoutAParser{}.Parse(sheet, MonthHint{})
	assert.Empty(t, txs)
	require.Len(t, diags, 1)
	assert.Equal(t, `unparsable date "s/f"`, diags[0].Message)
	assert.Equal(t, 5, diags[0].Row)
}

func TestLayoutBParse(t *testing.T) {
	sheet := sheetB("Facturas",
		row("FAMILIA: SALSAS"),
		row("EXP-1001", "2025-03-10", "Global Foods LLC", "Salsas", "Salsa 500g", "CAJA", 100, 12.5, 1250, 17.25, 21562.5),
		row("EXP-1002", "10/03/2025", "Global Foods LLC", "Salsas", "Salsa 1kg", "CAJA", "abc", 20, 0, 17.25, 0),
		row("TOTAL SALSAS", nil, nil, nil, nil, nil, 100, nil, 1250),
		row("EXP-1003", workbook.Formula{Expr: "=B8+1", Result: 45727.0}, "Andes Import", nil, "Mole 250g", nil, 40),
	)

	txs, diags := layoutBParser{}.Parse(sheet, MonthHint{})
	require.Len(t, txs, 2)
	require.Len(t, diags, 1)
	assert.Equal(t, 9, diags[0].Row)
	assert.Equal(t, `unparsable quantity "abc"`, diags[0].Message)

	tx := txs[0]
	assert.Equal(t, day(2025, 3, 10), tx.Date)
	require.NotNil(t, tx.DocumentRef)
	assert.Equal(t, "EXP-1001", *tx.DocumentRef)
	require.NotNil(t, tx.ProductFamily)
	assert.Equal(t, "Salsas", *tx.ProductFamily)
	require.NotNil(t, tx.UnitOfMeasure)
	assert.Equal(t, "CAJA", *tx.UnitOfMeasure)
	assertDec(t, "12.5", tx.UnitPrice)
	assertDec(t, "1250", tx.TotalAmount)
	assertDec(t, "17.25", tx.ExchangeRate)
	assertDec(t, "21562.5", tx.LocalAmount)
	assert.False(t, tx.UnitCost.Valid)
	assert.False(t, tx.GrossMargin.Valid)
	assert.Equal(t, 8, tx.SourceRow)

	formula := txs[1]
	assert.Equal(t, day(2025, 3, 11), formula.Date)
	assert.Nil(t, formula.ProductFamily)
	assert.Equal(t, 11, formula.SourceRow)
}

func TestMonthHintFirstDay(t *testing.T) {
	d, ok := MonthHint{Year: 2024, Month: time.February}.FirstDay()
	assert.True(t, ok)
	assert.Equal(t, day(2024, 2, 1), d)

	_, ok = MonthHint{}.FirstDay()
	assert.False(t, ok)
	_, ok = MonthHint{Year: 2024}.FirstDay()
	assert.False(t, ok)
}
