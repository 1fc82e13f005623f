package salesparse

import (
	"SalesIngest/internal/cellvalue"
	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

// layoutBParser reads the export invoice register: amounts in the quote
// currency (USD) and in local currency, with the exchange rate between them.
type layoutBParser struct{}

func (layoutBParser) Layout() sales.Layout { return sales.LayoutB }

func (p layoutBParser) Parse(sheet *workbook.Sheet, hint MonthHint) ([]sales.Transaction, []sales.Diagnostic) {
	return walkRows(sheet, specB, hint, p.mapRow)
}

func (layoutBParser) mapRow(row workbook.Row, hint MonthHint) (sales.Transaction, error) {
	date, err := rowDate(row.At(colBDate), hint)
	if err != nil {
		return sales.Transaction{}, err
	}
	tx, err := newRowTransaction(date, row.At(colBClient), row.At(colBProduct), row.At(colBQuantity))
	if err != nil {
		return sales.Transaction{}, err
	}
	tx.DocumentRef = cellvalue.OptionalText(row.At(colBInvoice))
	tx.ProductFamily = cellvalue.OptionalText(row.At(colBFamily))
	tx.UnitOfMeasure = cellvalue.OptionalText(row.At(colBUnit))
	tx.UnitPrice = cellvalue.NullNumber(row.At(colBUnitPriceUSD))
	tx.TotalAmount = cellvalue.NullNumber(row.At(colBTotalUSD))
	tx.ExchangeRate = cellvalue.NullNumber(row.At(colBExchangeRate))
	tx.LocalAmount = cellvalue.NullNumber(row.At(colBTotalLocal))
	return tx, nil
}
