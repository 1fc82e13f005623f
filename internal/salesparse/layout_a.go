package salesparse

import (
	"SalesIngest/internal/cellvalue"
	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

// layoutAParser reads the domestic report. It is the only layout with cost
// and margin columns; it has no exchange rate.
type layoutAParser struct{}

func (layoutAParser) Layout() sales.Layout { return sales.LayoutA }

func (p layoutAParser) Parse(sheet *workbook.Sheet, hint MonthHint) ([]sales.Transaction, []sales.Diagnostic) {
	return walkRows(sheet, specA, hint, p.mapRow)
}

func (layoutAParser) mapRow(row workbook.Row, hint MonthHint) (sales.Transaction, error) {
	date, err := rowDate(row.At(colADate), hint)
	if err != nil {
		return sales.Transaction{}, err
	}
	tx, err := newRowTransaction(date, row.At(colAClient), row.At(colAProduct), row.At(colAQuantity))
	if err != nil {
		return sales.Transaction{}, err
	}
	tx.DocumentRef = cellvalue.OptionalText(row.At(colAFolio))
	tx.UnitPrice = cellvalue.NullNumber(row.At(colAUnitPrice))
	tx.TotalAmount = cellvalue.NullNumber(row.At(colATotal))
	tx.UnitCost = cellvalue.NullNumber(row.At(colAUnitCost))
	tx.GrossMargin = cellvalue.NullNumber(row.At(colAGrossMargin))
	return tx, nil
}
