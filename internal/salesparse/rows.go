package salesparse

import (
	"errors"
	"fmt"
	"time"

	"SalesIngest/internal/cellvalue"
	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

// MonthHint is the month a per-month sheet is named after. The zero value
// means the sheet carries no month (the cumulative sheet).
type MonthHint struct {
	Year  int
	Month time.Month
}

// FirstDay is the fallback date for rows whose own date cannot be read.
func (h MonthHint) FirstDay() (time.Time, bool) {
	if h.Year == 0 || h.Month < time.January || h.Month > time.December {
		return time.Time{}, false
	}
	return time.Date(h.Year, h.Month, 1, 0, 0, 0, 0, time.UTC), true
}

// SheetParser turns one worksheet into canonical transactions.
type SheetParser interface {
	Layout() sales.Layout
	Parse(sheet *workbook.Sheet, hint MonthHint) ([]sales.Transaction, []sales.Diagnostic)
}

// ParserFor picks the parser implementation of a classified layout.
func ParserFor(l sales.Layout) (SheetParser, error) {
	switch l {
	case sales.LayoutA:
		return layoutAParser{}, nil
	case sales.LayoutB:
		return layoutBParser{}, nil
	}
	return nil, fmt.Errorf("no parser for layout %s", l)
}

// rowMapper builds a transaction from a data row or says why it cannot.
type rowMapper func(row workbook.Row, hint MonthHint) (sales.Transaction, error)

// walkRows applies the policy shared by both layouts: header rows skipped,
// sentinel rows skipped silently, bad rows dropped with a diagnostic.
func walkRows(sheet *workbook.Sheet, spec layoutSpec, hint MonthHint, mapRow rowMapper) ([]sales.Transaction, []sales.Diagnostic) {
	var (
		txs   []sales.Transaction
		diags []sales.Diagnostic
	)
	for n := spec.headerRow + 1; n <= sheet.RowCount(); n++ {
		row := sheet.Row(n)
		if row.IsBlank() || isSentinel(row, spec) {
			continue
		}
		tx, err := mapRow(row, hint)
		if err != nil {
			diags = append(diags, sales.Diagnostic{Sheet: sheet.Name, Row: n, Message: err.Error()})
			continue
		}
		tx.SourceSheet = sheet.Name
		tx.SourceRow = n
		txs = append(txs, tx)
	}
	return txs, diags
}

func isSentinel(row workbook.Row, spec layoutSpec) bool {
	ident := foldedCell(row.At(spec.identCol))
	if ident == "" {
		for _, c := range spec.dataCols {
			if cellvalue.Text(row.At(c)) != "" {
				return false
			}
		}
		return true
	}
	return containsAny(ident, sentinelTokens) || containsAny(ident, spec.banners)
}

var errUnparsableDate = errors.New("unparsable date")

// rowDate reads the row's own date, falling back to the sheet month.
func rowDate(c workbook.Cell, hint MonthHint) (time.Time, error) {
	if d, ok := cellvalue.Date(c); ok {
		return d, nil
	}
	if d, ok := hint.FirstDay(); ok {
		return d, nil
	}
	raw := cellvalue.Text(c)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date cell is empty", errUnparsableDate)
	}
	return time.Time{}, fmt.Errorf("%w %q", errUnparsableDate, raw)
}

// newRowTransaction wraps sales.NewTransaction so that a quantity cell with
// no number in it is reported as missing rather than as "not positive".
func newRowTransaction(date time.Time, client, product, qty workbook.Cell) (sales.Transaction, error) {
	q, ok := cellvalue.Number(qty)
	tx, err := sales.NewTransaction(date, cellvalue.Text(client), cellvalue.Text(product), q)
	if err == nil {
		return tx, nil
	}
	var fe *sales.FieldError
	if !ok && errors.As(err, &fe) && fe.Field == "quantity" {
		if raw := cellvalue.Text(qty); raw != "" {
			return sales.Transaction{}, &sales.FieldError{Field: "quantity", Reason: fmt.Sprintf("unparsable quantity %q", raw)}
		}
		return sales.Transaction{}, &sales.FieldError{Field: "quantity", Reason: "missing quantity"}
	}
	return sales.Transaction{}, err
}
