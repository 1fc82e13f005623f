package salesparse

import (
	"fmt"
	"time"

	"SalesIngest/internal/sales"
	"SalesIngest/internal/workbook"
)

// Selection is what Select decided to parse and what came out of it.
type Selection struct {
	Sheets       []string
	Cumulative   bool
	TargetYear   int
	Transactions []sales.Transaction
	Diagnostics  []sales.Diagnostic
}

type monthSheet struct {
	sheet *workbook.Sheet
	month time.Month
	year  int
}

// Select prefers the accumulated-to-date sheet as the single source. Month
// sheets drift out of sync with it during the reporting month, so they are
// only read when no cumulative sheet exists or it produced nothing.
//
// targetYear 0 means "infer it". now supplies the year for month sheets whose
// name carries none when no target year can be inferred either.
func Select(wb *workbook.Workbook, layout sales.Layout, targetYear int, now time.Time) (Selection, error) {
	parser, err := ParserFor(layout)
	if err != nil {
		return Selection{}, err
	}
	if wb == nil || len(wb.Sheets) == 0 {
		return Selection{}, fmt.Errorf("workbook has no sheets")
	}

	var (
		cumulative *workbook.Sheet
		months     []monthSheet
	)
	for _, sheet := range wb.Sheets {
		if isCumulative(sheet.Name) {
			if cumulative == nil {
				cumulative = sheet
			}
			continue
		}
		if m, y, ok := MonthOf(sheet.Name); ok {
			months = append(months, monthSheet{sheet: sheet, month: m, year: y})
		}
	}

	if targetYear == 0 && cumulative != nil {
		targetYear = yearOf(cumulative.Name)
	}
	if targetYear == 0 {
		targetYear = dominantYear(months)
	}
	sel := Selection{TargetYear: targetYear}

	if cumulative != nil {
		// no month hint: a cumulative row without a readable date is dropped
		txs, diags := parser.Parse(cumulative, MonthHint{})
		sel.Diagnostics = append(sel.Diagnostics, diags...)
		if len(txs) > 0 {
			sel.Sheets = []string{cumulative.Name}
			sel.Cumulative = true
			sel.Transactions = txs
			return sel, nil
		}
	}

	if len(months) == 0 {
		if cumulative != nil {
			return sel, nil
		}
		// neither cumulative nor month sheets: a single-sheet report
		sheet := anchorSheet(wb, layout)
		if sheet == nil {
			return sel, nil
		}
		txs, diags := parser.Parse(sheet, MonthHint{})
		sel.Sheets = []string{sheet.Name}
		sel.Transactions = txs
		sel.Diagnostics = append(sel.Diagnostics, diags...)
		return sel, nil
	}

	for _, ms := range months {
		if targetYear != 0 && ms.year != 0 && ms.year != targetYear {
			continue
		}
		hint := MonthHint{Year: ms.year, Month: ms.month}
		if hint.Year == 0 {
			hint.Year = targetYear
		}
		if hint.Year == 0 {
			hint.Year = now.Year()
		}
		txs, diags := parser.Parse(ms.sheet, hint)
		sel.Sheets = append(sel.Sheets, ms.sheet.Name)
		sel.Transactions = append(sel.Transactions, txs...)
		sel.Diagnostics = append(sel.Diagnostics, diags...)
	}
	return sel, nil
}

// dominantYear is the most frequent year among month sheet names; ties go to
// the later year.
func dominantYear(months []monthSheet) int {
	counts := map[int]int{}
	best, bestN := 0, 0
	for _, ms := range months {
		if ms.year == 0 {
			continue
		}
		counts[ms.year]++
		n := counts[ms.year]
		if n > bestN || (n == bestN && ms.year > best) {
			best, bestN = ms.year, n
		}
	}
	return best
}
