// Package cellvalue turns raw workbook cells into plain scalars: numbers,
// dates and trimmed text. None of the functions here return errors; a value
// that cannot be read is reported as absent.
package cellvalue

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"SalesIngest/internal/workbook"
)

// Scalar unwraps formulas to their cached result and flattens rich text.
// It returns nil for empty cells.
func Scalar(c workbook.Cell) any {
	switch v := c.(type) {
	case workbook.Value:
		return v.V
	case workbook.Formula:
		return v.Result
	case workbook.RichText:
		return v.Plain()
	default:
		return nil
	}
}

// Text renders the scalar as trimmed text. Whole numbers lose the ".0".
func Text(c workbook.Cell) string {
	switch v := Scalar(c).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// OptionalText is Text returning nil for blanks.
func OptionalText(c workbook.Cell) *string {
	s := Text(c)
	if s == "" {
		return nil
	}
	return &s
}

var (
	// currency markers and the whitespace class removed before parsing
	numberNoise = strings.NewReplacer(
		"$", "", "€", "", "£", "", "¥", "",
		"MXN", "", "USD", "", "mxn", "", "usd", "",
		" ", "", "\t", "", "\u00a0", "", "\u202f", "", "\u2009", "",
	)
	dottedThousands = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	commaThousands  = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// Number extracts a decimal. Numeric cells are returned unchanged.
func Number(c workbook.Cell) (decimal.Decimal, bool) {
	switch v := Scalar(c).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case string:
		return ParseNumber(v)
	default:
		return decimal.Zero, false
	}
}

// NullNumber is Number for nullable columns.
func NullNumber(c workbook.Cell) decimal.NullDecimal {
	d, ok := Number(c)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

// ParseNumber applies the locale heuristic to text: "1.234.567" and
// "1,234.50" are read as thousands, anything else is parsed as written after
// the noise is gone. Any other comma ("12,5", "1.234,5") makes the value
// unreadable rather than guessing the decimal mark.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = numberNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	switch {
	case dottedThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	case commaThousands.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
