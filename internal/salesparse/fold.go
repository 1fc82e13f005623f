package salesparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"SalesIngest/internal/cellvalue"
	"SalesIngest/internal/workbook"
)

// fold upper-cases, strips accents and collapses whitespace so "Relación  de
// facturas" compares equal to "RELACION DE FACTURAS".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}

func foldedCell(c workbook.Cell) string {
	return fold(cellvalue.Text(c))
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
