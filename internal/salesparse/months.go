package salesparse

import (
	"strconv"
	"time"
	"unicode"
)

var monthNames = map[string]time.Month{
	"ENERO": time.January, "ENE": time.January, "JANUARY": time.January, "JAN": time.January,
	"FEBRERO": time.February, "FEB": time.February, "FEBRUARY": time.February,
	"MARZO": time.March, "MAR": time.March, "MARCH": time.March,
	"ABRIL": time.April, "ABR": time.April, "APRIL": time.April, "APR": time.April,
	"MAYO": time.May, "MAY": time.May,
	"JUNIO": time.June, "JUN": time.June, "JUNE": time.June,
	"JULIO": time.July, "JUL": time.July, "JULY": time.July,
	"AGOSTO": time.August, "AGO": time.August, "AUGUST": time.August, "AUG": time.August,
	"SEPTIEMBRE": time.September, "SETIEMBRE": time.September, "SEP": time.September,
	"SEPT": time.September, "SET": time.September, "SEPTEMBER": time.September,
	"OCTUBRE": time.October, "OCT": time.October, "OCTOBER": time.October,
	"NOVIEMBRE": time.November, "NOV": time.November, "NOVEMBER": time.November,
	"DICIEMBRE": time.December, "DIC": time.December, "DECEMBER": time.December, "DEC": time.December,
}

var cumulativeMarkers = []string{"ACUMULADO", "ACUM", "YTD"}

// isCumulative reports whether a sheet name carries an accumulated-to-date marker.
func isCumulative(name string) bool {
	return containsAny(fold(name), cumulativeMarkers)
}

// MonthOf reads a month, and optionally a year, out of a sheet name such as
// "Marzo 2025", "ENE-25" or "feb". Year is 0 when the name has none.
func MonthOf(name string) (time.Month, int, bool) {
	var month time.Month
	year := 0
	for _, tok := range nameTokens(fold(name)) {
		if m, ok := monthNames[tok]; ok && month == 0 {
			month = m
			continue
		}
		if y, ok := yearToken(tok); ok && year == 0 {
			year = y
		}
	}
	if month == 0 {
		return 0, 0, false
	}
	return month, year, true
}

// yearOf is the first year-looking token of a name.
func yearOf(name string) int {
	for _, tok := range nameTokens(fold(name)) {
		if y, ok := yearToken(tok); ok {
			return y
		}
	}
	return 0
}

func yearToken(tok string) (int, bool) {
	if len(tok) != 2 && len(tok) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	if len(tok) == 2 {
		return 2000 + n, true
	}
	if n < 1990 || n > 2100 {
		return 0, false
	}
	return n, true
}

// nameTokens splits "ENE25 (2)" into ENE, 25, 2: runs of letters and runs of
// digits, everything else separates.
func nameTokens(s string) []string {
	var (
		toks []string
		cur  []rune
		kind int // 1 letters, 2 digits
	)
	flush := func() {
		if len(cur) > 0 {
			toks = append(toks, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		k := 0
		switch {
		case unicode.IsLetter(r):
			k = 1
		case unicode.IsDigit(r):
			k = 2
		}
		if k != kind {
			flush()
			kind = k
		}
		if k != 0 {
			cur = append(cur, r)
		}
	}
	flush()
	return toks
}
