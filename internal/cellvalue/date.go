package cellvalue

import (
	"math"
	"strconv"
	"strings"
	"time"

	"SalesIngest/internal/workbook"
)

// spreadsheetEpoch is day zero of the 1900 date system as exported by
// Excel and LibreOffice (the 1900 leap day bug is already absorbed).
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31.
const maxSerial = 2958465

// Date extracts a calendar date (UTC midnight).
func Date(c workbook.Cell) (time.Time, bool) {
	switch v := Scalar(c).(type) {
	case float64:
		return SerialToDate(v)
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), true
	case string:
		return ParseDate(v)
	default:
		return time.Time{}, false
	}
}

// SerialToDate converts a spreadsheet serial day number. The time fraction is
// dropped.
func SerialToDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 1 || serial > maxSerial {
		return time.Time{}, false
	}
	return spreadsheetEpoch.AddDate(0, 0, int(math.Floor(serial))), true
}

// genericLayouts are tried when the numeric split heuristic gives up.
var genericLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-Jan-2006",
	"02-Jan-06",
	"2-Jan-2006",
	"02/Jan/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2006.01.02",
	"02.01.2006",
	"20060102",
}

// ParseDate reads a textual date.
//
// The text is split on '/' or '-'. A part above 1000 is the year wherever it
// sits. Year first means Y-M-D; year last means D-M-Y unless the middle part
// cannot be a month. With a two digit year last, a first part above 12 means
// D-M-Y, otherwise M-D-Y. Two digit years below 50 are 20xx.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// drop a trailing time of day ("05/03/2025 00:00:00")
	head := s
	if i := strings.IndexAny(s, " T"); i > 0 {
		head = s[:i]
	}
	if t, ok := splitDate(head); ok {
		return t, true
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	// a serial number that arrived as text
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return SerialToDate(f)
	}
	return time.Time{}, false
}

func splitDate(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return time.Time{}, false
		}
		n[i] = v
	}

	var y, m, d int
	switch {
	case n[0] > 1000:
		y, m, d = n[0], n[1], n[2]
	case n[2] > 1000:
		y = n[2]
		if n[1] > 12 {
			m, d = n[0], n[1]
		} else {
			d, m = n[0], n[1]
		}
	case n[1] > 1000:
		// "03/2025/05" style exports are not produced by anyone we know of
		return time.Time{}, false
	case n[0] <= 31 && n[1] <= 31 && n[2] < 100:
		y = expandYear(n[2])
		if n[0] > 12 {
			d, m = n[0], n[1]
		} else {
			m, d = n[0], n[1]
		}
	default:
		return time.Time{}, false
	}
	return validDate(y, m, d)
}

func expandYear(yy int) int {
	if yy < 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

// validDate rejects overflowing days instead of letting time.Date normalise them.
func validDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}
