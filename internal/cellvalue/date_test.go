package cellvalue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"SalesIngest/internal/workbook"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateSameDayThreeEncodings(t *testing.T) {
	want := day(2025, time.March, 5)
	for _, c := range []workbook.Cell{
		workbook.Value{V: "05/03/2025"},
		workbook.Value{V: "2025-03-05"},
		workbook.Value{V: 45721.0},
	} {
		got, ok := Date(c)
		assert.True(t, ok, "%#v", c)
		assert.Equal(t, want, got, "%#v", c)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-05", day(2025, 3, 5)},
		{"2025/12/31", day(2025, 12, 31)},
		{"05-03-2025", day(2025, 3, 5)},
		{"03/25/2025", day(2025, 3, 25)}, // middle part cannot be a month
		{"25/03/25", day(2025, 3, 25)},   // first part above 12
		{"03/05/25", day(2025, 3, 5)},    // ambiguous two-digit year reads M-D-Y
		{"12/31/99", day(1999, 12, 31)},
		{"05/03/2025 00:00:00", day(2025, 3, 5)},
		{"2025-03-05T13:45:00", day(2025, 3, 5)},
		{"05-Mar-2025", day(2025, 3, 5)},
		{"5 Mar 2025", day(2025, 3, 5)},
		{"45721", day(2025, 3, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{"", "31/02/2025", "13/13/2025", "hello", "1/2", "03/2025/05"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestDateFromCellVariants(t *testing.T) {
	got, ok := Date(workbook.Formula{Expr: "DATE(2025,3,5)", Result: 45721.0})
	assert.True(t, ok)
	assert.Equal(t, day(2025, 3, 5), got)

	got, ok = Date(workbook.Value{V: time.Date(2025, 3, 5, 18, 30, 0, 0, time.FixedZone("CST", -6*3600))})
	assert.True(t, ok)
	assert.Equal(t, day(2025, 3, 5), got)

	_, ok = Date(workbook.Empty{})
	assert.False(t, ok)
	_, ok = Date(workbook.Value{V: 0.0})
	assert.False(t, ok)
}

func TestSerialToDateDropsTime(t *testing.T) {
	got, ok := SerialToDate(45721.75)
	assert.True(t, ok)
	assert.Equal(t, day(2025, 3, 5), got)
}
