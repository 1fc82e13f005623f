package salesparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name  string
		month time.Month
		year  int
		ok    bool
	}{
		{"Marzo 2025", time.March, 2025, true},
		{"ENE-25", time.January, 2025, true},
		{"feb", time.February, 0, true},
		{"Septiembre", time.September, 0, true},
		{"SET 24", time.September, 2024, true},
		{"Diciembre 2024 (2)", time.December, 2024, true},
		{"MARCH2025", time.March, 2025, true},
		{"  abril  ", time.April, 0, true},
		{"Hoja1", 0, 0, false},
		{"Notas 2025", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, y, ok := MonthOf(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.month, m)
			assert.Equal(t, tt.year, y)
		})
	}
}

func TestIsCumulative(t *testing.T) {
	for _, name := range []string{"ACUMULADO 2025", "Acum. Ene-Mar", "ytd 2025", "Acumulado"} {
		assert.True(t, isCumulative(name), name)
	}
	for _, name := range []string{"Marzo", "Resumen", "Datos"} {
		assert.False(t, isCumulative(name), name)
	}
}

func TestNameTokens(t *testing.T) {
	assert.Equal(t, []string{"ENE", "25", "2"}, nameTokens("ENE25 (2)"))
	assert.Equal(t, []string{"ACUMULADO", "2025"}, nameTokens("ACUMULADO_2025"))
	assert.Empty(t, nameTokens(" - "))
}

func TestYearToken(t *testing.T) {
	y, ok := yearToken("25")
	assert.True(t, ok)
	assert.Equal(t, 2025, y)

	y, ok = yearToken("2024")
	assert.True(t, ok)
	assert.Equal(t, 2024, y)

	for _, tok := range []string{"1", "123", "1850", "2500", "AB"} {
		_, ok := yearToken(tok)
		assert.False(t, ok, tok)
	}
}
