package sales

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	for in, want := range map[string]Layout{
		"LAYOUT_A": LayoutA, "a": LayoutA, " layout_b ": LayoutB, "B": LayoutB, "c": LayoutUnknown, "": LayoutUnknown,
	} {
		assert.Equal(t, want, ParseLayout(in), in)
	}
	assert.Equal(t, "LAYOUT_A", LayoutA.String())
	assert.Equal(t, "UNKNOWN", LayoutUnknown.String())
}

func TestNewTransaction(t *testing.T) {
	date := time.Date(2025, 3, 5, 17, 30, 0, 0, time.FixedZone("CST", -6*3600))
	tx, err := NewTransaction(date, "  Cliente ", " Producto", decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "Cliente", tx.ClientName)
	assert.Equal(t, "Producto", tx.ProductName)
	assert.Equal(t, 2025, tx.SourceYear)
	assert.Equal(t, 3, tx.SourceMonth)
}

func TestNewTransactionRequiredFields(t *testing.T) {
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	one := decimal.NewFromInt(1)
	tests := []struct {
		field string
		build func() (Transaction, error)
	}{
		{"date", func() (Transaction, error) { return NewTransaction(time.Time{}, "c", "p", one) }},
		{"client", func() (Transaction, error) { return NewTransaction(date, " ", "p", one) }},
		{"product", func() (Transaction, error) { return NewTransaction(date, "c", "", one) }},
		{"quantity", func() (Transaction, error) { return NewTransaction(date, "c", "p", decimal.Zero) }},
		{"quantity", func() (Transaction, error) { return NewTransaction(date, "c", "p", one.Neg()) }},
	}
	for _, tt := range tests {
		_, err := tt.build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTransaction)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, tt.field, fe.Field)
	}
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, `sheet "Marzo" row 7: missing client name`, Diagnostic{Sheet: "Marzo", Row: 7, Message: "missing client name"}.String())
	assert.Equal(t, "row 3: x", Diagnostic{Row: 3, Message: "x"}.String())
}
