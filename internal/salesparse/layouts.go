package salesparse

import "SalesIngest/internal/sales"

// Column positions are fixed per layout. Header wording has drifted over the
// years but column order has not, so headers are never matched by name.

// Layout A: domestic sales report ("REPORTE DE VENTAS").
const (
	colADate = iota
	colAFolio
	colAClient
	colAProduct
	colAQuantity
	colAUnitPrice
	colATotal
	colAUnitCost
	colAGrossMargin
)

// Layout B: export invoice register ("RELACION DE FACTURAS").
const (
	colBInvoice = iota
	colBDate
	colBClient
	colBFamily
	colBProduct
	colBUnit
	colBQuantity
	colBUnitPriceUSD
	colBTotalUSD
	colBExchangeRate
	colBTotalLocal
)

// sentinelTokens mark subtotal and cancellation rows in both layouts.
var sentinelTokens = []string{"TOTAL", "CANCELA"}

type layoutSpec struct {
	layout      sales.Layout
	titleToken  string
	headerRow   int // 1-based; this row and everything above it is skipped
	headerCol   int
	headerToken string
	identCol    int
	// when set, an empty identifier only marks a sentinel if these are empty too
	dataCols []int
	banners  []string
	// words that only appear in this layout's header rows
	structural []string
}

var specA = layoutSpec{
	layout:      sales.LayoutA,
	titleToken:  "REPORTE DE VENTAS",
	headerRow:   4,
	headerCol:   colAFolio,
	headerToken: "FOLIO",
	identCol:    colADate,
	dataCols:    []int{colAClient, colAProduct, colAQuantity},
	banners:     []string{"RESUMEN", "VENTAS DEL MES"},
	structural:  []string{"COSTO UNITARIO", "MARGEN"},
}

var specB = layoutSpec{
	layout:      sales.LayoutB,
	titleToken:  "RELACION DE FACTURAS",
	headerRow:   6,
	headerCol:   colBInvoice,
	headerToken: "FACTURA",
	identCol:    colBInvoice,
	banners:     []string{"FAMILIA:", "EXPORTACION", "EMBARQUE"},
	structural:  []string{"TIPO DE CAMBIO", "FAMILIA"},
}
