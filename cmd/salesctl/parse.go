package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"SalesIngest/internal/dedup"
	"SalesIngest/internal/sales"
	"SalesIngest/internal/salesparse"
)

type parsedRow struct {
	Sheet    string `json:"sheet"`
	Row      int    `json:"row"`
	Date     string `json:"date"`
	Document string `json:"document,omitempty"`
	Client   string `json:"client"`
	Product  string `json:"product"`
	Quantity string `json:"quantity"`
	Key      string `json:"dedupKey"`
}

func newParseCmd() *cobra.Command {
	var (
		layout   string
		year     int
		showRows bool
	)
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a workbook without storing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, _, err := readWorkbook(args[0])
			if err != nil {
				return err
			}
			l := sales.ParseLayout(layout)
			if l == sales.LayoutUnknown {
				l = salesparse.Classify(wb)
			}
			if l == sales.LayoutUnknown {
				l = salesparse.ClassifyFileName(args[0])
			}
			if l == sales.LayoutUnknown {
				l = salesparse.ClassifyStructure(wb)
			}
			if l == sales.LayoutUnknown {
				return fmt.Errorf("could not recognise the layout of %s; pass --layout", args[0])
			}
			sel, err := salesparse.Select(wb, l, year, time.Now())
			if err != nil {
				return err
			}
			diags := make([]string, 0, len(sel.Diagnostics))
			for _, d := range sel.Diagnostics {
				diags = append(diags, d.String())
			}
			out := map[string]any{
				"layout":       l.String(),
				"sheets":       sel.Sheets,
				"cumulative":   sel.Cumulative,
				"targetYear":   sel.TargetYear,
				"transactions": len(sel.Transactions),
				"diagnostics":  diags,
			}
			if showRows {
				rows := make([]parsedRow, 0, len(sel.Transactions))
				for _, tx := range sel.Transactions {
					r := parsedRow{
						Sheet:    tx.SourceSheet,
						Row:      tx.SourceRow,
						Date:     tx.Date.Format("2006-01-02"),
						Client:   tx.ClientName,
						Product:  tx.ProductName,
						Quantity: tx.Quantity.String(),
						Key:      dedup.Key(tx),
					}
					if tx.DocumentRef != nil {
						r.Document = *tx.DocumentRef
					}
					rows = append(rows, r)
				}
				out["rows"] = rows
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&layout, "layout", "", "force LAYOUT_A or LAYOUT_B instead of classifying")
	cmd.Flags().IntVar(&year, "year", 0, "target year for month sheets (0 infers it)")
	cmd.Flags().BoolVar(&showRows, "rows", false, "print every parsed row with its dedup key")
	return cmd
}
