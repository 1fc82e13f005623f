package main

import (
	"github.com/spf13/cobra"

	"SalesIngest/internal/salesparse"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE",
		Short: "Report the layout of a workbook by each heuristic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, _, err := readWorkbook(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file":      args[0],
				"sheets":    wb.SheetNames(),
				"anchors":   salesparse.Classify(wb).String(),
				"fileName":  salesparse.ClassifyFileName(args[0]).String(),
				"structure": salesparse.ClassifyStructure(wb).String(),
			})
		},
	}
}
