package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"SalesIngest/internal/appmanager"
	"SalesIngest/internal/config"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/workbook"
)

type rootOptions struct {
	servicesFile string
	envFile      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "salesctl",
		Short: "Inspect and ingest sales workbooks",
		Long: `salesctl works on the same pipeline as the upload endpoint.

  salesctl classify ventas.xlsx           # which layout is this?
  salesctl parse ventas.xlsx              # what would be read, and which rows are rejected
  salesctl ingest ventas.xlsx --dry-run   # full run against an in-memory store
  salesctl migrate                        # apply database migrations`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load(opts.envFile)
		},
	}
	root.PersistentFlags().StringVar(&opts.servicesFile, "services", config.DefaultServicesFile, "services.yaml holding the company directory")
	root.PersistentFlags().StringVar(&opts.envFile, "env", config.DefaultEnvFile, "dotenv file with DB_* settings")

	root.AddCommand(
		newClassifyCmd(),
		newParseCmd(),
		newIngestCmd(opts),
		newMigrateCmd(),
	)
	return root
}

func readWorkbook(path string) (*workbook.Workbook, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	wb, err := workbook.Open(data, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return wb, data, nil
}

// loadDirectory reads the companies of the "sales" service block.
func loadDirectory(servicesFile string) (*ingest.Directory, error) {
	seq, err := appmanager.LoadServiceSequence(servicesFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", servicesFile, err)
	}
	cfg, ok := appmanager.FindConfig(seq, "sales")
	if !ok {
		return nil, fmt.Errorf("%s has no sales service", servicesFile)
	}
	companies, err := config.Companies(cfg)
	if err != nil {
		return nil, err
	}
	return ingest.NewDirectory(companies...), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
