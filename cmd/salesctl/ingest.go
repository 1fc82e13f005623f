package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"SalesIngest/internal/checksum"
	"SalesIngest/internal/config"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/store/memstore"
	"SalesIngest/internal/store/pgstore"
)

func newIngestCmd(root *rootOptions) *cobra.Command {
	var (
		user      string
		companyID int64
		year      int
		dryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "ingest FILE",
		Short: "Run one ingestion and print the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, data, err := readWorkbook(args[0])
			if err != nil {
				return err
			}
			dir, err := loadDirectory(root.servicesFile)
			if err != nil {
				return err
			}

			var store ingest.Store
			if dryRun {
				store = memstore.New()
			} else {
				settings, err := config.DBFromEnv()
				if err != nil {
					return err
				}
				pool, err := pgxpool.New(cmd.Context(), settings.URL())
				if err != nil {
					return fmt.Errorf("connect: %w", err)
				}
				defer pool.Close()
				store = pgstore.New(pool)
			}

			if user == "" {
				user = os.Getenv("USER")
			}
			req := ingest.Request{
				ActorID:    user,
				FileName:   filepath.Base(args[0]),
				FileSize:   int64(len(data)),
				FileHash:   checksum.Sum(data),
				TargetYear: year,
				Workbook:   wb,
			}
			if companyID != 0 {
				req.CompanyID = &companyID
			}
			sum, runErr := ingest.New(store, dir).Ingest(cmd.Context(), req)
			if err := printJSON(cmd.OutOrStdout(), sum); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "actor recorded on the upload (default $USER)")
	cmd.Flags().Int64Var(&companyID, "company", 0, "declared company id, used when the layout cannot be recognised")
	cmd.Flags().IntVar(&year, "year", 0, "target year for month sheets (0 infers it)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "use an in-memory store instead of PostgreSQL")
	return cmd
}
