package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"SalesIngest/internal/config"
	"SalesIngest/internal/store/pgstore"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the sales schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.DBFromEnv()
			if err != nil {
				return err
			}
			db, err := sql.Open("postgres", settings.ConnString())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := pgstore.Migrate(db); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}
