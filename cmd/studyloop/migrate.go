package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyloop/internal/database"
	"github.com/at-ishikawa/studyloop/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			version, err := database.Migrate(a.db, schemas.Migrations, schemas.MigrationDir(a.cfg.Database.Driver))
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d\n", version)
			return nil
		},
	}
}
