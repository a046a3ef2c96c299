package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine/storefront/internal/infrastructure/config"
	"github.com/vitrine/storefront/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Account Store schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pg, err := config.LoadPostgres(cmd.Context())
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(pg.URL); err != nil {
			return err
		}
		return printVersion(cmd, pg.URL)
	},
}

var downSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pg, err := config.LoadPostgres(cmd.Context())
		if err != nil {
			return err
		}
		if err := postgres.MigrateDown(pg.URL, downSteps); err != nil {
			return err
		}
		return printVersion(cmd, pg.URL)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		pg, err := config.LoadPostgres(cmd.Context())
		if err != nil {
			return err
		}
		return printVersion(cmd, pg.URL)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back (0 rolls back everything)")

	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, databaseURL string) error {
	version, dirty, err := postgres.MigrationVersion(databaseURL)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
