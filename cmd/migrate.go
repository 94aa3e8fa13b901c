package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, store, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		version, err := store.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		log.Info(cmd.Context(), "миграции применены", "version", version)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, store, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return store.MigrateDown(cmd.Context())
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, store, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return store.MigrationStatus(cmd.Context())
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}
