package cmd

import (
	"fmt"

	"assetdesk/internal/config"
	"assetdesk/internal/core/logger"
	"assetdesk/internal/database"

	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations.",
	Long:  `Applies pending migrations to the postgres database from storage.database_url.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log := logger.New(cfg.Server.IsProduction())
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")

		if err := database.RunMigrations(cfg.Storage.DatabaseURL, migrationDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}
