package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"healthsync/internal/app/server/config"
	"healthsync/internal/infrastructure/migration"
)

var errNotPostgres = errors.New("migrations apply only to STORAGE_DRIVER=postgres")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление схемой PostgreSQL",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DB.Driver != config.StoragePostgres {
			return errNotPostgres
		}
		if err := migration.NewMigration(cfg, nil).Up(); err != nil {
			return err
		}
		log.Info("migrations applied", "path", cfg.DB.Migrations)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DB.Driver != config.StoragePostgres {
			return errNotPostgres
		}
		if err := migration.NewMigration(cfg, nil).Down(); err != nil {
			return err
		}
		log.Info("migrations rolled back", "path", cfg.DB.Migrations)
		return nil
	},
}
