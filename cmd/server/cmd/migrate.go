package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"mgtboard/internal/app/server/config"
	"mgtboard/internal/infrastructure/migration"
)

var errSQLiteMigrations = errors.New("миграции применяются только к postgres, схема sqlite создается при открытии")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление миграциями базы данных",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DB.Driver != config.DriverPostgres {
			return errSQLiteMigrations
		}
		return migration.NewMigration(cfg, nil, log).Up()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DB.Driver != config.DriverPostgres {
			return errSQLiteMigrations
		}
		return migration.NewMigration(cfg, nil, log).Down()
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
