package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|version]",
	Short:     "Aplica o revierte las migraciones del esquema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	mg, err := postgres.NewMigrator(pool, log.Component("migrate"))
	if err != nil {
		return err
	}
	defer mg.Close()

	switch args[0] {
	case "up":
		return mg.Up()
	case "down":
		return mg.Down()
	default:
		v, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
		return nil
	}
}

// migrateUp aplica las migraciones pendientes al arrancar (DB_AUTO_MIGRATE=true).
func migrateUp(pool *pgxpool.Pool, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(pool, log.Component("migrate"))
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
