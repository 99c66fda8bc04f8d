package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "API de pedidos, recepción e inventario de repuestos",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// loadConfig carga la configuración y arma el logger raíz.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	return cfg, log, nil
}
