package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ordering"
	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
	"github.com/jhoicas/Repuestos-api/internal/application/resolution"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Repuestos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el servidor HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// txRunner cumple los TxRunner de todos los casos de uso.
type txRunner interface {
	Run(ctx context.Context, fn func(tx repository.Store) error) error
}

// backend repositorios de lectura y runner transaccional del driver elegido.
type backend struct {
	repos repository.Store
	tx    txRunner
	close func()
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	resolutionUC := resolution.NewResolutionUseCase(be.repos, be.tx, log.Component("resolution"))
	inventoryUC := inventory.NewInventoryUseCase(be.repos, be.tx, log.Component("inventory"))
	orderUC := ordering.NewOrderUseCase(be.repos, be.tx, resolutionUC, cfg.Receiving.DefaultCurrency, log.Component("ordering"))

	// PDF: acta de recepción de mercancía
	receivingUC := receiving.NewReceivingUseCase(be.repos, be.tx, inventoryUC,
		infrapdf.NewReceiptNoteGenerator(), log.Component("receiving"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	}, httpRouter.RouterDeps{
		OrderUC:      orderUC,
		ReceivingUC:  receivingUC,
		InventoryUC:  inventoryUC,
		ResolutionUC: resolutionUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

// openBackend conecta PostgreSQL (con migración automática opcional) o arma el almacén
// en memoria sembrado desde CATALOG_SEED_FILE.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		st := memory.New(memory.WithLockTimeout(cfg.Receiving.LockTimeout))
		if cfg.Storage.CatalogSeedFile != "" {
			cat, err := catalogxml.ParseFile(cfg.Storage.CatalogSeedFile)
			if err != nil {
				return nil, fmt.Errorf("catálogo inicial: %w", err)
			}
			cat.LoadInto(st)
			log.Info().
				Int("sites", len(cat.Sites)).
				Int("parts", len(cat.Parts)).
				Int("suppliers", len(cat.Suppliers)).
				Int("refs", len(cat.Refs)).
				Msg("catálogo cargado en memoria")
		} else {
			log.Warn().Msg("almacén en memoria sin catálogo: defina CATALOG_SEED_FILE")
		}
		return &backend{repos: st.Repos(), tx: st, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := migrateUp(pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &backend{
		repos: postgres.NewStore(pool),
		tx:    postgres.NewTxRunner(pool, cfg.Receiving.LockTimeout, cfg.Receiving.StatementTimeout),
		close: pool.Close,
	}, nil
}
