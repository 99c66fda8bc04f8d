package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ordering"
	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
	"github.com/jhoicas/Repuestos-api/internal/application/resolution"
	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC      *ordering.OrderUseCase
	ReceivingUC  *receiving.ReceivingUseCase
	InventoryUC  *inventory.InventoryUseCase
	ResolutionUC *resolution.ResolutionUseCase
	JWTSecret    string
	Log          zerolog.Logger
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp construye la aplicación Fiber con middlewares, /health, /docs y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Repuestos API",
			}))
		} else {
			deps.Log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log)
	receiptHandler := NewReceiptHandler(deps.ReceivingUC, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	pendingHandler := NewPendingRefHandler(deps.ResolutionUC, deps.Log)

	// Pedidos
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/items", orderHandler.AddItem)
	orders.Get("/:id/items", orderHandler.ListItems)
	orders.Post("/:id/mark-ordered", orderHandler.MarkOrdered)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Recepciones
	orders.Post("/:id/receipts", receiptHandler.Post)
	orders.Get("/:id/receipts", receiptHandler.ListByOrder)
	api.Get("/receipts/:id", receiptHandler.GetByID)
	api.Get("/receipts/:id/pdf", receiptHandler.GetPDF)

	api.Get("/order-items/:id/remaining", orderHandler.Remaining)

	// Inventario (solo lectura)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/location", inventoryHandler.KnownLocation)

	// Referencias pendientes; aprobar y rechazar solo admin
	pending := api.Group("/pending-refs")
	pending.Post("/", pendingHandler.Raise)
	pending.Get("/", pendingHandler.List)
	pending.Get("/:id", pendingHandler.GetByID)
	pending.Post("/:id/approve", RequireRole(jwt.RoleAdmin), pendingHandler.Approve)
	pending.Post("/:id/reject", RequireRole(jwt.RoleAdmin), pendingHandler.Reject)
}
