package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/journal"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/query"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.StockLedger
	Journal   *journal.MovementJournal
	Queries   *query.InventoryQueryService
	AuditLog  *audit.AuditLog
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Queries)
	invGroup.Get("/", inventoryHandler.GetInventory)
	invGroup.Post("/update", inventoryHandler.UpdateQuantity)
	invGroup.Get("/stats", inventoryHandler.GetStats)
	invGroup.Get("/reconcile", inventoryHandler.Reconcile)

	// Entradas de mercancía (protegido)
	insets := protected.Group("/inset")
	insetHandler := NewInsetHandler(deps.Journal)
	insets.Post("/", insetHandler.Create)
	insets.Get("/", insetHandler.List)

	// Salidas de mercancía (protegido)
	outsets := protected.Group("/outset")
	outsetHandler := NewOutsetHandler(deps.Journal)
	outsets.Post("/", outsetHandler.Create)
	outsets.Get("/", outsetHandler.List)

	// Auditoría (protegido)
	audits := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditLog)
	audits.Get("/", auditHandler.List)
}
