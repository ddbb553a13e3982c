package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/product"
	"github.com/jhoicas/Tienda-api/internal/application/transaction"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *product.UseCase
	InventoryUC     *inventory.LedgerUseCase
	AccountUC       *cashaccount.LedgerUseCase
	TransactionOrch *transaction.Orchestrator
	JWTSecret       string
	ShopID          string
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

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ShopID)
	products.Post("/", RequireRole("admin", "bodeguero"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin", "bodeguero"), productHandler.Update)
	products.Get("/:id/pricing", productHandler.Pricing)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ShopID)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/:id", inventoryHandler.History)
	invGroup.Get("/stock/:id", inventoryHandler.Stock)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// Conversión de unidades (protegido)
	protected.Get("/units/convert", inventoryHandler.ConvertUnits)

	// Cash accounts (protegido)
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Delete("/:id", RequireRole("admin"), accountHandler.Deactivate)
	accounts.Post("/:id/entries", accountHandler.PostEntry)
	accounts.Get("/:id/ledger", accountHandler.Ledger)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionOrch, deps.ShopID)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Post("/transfer", transactionHandler.Transfer)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Post("/:id/payments", transactionHandler.CollectPayment)
}
