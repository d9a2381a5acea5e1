package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/handlers"
	"github.com/example/teapos/internal/middleware"
	"github.com/example/teapos/internal/services"
	"github.com/example/teapos/internal/session"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, backend *services.BackendClient, catalog *services.CatalogService, registry *session.Registry) {
	authHandler := handlers.NewAuthHandler(backend, registry, cfg)
	menuHandler := handlers.NewMenuHandler(catalog)
	cartHandler := handlers.NewCartHandler(catalog, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(backend, catalog, db, cfg)
	managerHandler := handlers.NewManagerHandler(backend)
	receiptHandler := handlers.NewReceiptHandler(db)

	api := app.Group("/api")

	// Session routes
	api.Post("/auth/login", authHandler.Login)
	api.Post("/sessions/kiosk", authHandler.StartKiosk)

	// Catalog routes (readable without a session so the menu board can
	// render before anyone signs in)
	api.Get("/menu", menuHandler.ListMenu)
	api.Get("/addons", menuHandler.ListAddOns)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg, registry))

	protected.Post("/auth/logout", authHandler.Logout)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Delete("/cart/items", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)

	protected.Post("/checkout", checkoutHandler.Checkout)
	protected.Post("/checkout/cancel", checkoutHandler.Cancel)

	// Manager routes
	manager := protected.Group("", middleware.RequireManager())

	manager.Post("/catalog/refresh", menuHandler.RefreshCatalog)

	manager.Get("/inventory", managerHandler.ListInventory)
	manager.Get("/inventory/low-stock", managerHandler.ListLowStock)
	manager.Get("/inventory/:id", managerHandler.GetInventoryItem)
	manager.Put("/inventory/:id", managerHandler.UpdateInventoryItem)

	manager.Get("/customers", managerHandler.ListCustomers)
	manager.Post("/customers", managerHandler.CreateCustomer)
	manager.Get("/customers/:id", managerHandler.GetCustomer)
	manager.Get("/customers/:id/rewards", managerHandler.GetCustomerRewards)
	manager.Put("/customers/:id/points", managerHandler.UpdateCustomerPoints)

	manager.Get("/reports/sales", managerHandler.ListSales)
	manager.Get("/reports/summary", managerHandler.SalesSummary)
	manager.Get("/reports/dashboard", managerHandler.Dashboard)

	manager.Get("/transactions", managerHandler.ListTransactions)
	manager.Get("/transactions/:id", managerHandler.GetTransaction)

	manager.Get("/employees", managerHandler.ListEmployees)
	manager.Get("/employees/:id", managerHandler.GetEmployee)

	manager.Get("/receipts", receiptHandler.ListReceipts)
	manager.Get("/receipts/:id", receiptHandler.GetReceipt)
}
