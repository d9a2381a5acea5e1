package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/database"
	"github.com/example/teapos/internal/routes"
	"github.com/example/teapos/internal/services"
	"github.com/example/teapos/internal/session"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	backend := services.NewBackendClient(cfg.BackendURL, cfg.BackendToken, cfg.BackendTimeout)
	catalog := services.NewCatalogService(backend)
	registry := session.NewRegistry()

	app := fiber.New(fiber.Config{
		AppName: "Teapos Terminal",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, backend, catalog, registry)

	// Ordering stays blocked until the catalog loads; a manager can
	// retry via POST /api/catalog/refresh.
	if err := catalog.Refresh(); err != nil {
		log.Printf("Catalog warm-up failed: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
