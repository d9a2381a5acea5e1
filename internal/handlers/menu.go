package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/teapos/internal/services"
)

// MenuHandler serves the cached catalog.
type MenuHandler struct {
	catalog *services.CatalogService
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(catalog *services.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

func catalogUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"error":   "catalog_unavailable",
		"message": "the menu could not be loaded; ordering is paused until it recovers",
	})
}

// ListMenu returns all menu items.
func (h *MenuHandler) ListMenu(c *fiber.Ctx) error {
	items, err := h.catalog.MenuItems()
	if err != nil {
		return catalogUnavailable(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// ListAddOns returns all drink add-ons.
func (h *MenuHandler) ListAddOns(c *fiber.Ctx) error {
	addOns, err := h.catalog.AddOns()
	if err != nil {
		return catalogUnavailable(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": addOns})
}

// RefreshCatalog refetches the menu and add-on lists from the backend.
// This is the recovery path when the catalog failed to load at boot.
func (h *MenuHandler) RefreshCatalog(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(); err != nil {
		log.Printf("[Catalog] manual refresh failed: %v", err)
		return catalogUnavailable(c)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"refreshed_at": h.catalog.RefreshedAt(),
	})
}
