package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/middleware"
	"github.com/example/teapos/internal/pos"
	"github.com/example/teapos/internal/services"
	"github.com/example/teapos/internal/session"
)

// CartHandler manages the session cart.
type CartHandler struct {
	catalog *services.CatalogService
	cfg     *config.Config
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(catalog *services.CatalogService, cfg *config.Config) *CartHandler {
	return &CartHandler{catalog: catalog, cfg: cfg}
}

type cartView struct {
	Lines         []pos.Line        `json:"lines"`
	Totals        pos.Totals        `json:"totals"`
	CheckoutState pos.CheckoutState `json:"checkout_state"`
}

func (h *CartHandler) view(sess *session.Session) cartView {
	return cartView{
		Lines:         sess.Cart.Lines(),
		Totals:        sess.Cart.Totals(h.cfg.TaxRate).Rounded(),
		CheckoutState: sess.Checkout.State(),
	}
}

// GetCart returns the session's cart with recomputed totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.view(sess)})
}

type addItemRequest struct {
	MenuItemID int      `json:"menu_item_id" validate:"required,gt=0"`
	AddOnIDs   []string `json:"add_on_ids"`
	Ice        string   `json:"ice"`
	Sweetness  string   `json:"sweetness"`
}

// AddItem resolves a customized drink against the catalog and merges it
// into the cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "menu_item_id is required")
	}

	if !h.catalog.Ready() {
		return catalogUnavailable(c)
	}

	item, ok := h.catalog.MenuItem(req.MenuItemID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "menu item not found")
	}

	sel := pos.DefaultSelection()
	sel.AddOnIDs = req.AddOnIDs
	if req.Ice != "" {
		sel.Ice = pos.IceLevel(req.Ice)
	}
	if req.Sweetness != "" {
		sel.Sweetness = pos.SweetnessLevel(req.Sweetness)
	}
	if !sel.Ice.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid ice level")
	}
	if !sel.Sweetness.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sweetness level")
	}

	line := pos.ResolveLine(item, sel, h.catalog.AddOnIndex())
	sess.Cart.Add(line)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": h.view(sess)})
}

// RemoveItem decrements the line identified by the key query parameter.
// Removing an unknown key leaves the cart unchanged.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	key := c.Query("key")
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing line key")
	}

	sess.Cart.Remove(key)
	if sess.Cart.Empty() {
		sess.Checkout.Cancel()
	}

	return c.JSON(fiber.Map{"success": true, "data": h.view(sess)})
}

// ClearCart empties the cart and resets the checkout flow.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	sess.Cart.Clear()
	sess.Checkout.Cancel()

	return c.JSON(fiber.Map{"success": true, "data": h.view(sess)})
}
