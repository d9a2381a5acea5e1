package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/teapos/internal/services"
)

// ManagerHandler exposes the backend's manager views (inventory,
// customers, reports, employees) as thin proxies. The terminal adds
// nothing but authentication; the backend owns the data.
type ManagerHandler struct {
	backend *services.BackendClient
}

// NewManagerHandler constructs ManagerHandler.
func NewManagerHandler(backend *services.BackendClient) *ManagerHandler {
	return &ManagerHandler{backend: backend}
}

// proxy forwards the request to the given backend path, relaying the
// status, content type and body verbatim.
func (h *ManagerHandler) proxy(c *fiber.Ctx, path string) error {
	method := strings.ToUpper(c.Method())
	if method == "" {
		method = http.MethodGet
	}

	var body any
	if len(c.Body()) > 0 {
		body = json.RawMessage(c.Body())
	}

	queryMap := make(map[string]string, len(c.Queries()))
	for k, v := range c.Queries() {
		queryMap[k] = v
	}

	resp, err := h.backend.Do(services.RequestOpts{
		Method: method,
		Path:   path,
		Query:  queryMap,
		Body:   body,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	c.Status(resp.Status)
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Set("Content-Type", ct)
	}

	return c.Send(resp.Body)
}

// Inventory endpoints.

func (h *ManagerHandler) ListInventory(c *fiber.Ctx) error {
	return h.proxy(c, "api/inventory")
}

func (h *ManagerHandler) ListLowStock(c *fiber.Ctx) error {
	return h.proxy(c, "api/inventory/low-stock")
}

func (h *ManagerHandler) GetInventoryItem(c *fiber.Ctx) error {
	return h.proxy(c, "api/inventory/"+c.Params("id"))
}

func (h *ManagerHandler) UpdateInventoryItem(c *fiber.Ctx) error {
	return h.proxy(c, "api/inventory/"+c.Params("id"))
}

// Customer endpoints.

func (h *ManagerHandler) ListCustomers(c *fiber.Ctx) error {
	return h.proxy(c, "api/customers")
}

func (h *ManagerHandler) GetCustomer(c *fiber.Ctx) error {
	return h.proxy(c, "api/customers/"+c.Params("id"))
}

func (h *ManagerHandler) CreateCustomer(c *fiber.Ctx) error {
	return h.proxy(c, "api/customers")
}

func (h *ManagerHandler) GetCustomerRewards(c *fiber.Ctx) error {
	return h.proxy(c, "api/customers/"+c.Params("id")+"/rewards")
}

func (h *ManagerHandler) UpdateCustomerPoints(c *fiber.Ctx) error {
	return h.proxy(c, "api/customers/"+c.Params("id")+"/points")
}

// Report endpoints.

func (h *ManagerHandler) ListSales(c *fiber.Ctx) error {
	return h.proxy(c, "api/sales")
}

func (h *ManagerHandler) SalesSummary(c *fiber.Ctx) error {
	return h.proxy(c, "api/sales/summary")
}

func (h *ManagerHandler) Dashboard(c *fiber.Ctx) error {
	return h.proxy(c, "api/management/dashboard")
}

// Transaction history endpoints.

func (h *ManagerHandler) ListTransactions(c *fiber.Ctx) error {
	return h.proxy(c, "api/transactions")
}

func (h *ManagerHandler) GetTransaction(c *fiber.Ctx) error {
	return h.proxy(c, "api/transactions/"+c.Params("id"))
}

// Employee endpoints.

func (h *ManagerHandler) ListEmployees(c *fiber.Ctx) error {
	return h.proxy(c, "api/employees")
}

func (h *ManagerHandler) GetEmployee(c *fiber.Ctx) error {
	return h.proxy(c, "api/employees/"+c.Params("id"))
}
