package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/middleware"
	"github.com/example/teapos/internal/models"
	"github.com/example/teapos/internal/pos"
	"github.com/example/teapos/internal/services"
	"github.com/example/teapos/internal/session"
)

// CheckoutHandler reconciles payment, submits the transaction to the
// ordering backend and journals the receipt.
type CheckoutHandler struct {
	backend *services.BackendClient
	catalog *services.CatalogService
	db      *gorm.DB
	cfg     *config.Config
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(backend *services.BackendClient, catalog *services.CatalogService, db *gorm.DB, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{backend: backend, catalog: catalog, db: db, cfg: cfg}
}

type checkoutRequest struct {
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=cash card"`
	CashTendered  *float64 `json:"cash_tendered"`
	TipPercent    *float64 `json:"tip_percent"`
	TipAmount     *float64 `json:"tip_amount"`
	CustomerID    *int     `json:"customer_id"`
}

func checkoutError(c *fiber.Ctx, status int, code, message string, extra fiber.Map) error {
	body := fiber.Map{
		"success": false,
		"error":   code,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Checkout validates the payment, submits the transaction and clears
// the cart on confirmed success. On any failure the cart is left
// exactly as it was, so the same order can be retried.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payment_method must be cash or card")
	}
	if req.TipPercent != nil && req.TipAmount != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tip_percent and tip_amount are mutually exclusive")
	}

	cart, co := sess.Cart, sess.Checkout
	method := pos.PaymentMethod(req.PaymentMethod)

	if err := co.SelectMethod(method); err != nil {
		return checkoutError(c, fiber.StatusConflict, "submission_in_flight",
			"a payment is already being processed for this cart", nil)
	}
	if method == pos.PaymentCash && req.CashTendered != nil {
		if err := co.EnterAmount(); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
	}

	tip := pos.TipSpec{Percent: req.TipPercent, Amount: req.TipAmount}
	payment, err := pos.ValidateAndBuildPayment(cart, h.cfg.TaxRate, method, req.CashTendered, tip, req.CustomerID)
	if err != nil {
		var insufficient *pos.InsufficientCashError
		switch {
		case errors.Is(err, pos.ErrEmptyCart):
			co.Cancel()
			return checkoutError(c, fiber.StatusUnprocessableEntity, "empty_cart",
				"cannot check out an empty cart", nil)
		case errors.Is(err, pos.ErrInvalidCashAmount):
			return checkoutError(c, fiber.StatusUnprocessableEntity, "invalid_cash_amount",
				"cash amount must be a positive number", nil)
		case errors.As(err, &insufficient):
			return checkoutError(c, fiber.StatusUnprocessableEntity, "insufficient_cash",
				insufficient.Error(), fiber.Map{"total_due": pos.Round2(insufficient.GrandTotal)})
		}
		return err
	}

	if err := co.MarkValidated(); err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	if err := cart.BeginSubmission(); err != nil {
		return checkoutError(c, fiber.StatusConflict, "submission_in_flight",
			"a payment is already being processed for this cart", nil)
	}
	if err := co.MarkSubmitted(); err != nil {
		cart.FinishSubmission(false)
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	// Snapshot lines before the cart can be cleared; the receipt keeps
	// the customization detail the backend payload drops.
	lines := cart.Lines()

	ack, err := h.backend.CreateTransaction(payment.Submission())
	if err != nil {
		cart.FinishSubmission(false)
		if ferr := co.Fail(); ferr != nil {
			log.Printf("[Checkout] state error after failed submission: %v", ferr)
		}
		log.Printf("[Checkout] submission failed for session %s: %v", sess.ID, err)
		return checkoutError(c, fiber.StatusBadGateway, "submission_failed",
			"the transaction could not be recorded; the order was kept for retry", nil)
	}

	cart.FinishSubmission(true)
	if cerr := co.Complete(); cerr != nil {
		log.Printf("[Checkout] state error after completed submission: %v", cerr)
	}

	h.journalReceipt(sess, payment, ack, lines)

	totals := payment.Totals.Rounded()
	data := fiber.Map{
		"transaction_id": ack.TransactionID,
		"totals":         totals,
	}
	if payment.Change != nil && *payment.Change > 0 {
		data["change"] = *payment.Change
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// Cancel abandons the in-progress payment entry. The cart is untouched.
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	sess.Checkout.Cancel()
	return c.JSON(fiber.Map{"success": true})
}

// journalReceipt records the completed sale locally for reprint. The
// sale already succeeded on the backend, so journal errors are logged
// rather than surfaced to the customer.
func (h *CheckoutHandler) journalReceipt(sess *session.Session, payment *pos.Payment, ack *services.TransactionAck, lines []pos.Line) {
	if h.db == nil {
		return
	}

	totals := payment.Totals.Rounded()
	receipt := models.Receipt{
		TransactionID: ack.TransactionID,
		SessionID:     sess.ID,
		EmployeeID:    sess.EmployeeID,
		PaymentMethod: string(payment.Method),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Tip:           totals.Tip,
		Total:         totals.GrandTotal,
		CashTendered:  payment.CashTendered,
		Change:        payment.Change,
		CustomerID:    payment.CustomerID,
	}

	addOns := h.catalog.AddOnIndex()
	for _, line := range lines {
		names := make([]string, 0, len(line.Selection.AddOnIDs))
		for _, id := range line.Selection.AddOnIDs {
			if addOn, ok := addOns[id]; ok {
				names = append(names, addOn.Name)
			} else {
				names = append(names, id)
			}
		}

		receipt.Items = append(receipt.Items, models.ReceiptItem{
			MenuItemID: line.Item.ID,
			Name:       line.Item.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			Ice:        string(line.Selection.Ice),
			Sweetness:  string(line.Selection.Sweetness),
			AddOnNames: names,
		})
	}

	if err := h.db.Create(&receipt).Error; err != nil {
		log.Printf("[Checkout] failed to journal receipt for transaction %d: %v", ack.TransactionID, err)
	}
}
