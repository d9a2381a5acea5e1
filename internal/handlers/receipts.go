package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/teapos/internal/models"
	"github.com/example/teapos/internal/utils"
)

// ReceiptHandler serves the terminal-local receipt journal.
type ReceiptHandler struct {
	db *gorm.DB
}

// NewReceiptHandler constructs ReceiptHandler.
func NewReceiptHandler(db *gorm.DB) *ReceiptHandler {
	return &ReceiptHandler{db: db}
}

// ListReceipts returns paginated receipts, newest first.
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Receipt{})

	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var receipts []models.Receipt
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&receipts).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    receipts,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetReceipt returns a single receipt for reprint.
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var receipt models.Receipt
	if err := h.db.Preload("Items").
		First(&receipt, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "receipt not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": receipt})
}
