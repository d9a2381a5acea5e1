package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Receipt is the terminal-local journal row of a completed sale, kept
// for reprint and end-of-day reconciliation. The ordering backend is
// the ledger of record; a receipt is written only after the backend
// acknowledged the transaction.
type Receipt struct {
	BaseModel
	TransactionID int           `gorm:"index" json:"transaction_id"`
	SessionID     uuid.UUID     `gorm:"type:uuid;index" json:"session_id"`
	EmployeeID    int           `json:"employee_id"`
	PaymentMethod string        `json:"payment_method"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Tip           float64       `json:"tip"`
	Total         float64       `json:"total"`
	CashTendered  *float64      `json:"cash_tendered,omitempty"`
	Change        *float64      `json:"change,omitempty"`
	CustomerID    *int          `json:"customer_id,omitempty"`
	Items         []ReceiptItem `json:"items,omitempty"`
}

// ReceiptItem is one printed line of a receipt, including the
// customization detail the backend payload leaves out.
type ReceiptItem struct {
	BaseModel
	ReceiptID  uuid.UUID      `gorm:"type:uuid;index" json:"receipt_id"`
	MenuItemID int            `json:"menu_item_id"`
	Name       string         `json:"name"`
	UnitPrice  float64        `json:"unit_price"`
	Quantity   int            `json:"quantity"`
	Ice        string         `json:"ice"`
	Sweetness  string         `json:"sweetness"`
	AddOnNames pq.StringArray `gorm:"type:text[]" json:"add_on_names"`
}
