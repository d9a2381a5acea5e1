package pos

import (
	"errors"
	"fmt"
	"math"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Valid reports whether the method is one of the supported options.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// ErrEmptyCart rejects checkout on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidCashAmount rejects a cash payment whose tendered amount is
// missing or not a positive number.
var ErrInvalidCashAmount = errors.New("cash amount must be a positive number")

// InsufficientCashError is returned when the tendered cash does not
// cover the grand total. It carries the total due so the caller can
// show it to the customer.
type InsufficientCashError struct {
	GrandTotal float64
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("insufficient cash: total due is $%.2f", Round2(e.GrandTotal))
}

// PaymentItem is one flattened line of the transaction payload. The
// backend only needs base item identity and quantity; customization is
// a presentation concern by the time a sale is recorded.
type PaymentItem struct {
	MenuItemID int `json:"menuItemId"`
	Quantity   int `json:"quantity"`
}

// Payment is the reconciled result of a validated checkout.
type Payment struct {
	Method       PaymentMethod `json:"method"`
	Totals       Totals        `json:"totals"`
	CashTendered *float64      `json:"cash_tendered,omitempty"`
	Change       *float64      `json:"change,omitempty"`
	Items        []PaymentItem `json:"items"`
	CustomerID   *int          `json:"customer_id,omitempty"`
}

// Submission is the transaction payload posted to the ordering backend.
type Submission struct {
	Items           []PaymentItem `json:"items"`
	TransactionType string        `json:"transactionType"`
	Tip             float64       `json:"tip"`
	CustomerID      *int          `json:"customerId,omitempty"`
}

// Submission builds the backend payload for this payment.
func (p *Payment) Submission() Submission {
	return Submission{
		Items:           p.Items,
		TransactionType: string(p.Method),
		Tip:             Round2(p.Totals.Tip),
		CustomerID:      p.CustomerID,
	}
}

// ValidateAndBuildPayment reconciles a finalized cart against the chosen
// payment method and tip. For cash payments the tendered amount must be
// a positive number covering the grand total; the change is included in
// the result. Card payments carry no cash fields. The cart itself is
// not touched: clearing happens only after the backend confirms the
// submission.
func ValidateAndBuildPayment(cart *Cart, taxRate float64, method PaymentMethod, cashTendered *float64, tip TipSpec, customerID *int) (*Payment, error) {
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	totals := cart.Totals(taxRate)
	totals.Tip = tip.Resolve(totals.Subtotal)
	totals.GrandTotal = totals.Subtotal + totals.Tax + totals.Tip

	payment := &Payment{
		Method:     method,
		Totals:     totals,
		CustomerID: customerID,
	}

	if method == PaymentCash {
		if cashTendered == nil || math.IsNaN(*cashTendered) || *cashTendered <= 0 {
			return nil, ErrInvalidCashAmount
		}
		if *cashTendered < totals.GrandTotal {
			return nil, &InsufficientCashError{GrandTotal: totals.GrandTotal}
		}

		change := Round2(*cashTendered - totals.GrandTotal)
		payment.CashTendered = cashTendered
		payment.Change = &change
	}

	for _, line := range cart.Lines() {
		payment.Items = append(payment.Items, PaymentItem{
			MenuItemID: line.Item.ID,
			Quantity:   line.Quantity,
		})
	}

	return payment, nil
}
