package pos

import (
	"errors"
	"fmt"
	"sync"
)

// CheckoutState is the explicit step of the payment flow for one
// session. Idle is re-entered whenever the cart empties or the payment
// dialog is cancelled.
type CheckoutState string

const (
	StateIdle           CheckoutState = "idle"
	StateMethodSelected CheckoutState = "method_selected"
	StateAmountEntered  CheckoutState = "amount_entered"
	StateValidated      CheckoutState = "validated"
	StateSubmitted      CheckoutState = "submitted"
	StateCompleted      CheckoutState = "completed"
	StateFailed         CheckoutState = "failed"
)

// ErrInvalidTransition is returned when a checkout step is attempted out
// of order.
var ErrInvalidTransition = errors.New("invalid checkout transition")

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	StateIdle:           {StateMethodSelected},
	StateMethodSelected: {StateMethodSelected, StateAmountEntered, StateValidated},
	StateAmountEntered:  {StateAmountEntered, StateMethodSelected, StateValidated},
	StateValidated:      {StateSubmitted, StateMethodSelected},
	StateSubmitted:      {StateCompleted, StateFailed},
	// Failed retries back through method selection with the cart intact.
	StateFailed:    {StateMethodSelected},
	StateCompleted: {StateMethodSelected},
}

// Checkout tracks the payment flow of a single session's cart.
type Checkout struct {
	mu     sync.Mutex
	state  CheckoutState
	method PaymentMethod
}

// NewCheckout returns a checkout in the Idle state.
func NewCheckout() *Checkout {
	return &Checkout{state: StateIdle}
}

// State returns the current step.
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Method returns the payment method chosen for this checkout.
func (c *Checkout) Method() PaymentMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

func (c *Checkout) to(next CheckoutState) error {
	for _, allowed := range checkoutTransitions[c.state] {
		if allowed == next {
			c.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.state, next)
}

// SelectMethod records the payment method. Re-selecting is allowed at
// any pre-submission step and after a failed submission, which is how a
// retry re-enters the flow.
func (c *Checkout) SelectMethod(m PaymentMethod) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.to(StateMethodSelected); err != nil {
		return err
	}
	c.method = m
	return nil
}

// EnterAmount records that a cash amount was entered. Only meaningful
// for cash payments.
func (c *Checkout) EnterAmount() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.method != PaymentCash {
		return fmt.Errorf("%w: amount entry requires a cash payment", ErrInvalidTransition)
	}
	return c.to(StateAmountEntered)
}

// MarkValidated records that payment reconciliation succeeded.
func (c *Checkout) MarkValidated() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.to(StateValidated)
}

// MarkSubmitted records that the transaction was handed to the backend.
func (c *Checkout) MarkSubmitted() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.to(StateSubmitted)
}

// Complete records backend acknowledgment and resets to Idle; the
// caller clears the cart at the same moment.
func (c *Checkout) Complete() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.to(StateCompleted); err != nil {
		return err
	}
	c.state = StateIdle
	c.method = ""
	return nil
}

// Fail records a rejected or errored submission. The checkout stays
// retryable via SelectMethod.
func (c *Checkout) Fail() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.to(StateFailed)
}

// Cancel abandons the payment flow and returns to Idle without touching
// the cart.
func (c *Checkout) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.method = ""
}
