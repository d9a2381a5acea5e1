package pos

import (
	"errors"
	"sort"
	"sync"
)

// ErrSubmissionInFlight is returned when a second transaction submission
// is attempted while one is already pending for the same cart.
var ErrSubmissionInFlight = errors.New("a transaction submission is already in flight")

// Cart holds the lines of one terminal session, keyed by the canonical
// customization key. All methods are safe for concurrent use, though in
// practice a cart only ever sees one request at a time.
type Cart struct {
	mu       sync.Mutex
	lines    map[string]*Line
	inFlight bool
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add merges a resolved line into the cart. If a line with the same key
// already exists only its quantity grows; the stored unit price and
// customization are kept from the first insert, so a catalog price
// change mid-session never touches lines already in the cart.
func (c *Cart) Add(line Line) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lines[line.Key]; ok {
		existing.Quantity++
		return
	}

	line.Quantity = 1
	c.lines[line.Key] = &line
}

// Remove decrements the quantity of the keyed line, deleting the line
// once its quantity reaches zero. Removing an unknown key is a no-op.
func (c *Cart) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[key]
	if !ok {
		return
	}

	if line.Quantity > 1 {
		line.Quantity--
		return
	}
	delete(c.lines, key)
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*Line)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Lines returns a copy of the cart's lines sorted by key, so responses
// render in a stable order regardless of insertion history.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })
	return lines
}

// Totals computes the cart's subtotal and tax at the given flat rate.
// The tip is zero here; checkout reconciliation fills it in.
func (c *Cart) Totals(taxRate float64) Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.LineTotal()
	}

	tax := subtotal * taxRate
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal + tax,
	}
}

// BeginSubmission marks the cart as having a transaction submission in
// flight. At most one submission may be pending per cart.
func (c *Cart) BeginSubmission() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSubmissionInFlight
	}
	c.inFlight = true
	return nil
}

// FinishSubmission releases the in-flight guard. On a confirmed success
// the cart is cleared; on failure its contents are left exactly as they
// were before the submission, so the user can retry.
func (c *Cart) FinishSubmission(completed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	if completed {
		c.lines = make(map[string]*Line)
	}
}
