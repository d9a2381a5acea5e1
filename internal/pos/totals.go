package pos

import "math"

// Totals is derived from a cart and never stored on its own; it must be
// recomputed whenever the cart changes.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Tip        float64 `json:"tip"`
	GrandTotal float64 `json:"grand_total"`
}

// Rounded returns the totals rounded to cents for display and
// submission. Internal arithmetic keeps full float precision.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   Round2(t.Subtotal),
		Tax:        Round2(t.Tax),
		Tip:        Round2(t.Tip),
		GrandTotal: Round2(t.GrandTotal),
	}
}

// TipSpec carries the customer's tip choice: either a percentage of the
// subtotal or a flat amount, never both. The zero value means no tip.
type TipSpec struct {
	Percent *float64
	Amount  *float64
}

// Resolve turns the spec into an absolute tip amount. The percentage is
// taken of the subtotal only, excluding tax. Absent, negative or NaN
// values resolve to zero.
func (t TipSpec) Resolve(subtotal float64) float64 {
	var tip float64
	switch {
	case t.Percent != nil:
		tip = subtotal * *t.Percent / 100
	case t.Amount != nil:
		tip = *t.Amount
	}

	if math.IsNaN(tip) || tip < 0 {
		return 0
	}
	return tip
}

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
