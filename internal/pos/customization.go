package pos

import (
	"fmt"
	"sort"
	"strings"
)

// IceLevel controls how much ice goes into a drink.
type IceLevel string

const (
	IceLight  IceLevel = "light"
	IceNormal IceLevel = "normal"
	IceExtra  IceLevel = "extra"
)

// Valid reports whether the level is one of the known options.
func (l IceLevel) Valid() bool {
	switch l {
	case IceLight, IceNormal, IceExtra:
		return true
	}
	return false
}

// SweetnessLevel is the syrup percentage of a drink.
type SweetnessLevel string

const (
	SweetnessNone    SweetnessLevel = "0%"
	SweetnessQuarter SweetnessLevel = "25%"
	SweetnessHalf    SweetnessLevel = "50%"
	SweetnessRegular SweetnessLevel = "75%"
	SweetnessFull    SweetnessLevel = "100%"
)

// Valid reports whether the level is one of the known options.
func (s SweetnessLevel) Valid() bool {
	switch s {
	case SweetnessNone, SweetnessQuarter, SweetnessHalf, SweetnessRegular, SweetnessFull:
		return true
	}
	return false
}

// Selection is the customer's customization of a single drink. The add-on
// set is unordered; defaults are normal ice, full sweetness, no add-ons.
type Selection struct {
	AddOnIDs  []string       `json:"add_on_ids,omitempty"`
	Ice       IceLevel       `json:"ice"`
	Sweetness SweetnessLevel `json:"sweetness"`
}

// DefaultSelection returns the selection used when the customer skips
// customization entirely.
func DefaultSelection() Selection {
	return Selection{Ice: IceNormal, Sweetness: SweetnessFull}
}

// normalized fills in defaults and returns the selection with its add-on
// IDs deduplicated and sorted, so that selections differing only in
// add-on order compare (and key) equal.
func (s Selection) normalized() Selection {
	out := Selection{Ice: s.Ice, Sweetness: s.Sweetness}
	if out.Ice == "" {
		out.Ice = IceNormal
	}
	if out.Sweetness == "" {
		out.Sweetness = SweetnessFull
	}

	if len(s.AddOnIDs) > 0 {
		seen := make(map[string]struct{}, len(s.AddOnIDs))
		for _, id := range s.AddOnIDs {
			if id == "" {
				continue
			}
			seen[id] = struct{}{}
		}
		out.AddOnIDs = make([]string, 0, len(seen))
		for id := range seen {
			out.AddOnIDs = append(out.AddOnIDs, id)
		}
		sort.Strings(out.AddOnIDs)
	}

	return out
}

// canonical serializes a normalized selection into a stable string.
// Ice and sweetness are always present, even at their defaults, so a
// default selection keys the same as an explicitly-chosen default.
func (s Selection) canonical() string {
	return fmt.Sprintf("addons:%s|ice:%s|sweet:%s",
		strings.Join(s.AddOnIDs, "+"),
		s.Ice,
		strings.TrimSuffix(string(s.Sweetness), "%"))
}

// Line is one distinct (item + customization) entry of a cart.
type Line struct {
	Key       string    `json:"key"`
	Item      MenuItem  `json:"item"`
	UnitPrice float64   `json:"unit_price"`
	Selection Selection `json:"selection"`
	Quantity  int       `json:"quantity"`
}

// LineTotal is the line's contribution to the subtotal.
func (l Line) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// ResolveLine prices a customized drink and derives its cart key. The
// unit price is the base price plus the surcharge of every selected
// add-on found in the catalog; an unknown add-on ID contributes zero
// rather than failing the operation. Two selections that differ only in
// add-on ordering resolve to the same key; any difference in the chosen
// add-ons, ice level or sweetness produces a different key.
func ResolveLine(item MenuItem, sel Selection, addOns map[string]AddOn) Line {
	sel = sel.normalized()

	price := item.Price
	for _, id := range sel.AddOnIDs {
		if addOn, ok := addOns[id]; ok {
			price += addOn.Price
		}
	}

	return Line{
		Key:       fmt.Sprintf("%d_%s", item.ID, sel.canonical()),
		Item:      item,
		UnitPrice: price,
		Selection: sel,
		Quantity:  1,
	}
}
