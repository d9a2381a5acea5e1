package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAddOns = map[string]AddOn{
	"boba":    {ID: "boba", Name: "Boba", Price: 0.75},
	"pudding": {ID: "pudding", Name: "Pudding", Price: 0.95},
	"jelly":   {ID: "jelly", Name: "Grass Jelly", Price: 0.60},
}

func TestResolveLineAddOnPricing(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 1, Name: "Taro Milk Tea", Price: 5.00}

	line := ResolveLine(item, Selection{
		AddOnIDs:  []string{"boba"},
		Ice:       IceNormal,
		Sweetness: SweetnessFull,
	}, testAddOns)

	assert.InDelta(t, 5.75, line.UnitPrice, 1e-9)
	assert.Equal(t, 1, line.Quantity)

	plain := ResolveLine(item, DefaultSelection(), testAddOns)
	assert.InDelta(t, 5.00, plain.UnitPrice, 1e-9)
	assert.NotEqual(t, plain.Key, line.Key)
}

func TestResolveLineKeyStableUnderAddOnOrder(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 3, Name: "Jasmine Green Tea", Price: 4.25}

	a := ResolveLine(item, Selection{AddOnIDs: []string{"pudding", "boba", "jelly"}}, testAddOns)
	b := ResolveLine(item, Selection{AddOnIDs: []string{"jelly", "boba", "pudding"}}, testAddOns)

	assert.Equal(t, a.Key, b.Key)
	assert.InDelta(t, a.UnitPrice, b.UnitPrice, 1e-9)
}

func TestResolveLineKeyDifferences(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 2, Name: "Classic Milk Tea", Price: 4.50}

	tests := []struct {
		name string
		a, b Selection
		same bool
	}{
		{
			name: "default equals explicit default",
			a:    Selection{},
			b:    Selection{Ice: IceNormal, Sweetness: SweetnessFull},
			same: true,
		},
		{
			name: "duplicate add-ons collapse",
			a:    Selection{AddOnIDs: []string{"boba", "boba"}},
			b:    Selection{AddOnIDs: []string{"boba"}},
			same: true,
		},
		{
			name: "ice level differs",
			a:    Selection{Ice: IceNormal},
			b:    Selection{Ice: IceExtra},
			same: false,
		},
		{
			name: "sweetness differs",
			a:    Selection{Sweetness: SweetnessFull},
			b:    Selection{Sweetness: SweetnessQuarter},
			same: false,
		},
		{
			name: "add-on set differs",
			a:    Selection{AddOnIDs: []string{"boba"}},
			b:    Selection{AddOnIDs: []string{"boba", "jelly"}},
			same: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			keyA := ResolveLine(item, tt.a, testAddOns).Key
			keyB := ResolveLine(item, tt.b, testAddOns).Key
			if tt.same {
				assert.Equal(t, keyA, keyB)
			} else {
				assert.NotEqual(t, keyA, keyB)
			}
		})
	}
}

func TestResolveLineDifferentItemsNeverCollide(t *testing.T) {
	t.Parallel()

	sel := Selection{AddOnIDs: []string{"boba"}}
	a := ResolveLine(MenuItem{ID: 1, Price: 5}, sel, testAddOns)
	b := ResolveLine(MenuItem{ID: 2, Price: 5}, sel, testAddOns)

	assert.NotEqual(t, a.Key, b.Key)
}

func TestResolveLineUnknownAddOnContributesZero(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 4, Name: "Winter Melon Tea", Price: 3.75}
	line := ResolveLine(item, Selection{AddOnIDs: []string{"nonexistent"}}, testAddOns)

	require.InDelta(t, 3.75, line.UnitPrice, 1e-9)
	// Still a distinct cart line: the customer asked for something,
	// even if the catalog no longer prices it.
	assert.NotEqual(t, ResolveLine(item, Selection{}, testAddOns).Key, line.Key)
}

func TestDuplicateAndEmptyAddOnIDsNormalize(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 5, Price: 4.00}
	line := ResolveLine(item, Selection{AddOnIDs: []string{"boba", "", "boba"}}, testAddOns)

	assert.Equal(t, []string{"boba"}, line.Selection.AddOnIDs)
	assert.InDelta(t, 4.75, line.UnitPrice, 1e-9)
}
