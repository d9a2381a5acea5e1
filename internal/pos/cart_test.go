package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taroLine() Line {
	return ResolveLine(MenuItem{ID: 1, Name: "Taro Milk Tea", Price: 5.00}, DefaultSelection(), testAddOns)
}

func bobaTaroLine() Line {
	return ResolveLine(MenuItem{ID: 1, Name: "Taro Milk Tea", Price: 5.00},
		Selection{AddOnIDs: []string{"boba"}}, testAddOns)
}

func TestCartAddMergesSameCustomization(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	cart.Add(taroLine())
	cart.Add(taroLine())

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartAddKeepsDistinctCustomizationsApart(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	item := MenuItem{ID: 1, Name: "Taro Milk Tea", Price: 5.00}
	cart.Add(ResolveLine(item, Selection{Ice: IceNormal}, testAddOns))
	cart.Add(ResolveLine(item, Selection{Ice: IceExtra}, testAddOns))

	assert.Len(t, cart.Lines(), 2)
}

func TestCartAddFirstInsertWinsForPrice(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	first := taroLine()
	cart.Add(first)

	// Same key, but the catalog price moved mid-session. The snapshot
	// taken at first insert must survive.
	repriced := first
	repriced.UnitPrice = 6.50
	cart.Add(repriced)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 5.00, lines[0].UnitPrice, 1e-9)
}

func TestCartRemove(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	line := taroLine()
	cart.Add(line)
	cart.Add(line)

	cart.Remove(line.Key)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	cart.Remove(line.Key)
	assert.Empty(t, cart.Lines())
	assert.True(t, cart.Empty())
}

func TestCartRemoveUnknownKeyIsNoOp(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	cart.Add(taroLine())
	before := cart.Lines()

	cart.Remove("1_addons:ghost|ice:normal|sweet:100")

	assert.Equal(t, before, cart.Lines())
}

func TestCartClear(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	cart.Add(taroLine())
	cart.Add(bobaTaroLine())

	cart.Clear()

	assert.True(t, cart.Empty())
	assert.Empty(t, cart.Lines())
}

func TestCartTotals(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	line := taroLine() // 5.00
	cart.Add(line)
	cart.Add(line)
	cart.Add(bobaTaroLine()) // 5.75

	totals := cart.Totals(0.0825)
	assert.InDelta(t, 15.75, totals.Subtotal, 1e-9)
	assert.InDelta(t, 15.75*0.0825, totals.Tax, 1e-9)
	assert.InDelta(t, 0, totals.Tip, 1e-9)
	assert.InDelta(t, 15.75*1.0825, totals.GrandTotal, 1e-9)
}

func TestCartTotalsIndependentOfInsertionOrder(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: 9, Name: "Oolong Tea", Price: 3.95}
	a := ResolveLine(item, Selection{}, testAddOns)
	b := ResolveLine(item, Selection{AddOnIDs: []string{"pudding"}}, testAddOns)
	c := ResolveLine(item, Selection{Sweetness: SweetnessHalf}, testAddOns)

	forward := NewCart()
	forward.Add(a)
	forward.Add(b)
	forward.Add(c)

	backward := NewCart()
	backward.Add(c)
	backward.Add(b)
	backward.Add(a)

	assert.InDelta(t, forward.Totals(0.08).Subtotal, backward.Totals(0.08).Subtotal, 1e-9)
	assert.Equal(t, forward.Lines(), backward.Lines())
}

func TestCartSubmissionGuard(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	cart.Add(taroLine())

	require.NoError(t, cart.BeginSubmission())
	assert.ErrorIs(t, cart.BeginSubmission(), ErrSubmissionInFlight)

	cart.FinishSubmission(false)
	require.NoError(t, cart.BeginSubmission())
	cart.FinishSubmission(true)
	assert.True(t, cart.Empty())
}

func TestCartFailedSubmissionPreservesContents(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	cart.Add(taroLine())
	cart.Add(bobaTaroLine())
	cart.Add(bobaTaroLine())
	before := cart.Lines()

	require.NoError(t, cart.BeginSubmission())
	cart.FinishSubmission(false)

	assert.Equal(t, before, cart.Lines())
}
