package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutCardHappyPath(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	assert.Equal(t, StateIdle, co.State())

	require.NoError(t, co.SelectMethod(PaymentCard))
	assert.Equal(t, StateMethodSelected, co.State())
	assert.Equal(t, PaymentCard, co.Method())

	require.NoError(t, co.MarkValidated())
	require.NoError(t, co.MarkSubmitted())
	require.NoError(t, co.Complete())

	// Completion lands back in Idle with no method, ready for the next
	// order.
	assert.Equal(t, StateIdle, co.State())
	assert.Empty(t, co.Method())
}

func TestCheckoutCashHappyPath(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCash))
	require.NoError(t, co.EnterAmount())
	assert.Equal(t, StateAmountEntered, co.State())
	require.NoError(t, co.MarkValidated())
	require.NoError(t, co.MarkSubmitted())
	require.NoError(t, co.Complete())
	assert.Equal(t, StateIdle, co.State())
}

func TestCheckoutAmountEntryRequiresCash(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCard))
	assert.ErrorIs(t, co.EnterAmount(), ErrInvalidTransition)
}

func TestCheckoutIllegalTransitions(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	assert.ErrorIs(t, co.MarkValidated(), ErrInvalidTransition)
	assert.ErrorIs(t, co.MarkSubmitted(), ErrInvalidTransition)
	assert.ErrorIs(t, co.Complete(), ErrInvalidTransition)
	assert.ErrorIs(t, co.Fail(), ErrInvalidTransition)
}

func TestCheckoutFailedSubmissionRetries(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCash))
	require.NoError(t, co.EnterAmount())
	require.NoError(t, co.MarkValidated())
	require.NoError(t, co.MarkSubmitted())
	require.NoError(t, co.Fail())
	assert.Equal(t, StateFailed, co.State())

	// Retry re-enters through method selection with the cart intact.
	require.NoError(t, co.SelectMethod(PaymentCard))
	assert.Equal(t, StateMethodSelected, co.State())
	assert.Equal(t, PaymentCard, co.Method())
}

func TestCheckoutReselectMethod(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCash))
	require.NoError(t, co.SelectMethod(PaymentCard))
	assert.Equal(t, PaymentCard, co.Method())
}

func TestCheckoutCancelReturnsToIdle(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCash))
	require.NoError(t, co.EnterAmount())

	co.Cancel()

	assert.Equal(t, StateIdle, co.State())
	assert.Empty(t, co.Method())
	require.NoError(t, co.SelectMethod(PaymentCard))
}

func TestCheckoutNoSubmissionDuringSubmitted(t *testing.T) {
	t.Parallel()

	co := NewCheckout()
	require.NoError(t, co.SelectMethod(PaymentCard))
	require.NoError(t, co.MarkValidated())
	require.NoError(t, co.MarkSubmitted())

	// Another checkout attempt cannot start while a submission is
	// pending.
	assert.ErrorIs(t, co.SelectMethod(PaymentCard), ErrInvalidTransition)
}
