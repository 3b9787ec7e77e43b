package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentLinkTransitions(t *testing.T) {
	assert.True(t, PAYMENT_LINK_PENDING.CanTransition(PAYMENT_LINK_ACTIVE))
	assert.True(t, PAYMENT_LINK_PENDING.CanTransition(PAYMENT_LINK_PAID))
	assert.True(t, PAYMENT_LINK_ACTIVE.CanTransition(PAYMENT_LINK_EXPIRED))

	// Settled and dead links never move again.
	assert.False(t, PAYMENT_LINK_PAID.CanTransition(PAYMENT_LINK_CANCELLED))
	assert.False(t, PAYMENT_LINK_PAID.CanTransition(PAYMENT_LINK_EXPIRED))
	assert.False(t, PAYMENT_LINK_CANCELLED.CanTransition(PAYMENT_LINK_PAID))
	assert.False(t, PAYMENT_LINK_EXPIRED.CanTransition(PAYMENT_LINK_PAID))

	assert.True(t, PAYMENT_LINK_PAID.Terminal())
	assert.True(t, PAYMENT_LINK_CANCELLED.Terminal())
	assert.True(t, PAYMENT_LINK_EXPIRED.Terminal())
	assert.False(t, PAYMENT_LINK_PENDING.Terminal())
	assert.False(t, PAYMENT_LINK_ACTIVE.Terminal())
}

func TestDepositTransitions(t *testing.T) {
	assert.True(t, DEPOSIT_PENDING.CanTransition(DEPOSIT_AUTHORIZED))
	assert.True(t, DEPOSIT_PENDING.CanTransition(DEPOSIT_EXPIRED))
	assert.True(t, DEPOSIT_AUTHORIZED.CanTransition(DEPOSIT_RELEASED))
	assert.True(t, DEPOSIT_AUTHORIZED.CanTransition(DEPOSIT_CAPTURED))

	// A hold that was never authorized cannot be captured or released.
	assert.False(t, DEPOSIT_PENDING.CanTransition(DEPOSIT_CAPTURED))
	assert.False(t, DEPOSIT_PENDING.CanTransition(DEPOSIT_RELEASED))
	assert.False(t, DEPOSIT_CAPTURED.CanTransition(DEPOSIT_RELEASED))
	assert.False(t, DEPOSIT_RELEASED.CanTransition(DEPOSIT_CAPTURED))

	assert.True(t, DEPOSIT_CAPTURED.Terminal())
	assert.True(t, DEPOSIT_RELEASED.Terminal())
	assert.True(t, DEPOSIT_EXPIRED.Terminal())
	assert.False(t, DEPOSIT_AUTHORIZED.Terminal())
}

func TestBookingTransitions(t *testing.T) {
	assert.True(t, BOOKING_DRAFT.CanTransition(BOOKING_CONFIRMED))
	assert.True(t, BOOKING_CONFIRMED.CanTransition(BOOKING_CANCELLED))
	assert.True(t, BOOKING_CANCELLED.CanTransition(BOOKING_DRAFT))
	assert.False(t, BOOKING_CANCELLED.CanTransition(BOOKING_CONFIRMED))
	assert.False(t, BOOKING_CONFIRMED.CanTransition(BOOKING_DRAFT))
}

func TestTransitionSources(t *testing.T) {
	assert.ElementsMatch(t, []PaymentLinkStatus{PAYMENT_LINK_PENDING, PAYMENT_LINK_ACTIVE}, PaymentLinkSources(PAYMENT_LINK_PAID))
	assert.Empty(t, PaymentLinkSources(PAYMENT_LINK_PENDING))

	assert.ElementsMatch(t, []DepositStatus{DEPOSIT_PENDING, DEPOSIT_AUTHORIZED}, DepositSources(DEPOSIT_EXPIRED))
	assert.ElementsMatch(t, []DepositStatus{DEPOSIT_AUTHORIZED}, DepositSources(DEPOSIT_CAPTURED))
	assert.Empty(t, DepositSources(DEPOSIT_PENDING))
}

func TestPaymentIntentArithmetic(t *testing.T) {
	assert.True(t, INTENT_CLIENT_PAYMENT.IsInitial())
	assert.True(t, INTENT_DOWN_PAYMENT.IsInitial())
	assert.False(t, INTENT_BALANCE_PAYMENT.IsInitial())
	assert.False(t, INTENT_SECURITY_DEPOSIT.IsInitial())

	assert.True(t, INTENT_BALANCE_PAYMENT.CountsTowardPaid())
	assert.True(t, INTENT_FINAL_PAYMENT.CountsTowardPaid())
	assert.False(t, INTENT_SECURITY_DEPOSIT.CountsTowardPaid())
}
