package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentLinkInput is the contract with the hosted-payment-page
// provider. One external call per invocation; callers decide whether an
// existing link should be reused before asking for a new one.
type CreatePaymentLinkInput struct {
	BookingID         uint
	ReferenceCode     string
	Amount            decimal.Decimal
	Currency          string
	Intent            PaymentIntent
	PaymentMethodType string
	ExpiryHours       int
	Description       string
}

type PaymentLinkResult struct {
	PaymentID   string
	RedirectURL string
	ExpiresAt   time.Time
}
