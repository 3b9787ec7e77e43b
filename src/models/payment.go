package models

import (
	"crs/src/types"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one attempt to collect money for a booking via a hosted payment
// link. SessionID is the gateway identifier assigned when the link is
// created; TransactionID is only set once the gateway reports settlement.
type Payment struct {
	ID            uuid.UUID           `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID     uint                `gorm:"index" json:"booking_id"`
	PaymentIntent types.PaymentIntent `json:"payment_intent"`
	Amount        decimal.Decimal     `gorm:"type:numeric" json:"amount"`
	// TotalAmount is Amount plus the gateway fee passed on to the client.
	TotalAmount          decimal.Decimal         `gorm:"type:numeric" json:"total_amount"`
	Currency             string                  `json:"currency,omitempty"`
	SessionID            *string                 `gorm:"index" json:"session_id,omitempty"`
	TransactionID        *string                 `gorm:"index" json:"transaction_id,omitempty"`
	PaymentLinkStatus    types.PaymentLinkStatus `gorm:"default:pending" json:"payment_link_status"`
	PaidAt               *time.Time              `json:"paid_at,omitempty"`
	PaymentLinkURL       string                  `json:"payment_link_url,omitempty"`
	PaymentLinkExpiresAt *time.Time              `json:"payment_link_expires_at,omitempty"`
	ReceiptURL           *string                 `json:"receipt_url,omitempty"`
	Metadata             types.JSONB             `gorm:"type:jsonb" json:"metadata,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}

// Settled requires both the paid status and the paid_at stamp. A record with
// only one of the two is a partial write and must not be treated as paid.
func (p *Payment) Settled() bool {
	return p.PaidAt != nil && p.PaymentLinkStatus == types.PAYMENT_LINK_PAID
}
