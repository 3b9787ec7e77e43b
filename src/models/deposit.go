package models

import (
	"crs/src/types"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SecurityDepositAuthorization is a hold on the client's payment method, not
// a charge. It lives outside the booking's paid-total arithmetic. A booking
// holds at most one open (pending or authorized) record at a time; asking for
// a different payment method while one is open attaches a fresh link to the
// existing record instead of creating a second row.
type SecurityDepositAuthorization struct {
	ID                uuid.UUID           `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID         uint                `gorm:"index" json:"booking_id"`
	Amount            decimal.Decimal     `gorm:"type:numeric" json:"amount"`
	Currency          string              `json:"currency,omitempty"`
	AuthorizationID   *string             `gorm:"index" json:"authorization_id,omitempty"`
	Status            types.DepositStatus `gorm:"default:pending" json:"status"`
	PaymentMethodType string              `json:"payment_method_type,omitempty"`
	PaymentLinkURL    string              `json:"payment_link_url,omitempty"`
	AuthorizedAt      *time.Time          `json:"authorized_at,omitempty"`
	ExpiresAt         *time.Time          `json:"expires_at,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}

func (d *SecurityDepositAuthorization) Open() bool {
	return d.Status == types.DEPOSIT_PENDING || d.Status == types.DEPOSIT_AUTHORIZED
}
