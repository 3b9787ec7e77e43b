package models

import (
	"crs/src/types"
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a rental agreement between a client and the office.
// AmountPaid is derived state: the sum of settled non-deposit payments,
// refreshed by a database trigger and recomputed by the store after every
// settle. It is never written directly by handlers.
type Booking struct {
	ID                    uint                `gorm:"primarykey" json:"id"`
	ReferenceCode         string              `gorm:"uniqueIndex" json:"reference_code"`
	ClientID              uint                `json:"client_id,omitempty"`
	VehicleID             uint                `json:"vehicle_id,omitempty"`
	Currency              string              `json:"currency,omitempty"`
	AmountTotal           decimal.Decimal     `gorm:"type:numeric" json:"amount_total"`
	AmountPaid            decimal.Decimal     `gorm:"type:numeric;default:0" json:"amount_paid"`
	PaymentAmountPercent  uint                `gorm:"default:100" json:"payment_amount_percent"`
	SecurityDepositAmount decimal.Decimal     `gorm:"type:numeric;default:0" json:"security_deposit_amount"`
	Status                types.BookingStatus `gorm:"default:draft" json:"status"`
	PickupAt              time.Time           `json:"pickup_at,omitempty"`
	ReturnAt              time.Time           `json:"return_at,omitempty"`

	Client   *Client    `gorm:"foreignKey:client_id" json:"client,omitempty"`
	Vehicle  *Vehicle   `gorm:"foreignKey:vehicle_id" json:"vehicle,omitempty"`
	Payments []*Payment `gorm:"foreignKey:booking_id" json:"payments,omitempty"`

	types.Timestamps
}
