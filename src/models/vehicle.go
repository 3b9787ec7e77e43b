package models

import (
	"crs/src/types"

	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `json:"name,omitempty"`
	PlateNo   string          `gorm:"uniqueIndex" json:"plate_no,omitempty"`
	DailyRate decimal.Decimal `gorm:"type:numeric" json:"daily_rate"`
	Currency  string          `json:"currency,omitempty"`

	Bookings []*Booking `gorm:"foreignKey:vehicle_id" json:"bookings,omitempty"`

	types.Timestamps
}
