package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBAny struct {
	Inner any
}

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBAny) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a.Inner)
	return string(valueString), err
}
func (a *JSONBAny) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	var inner any
	if err := json.Unmarshal(b, &inner); err != nil {
		return err
	}
	a.Inner = inner
	return nil
}

type BookingStatus string

const (
	BOOKING_DRAFT     BookingStatus = "draft"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

// PaymentIntent is the purpose a payment link was issued for. Security
// deposits are authorization holds, not charges, and never count toward a
// booking's paid total.
type PaymentIntent string

const (
	INTENT_CLIENT_PAYMENT   PaymentIntent = "client_payment"
	INTENT_DOWN_PAYMENT     PaymentIntent = "down_payment"
	INTENT_BALANCE_PAYMENT  PaymentIntent = "balance_payment"
	INTENT_FINAL_PAYMENT    PaymentIntent = "final_payment"
	INTENT_SECURITY_DEPOSIT PaymentIntent = "security_deposit"
)

// IsInitial reports whether settling a payment with this intent should kick
// off the follow-up balance/deposit links for its booking.
func (i PaymentIntent) IsInitial() bool {
	return i == INTENT_CLIENT_PAYMENT || i == INTENT_DOWN_PAYMENT
}

// CountsTowardPaid reports whether a settled payment with this intent
// contributes to Booking.AmountPaid.
func (i PaymentIntent) CountsTowardPaid() bool {
	return i != INTENT_SECURITY_DEPOSIT
}

type PaymentLinkStatus string

const (
	PAYMENT_LINK_PENDING   PaymentLinkStatus = "pending"
	PAYMENT_LINK_ACTIVE    PaymentLinkStatus = "active"
	PAYMENT_LINK_PAID      PaymentLinkStatus = "paid"
	PAYMENT_LINK_CANCELLED PaymentLinkStatus = "cancelled"
	PAYMENT_LINK_EXPIRED   PaymentLinkStatus = "expired"
)

type DepositStatus string

const (
	DEPOSIT_PENDING    DepositStatus = "pending"
	DEPOSIT_AUTHORIZED DepositStatus = "authorized"
	DEPOSIT_RELEASED   DepositStatus = "released"
	DEPOSIT_CAPTURED   DepositStatus = "captured"
	DEPOSIT_EXPIRED    DepositStatus = "expired"
)

type CreateBookingRequestBody struct {
	ClientName            string `json:"client_name" binding:"required"`
	ClientEmail           string `json:"client_email" binding:"required,email"`
	ClientPhone           string `json:"client_phone,omitempty"`
	VehicleID             uint   `json:"vehicle_id" binding:"required"`
	Currency              string `json:"currency" binding:"required,currencycode"`
	AmountTotal           string `json:"amount_total" binding:"required"`
	PaymentAmountPercent  uint   `json:"payment_amount_percent" binding:"required,min=1,max=100"`
	SecurityDepositAmount string `json:"security_deposit_amount,omitempty"`
	PickupAt              string `json:"pickup_at" binding:"required,rentaldate"`
	ReturnAt              string `json:"return_at" binding:"required,rentaldate,gtdate=PickupAt"`
}

type CreateVehicleRequestBody struct {
	Name      string `json:"name" binding:"required"`
	PlateNo   string `json:"plate_no" binding:"required"`
	DailyRate string `json:"daily_rate" binding:"required"`
	Currency  string `json:"currency" binding:"required,currencycode"`
}

type DepositRequestBody struct {
	PaymentMethodType string `json:"payment_method_type" binding:"required"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Handler func(payload string)
