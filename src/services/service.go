package services

import (
	"context"
	"time"

	"crs/src/config"
	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentGateway creates hosted payment/authorization sessions with the
// external provider. Implementations perform exactly one external call per
// invocation and never write to the stores; callers persist the returned
// identifiers.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error)
	CreateDepositAuthorization(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error)
}

type BookingStore interface {
	Get(ctx context.Context, id uint) (*models.Booking, error)
	// SetStatus applies the transition only when the current status is in
	// `from`; reports whether a row changed.
	SetStatus(ctx context.Context, id uint, from []types.BookingStatus, to types.BookingStatus) (bool, error)
	// RecalcAmountPaid recomputes the derived paid total from settled
	// non-deposit payments and returns it.
	RecalcAmountPaid(ctx context.Context, id uint) (decimal.Decimal, error)
}

type PaymentStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	// FindByExternalID resolves a gateway session or transaction identifier
	// to the one Payment carrying it.
	FindByExternalID(ctx context.Context, externalID string) (*models.Payment, error)
	Create(ctx context.Context, p *models.Payment) error
	// Settle marks the payment paid with a single conditional update; a
	// false return means another delivery already settled it.
	Settle(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, from []types.PaymentLinkStatus, to types.PaymentLinkStatus) (bool, error)
	SetReceiptURL(ctx context.Context, id uuid.UUID, url string) error
	// FindOpenBalance returns a balance/final payment for the booking that is
	// pending, active or paid, or nil.
	FindOpenBalance(ctx context.Context, bookingID uint) (*models.Payment, error)
	// FindOpenByIntent returns an unsettled, unexpired link with the given
	// intent, or nil.
	FindOpenByIntent(ctx context.Context, bookingID uint, intent types.PaymentIntent) (*models.Payment, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type DepositStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SecurityDepositAuthorization, error)
	FindByAuthorizationID(ctx context.Context, authorizationID string) (*models.SecurityDepositAuthorization, error)
	// FindOpenByBooking returns the booking's pending/authorized record, or
	// nil.
	FindOpenByBooking(ctx context.Context, bookingID uint) (*models.SecurityDepositAuthorization, error)
	Create(ctx context.Context, d *models.SecurityDepositAuthorization) error
	// Authorize flips pending to authorized and records the gateway's
	// authorization identifier.
	Authorize(ctx context.Context, id uuid.UUID, authorizationID string) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, from []types.DepositStatus, to types.DepositStatus) (bool, error)
	// AttachLink swaps in a fresh hosted link (new payment method) on an
	// existing open authorization.
	AttachLink(ctx context.Context, id uuid.UUID, method string, url string, externalID string) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type AuditStore interface {
	Append(ctx context.Context, entityType string, entityID string, action string, payload types.JSONB) error
}

type ReceiptGenerator interface {
	Generate(ctx context.Context, b *models.Booking, p *models.Payment) (string, error)
}

type Notifier interface {
	SendPaymentReceipt(ctx context.Context, b *models.Booking, p *models.Payment, receiptURL string) error
}

// BookingLocker serializes the check-then-create sections per booking so
// concurrent triggers cannot mint duplicate outstanding links.
type BookingLocker interface {
	WithLock(ctx context.Context, bookingID uint, fn func() error) error
}

type PaymentService struct {
	cfg      config.AppSettings
	bookings BookingStore
	payments PaymentStore
	deposits DepositStore
	audit    AuditStore
	gateway  PaymentGateway
	receipts ReceiptGenerator
	notifier Notifier
	locker   BookingLocker
}

func NewPaymentService(
	cfg config.AppSettings,
	bookings BookingStore,
	payments PaymentStore,
	deposits DepositStore,
	audit AuditStore,
	gateway PaymentGateway,
	receipts ReceiptGenerator,
	notifier Notifier,
	locker BookingLocker,
) *PaymentService {
	return &PaymentService{
		cfg:      cfg,
		bookings: bookings,
		payments: payments,
		deposits: deposits,
		audit:    audit,
		gateway:  gateway,
		receipts: receipts,
		notifier: notifier,
		locker:   locker,
	}
}

var oneHundred = decimal.NewFromInt(100)

// InitialAmount is the part of the booking total due up front.
func InitialAmount(b *models.Booking) decimal.Decimal {
	pct := decimal.NewFromInt(int64(b.PaymentAmountPercent))
	return b.AmountTotal.Mul(pct).Div(oneHundred).Round(2)
}

// BalanceAmount is what remains after the initial split.
func BalanceAmount(b *models.Booking) decimal.Decimal {
	return b.AmountTotal.Sub(InitialAmount(b))
}
