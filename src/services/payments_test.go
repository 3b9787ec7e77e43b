package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"crs/src/config"
	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type fakeBookingStore struct {
	bookings map[uint]*models.Booking
	payments *fakePaymentStore
}

func (f *fakeBookingStore) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingStore) SetStatus(ctx context.Context, id uint, from []types.BookingStatus, to types.BookingStatus) (bool, error) {
	b := f.bookings[id]
	if b == nil {
		return false, nil
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) RecalcAmountPaid(ctx context.Context, id uint) (decimal.Decimal, error) {
	b := f.bookings[id]
	if b == nil {
		return decimal.Zero, errors.New("booking not found")
	}
	total := decimal.Zero
	for _, p := range f.payments.items {
		if p.BookingID == id && p.Settled() && p.PaymentIntent.CountsTowardPaid() {
			total = total.Add(p.Amount)
		}
	}
	b.AmountPaid = total
	return total, nil
}

type fakePaymentStore struct {
	items []*models.Payment
}

func (f *fakePaymentStore) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) FindByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	for _, p := range f.items {
		if p.SessionID != nil && *p.SessionID == externalID {
			return p, nil
		}
		if p.TransactionID != nil && *p.TransactionID == externalID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error {
	f.items = append(f.items, p)
	return nil
}

func (f *fakePaymentStore) Settle(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	for _, p := range f.items {
		if p.ID != id {
			continue
		}
		if !p.PaymentLinkStatus.CanTransition(types.PAYMENT_LINK_PAID) {
			return false, nil
		}
		now := time.Now()
		p.PaymentLinkStatus = types.PAYMENT_LINK_PAID
		p.PaidAt = &now
		if transactionID != "" {
			p.TransactionID = &transactionID
		}
		return true, nil
	}
	return false, nil
}

func (f *fakePaymentStore) SetStatus(ctx context.Context, id uuid.UUID, from []types.PaymentLinkStatus, to types.PaymentLinkStatus) (bool, error) {
	for _, p := range f.items {
		if p.ID != id {
			continue
		}
		for _, s := range from {
			if p.PaymentLinkStatus == s {
				p.PaymentLinkStatus = to
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (f *fakePaymentStore) SetReceiptURL(ctx context.Context, id uuid.UUID, url string) error {
	for _, p := range f.items {
		if p.ID == id {
			p.ReceiptURL = &url
			return nil
		}
	}
	return errors.New("payment not found")
}

func (f *fakePaymentStore) FindOpenBalance(ctx context.Context, bookingID uint) (*models.Payment, error) {
	for _, p := range f.items {
		if p.BookingID != bookingID {
			continue
		}
		if p.PaymentIntent != types.INTENT_BALANCE_PAYMENT && p.PaymentIntent != types.INTENT_FINAL_PAYMENT {
			continue
		}
		switch p.PaymentLinkStatus {
		case types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE, types.PAYMENT_LINK_PAID:
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) FindOpenByIntent(ctx context.Context, bookingID uint, intent types.PaymentIntent) (*models.Payment, error) {
	for _, p := range f.items {
		if p.BookingID != bookingID || p.PaymentIntent != intent {
			continue
		}
		switch p.PaymentLinkStatus {
		case types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE:
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range f.items {
		if p.PaymentLinkExpiresAt == nil || !p.PaymentLinkExpiresAt.Before(now) {
			continue
		}
		switch p.PaymentLinkStatus {
		case types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE:
			p.PaymentLinkStatus = types.PAYMENT_LINK_EXPIRED
			n++
		}
	}
	return n, nil
}

type fakeDepositStore struct {
	items []*models.SecurityDepositAuthorization
}

func (f *fakeDepositStore) Get(ctx context.Context, id uuid.UUID) (*models.SecurityDepositAuthorization, error) {
	for _, d := range f.items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDepositStore) FindByAuthorizationID(ctx context.Context, authorizationID string) (*models.SecurityDepositAuthorization, error) {
	for _, d := range f.items {
		if d.AuthorizationID != nil && *d.AuthorizationID == authorizationID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDepositStore) FindOpenByBooking(ctx context.Context, bookingID uint) (*models.SecurityDepositAuthorization, error) {
	for _, d := range f.items {
		if d.BookingID == bookingID && d.Open() {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDepositStore) Create(ctx context.Context, d *models.SecurityDepositAuthorization) error {
	f.items = append(f.items, d)
	return nil
}

func (f *fakeDepositStore) Authorize(ctx context.Context, id uuid.UUID, authorizationID string) (bool, error) {
	for _, d := range f.items {
		if d.ID != id {
			continue
		}
		if d.Status != types.DEPOSIT_PENDING {
			return false, nil
		}
		now := time.Now()
		d.Status = types.DEPOSIT_AUTHORIZED
		d.AuthorizationID = &authorizationID
		d.AuthorizedAt = &now
		return true, nil
	}
	return false, nil
}

func (f *fakeDepositStore) SetStatus(ctx context.Context, id uuid.UUID, from []types.DepositStatus, to types.DepositStatus) (bool, error) {
	for _, d := range f.items {
		if d.ID != id {
			continue
		}
		for _, s := range from {
			if d.Status == s {
				d.Status = to
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (f *fakeDepositStore) AttachLink(ctx context.Context, id uuid.UUID, method string, url string, externalID string) error {
	for _, d := range f.items {
		if d.ID == id {
			d.PaymentMethodType = method
			d.PaymentLinkURL = url
			d.AuthorizationID = &externalID
			return nil
		}
	}
	return errors.New("deposit not found")
}

func (f *fakeDepositStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, d := range f.items {
		if d.ExpiresAt == nil || !d.ExpiresAt.Before(now) {
			continue
		}
		if d.Open() {
			d.Status = types.DEPOSIT_EXPIRED
			n++
		}
	}
	return n, nil
}

type auditEntry struct {
	EntityType string
	EntityID   string
	Action     string
}

type fakeAuditStore struct {
	entries []auditEntry
}

func (f *fakeAuditStore) Append(ctx context.Context, entityType string, entityID string, action string, payload types.JSONB) error {
	f.entries = append(f.entries, auditEntry{entityType, entityID, action})
	return nil
}

func (f *fakeAuditStore) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeGateway struct {
	calls int
	fail  bool
}

func (f *fakeGateway) create(in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("gateway down")
	}
	expires := time.Now().Add(time.Duration(in.ExpiryHours) * time.Hour)
	id := fmt.Sprintf("cs_test_%d", f.calls)
	return &types.PaymentLinkResult{
		PaymentID:   id,
		RedirectURL: "https://pay.example.com/" + id,
		ExpiresAt:   expires,
	}, nil
}

func (f *fakeGateway) CreatePaymentLink(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error) {
	return f.create(in)
}

func (f *fakeGateway) CreateDepositAuthorization(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error) {
	return f.create(in)
}

type fakeReceipts struct {
	calls int
	fail  bool
}

func (f *fakeReceipts) Generate(ctx context.Context, b *models.Booking, p *models.Payment) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("queue unreachable")
	}
	return fmt.Sprintf("https://assets.example.com/receipts/%s.pdf", p.ID), nil
}

type fakeNotifier struct {
	calls int
}

func (f *fakeNotifier) SendPaymentReceipt(ctx context.Context, b *models.Booking, p *models.Payment, receiptURL string) error {
	f.calls++
	return nil
}

type noopLocker struct{}

func (noopLocker) WithLock(ctx context.Context, bookingID uint, fn func() error) error {
	return fn()
}

type PaymentServiceSuite struct {
	suite.Suite
	bookings *fakeBookingStore
	payments *fakePaymentStore
	deposits *fakeDepositStore
	audit    *fakeAuditStore
	gateway  *fakeGateway
	receipts *fakeReceipts
	notifier *fakeNotifier
	svc      *PaymentService
}

func (s *PaymentServiceSuite) SetupTest() {
	s.payments = &fakePaymentStore{}
	s.bookings = &fakeBookingStore{bookings: map[uint]*models.Booking{}, payments: s.payments}
	s.deposits = &fakeDepositStore{}
	s.audit = &fakeAuditStore{}
	s.gateway = &fakeGateway{}
	s.receipts = &fakeReceipts{}
	s.notifier = &fakeNotifier{}
	cfg := config.AppSettings{
		PaymentLinkExpiryHours: 24,
		DepositExpiryHours:     24,
		DefaultPaymentMethod:   "card",
		MailFromName:           "Rental Office",
	}
	s.svc = NewPaymentService(cfg, s.bookings, s.payments, s.deposits, s.audit, s.gateway, s.receipts, s.notifier, noopLocker{})
}

func (s *PaymentServiceSuite) newBooking(id uint, pct uint, deposit string) *models.Booking {
	dep, _ := decimal.NewFromString(deposit)
	b := &models.Booking{
		ID:                    id,
		ReferenceCode:         fmt.Sprintf("jane-doe-%d", id),
		Currency:              "EUR",
		AmountTotal:           decimal.NewFromInt(1000),
		PaymentAmountPercent:  pct,
		SecurityDepositAmount: dep,
		Status:                types.BOOKING_DRAFT,
		Client:                &models.Client{Name: "Jane Doe", Email: "jane@example.com"},
	}
	s.bookings.bookings[id] = b
	return b
}

func (s *PaymentServiceSuite) seedInitialLink(b *models.Booking, sessionID string) *models.Payment {
	p := &models.Payment{
		ID:                uuid.New(),
		BookingID:         b.ID,
		PaymentIntent:     types.INTENT_CLIENT_PAYMENT,
		Amount:            InitialAmount(b),
		Currency:          b.Currency,
		SessionID:         &sessionID,
		PaymentLinkStatus: types.PAYMENT_LINK_PENDING,
	}
	s.payments.items = append(s.payments.items, p)
	return p
}

func (s *PaymentServiceSuite) TestPaymentSucceededSettlesAndFollowsUp() {
	b := s.newBooking(1, 50, "200")
	p := s.seedInitialLink(b, "cs_initial")

	err := s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:          types.EventPaymentSucceeded,
		SessionID:     "cs_initial",
		TransactionID: "pi_123",
	})
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), types.PAYMENT_LINK_PAID, p.PaymentLinkStatus)
	assert.NotNil(s.T(), p.PaidAt)
	assert.Equal(s.T(), "pi_123", *p.TransactionID)

	assert.Equal(s.T(), types.BOOKING_CONFIRMED, b.Status)
	assert.True(s.T(), b.AmountPaid.Equal(decimal.NewFromInt(500)))

	assert.Equal(s.T(), 1, s.receipts.calls)
	assert.Equal(s.T(), 1, s.notifier.calls)
	assert.NotNil(s.T(), p.ReceiptURL)

	// Half-paid booking with a deposit amount gets both follow-ups.
	balance, _ := s.payments.FindOpenBalance(context.Background(), b.ID)
	assert.NotNil(s.T(), balance)
	assert.True(s.T(), balance.Amount.Equal(decimal.NewFromInt(500)))
	dep, _ := s.deposits.FindOpenByBooking(context.Background(), b.ID)
	assert.NotNil(s.T(), dep)
	assert.True(s.T(), dep.Amount.Equal(decimal.NewFromInt(200)))

	assert.Contains(s.T(), s.audit.actions(), "payment_settled")
	assert.Contains(s.T(), s.audit.actions(), "booking_confirmed")
}

func (s *PaymentServiceSuite) TestPaymentSucceededRedeliveryIsIdempotent() {
	b := s.newBooking(1, 50, "200")
	s.seedInitialLink(b, "cs_initial")

	ev := &types.WebhookEvent{
		Kind:          types.EventPaymentSucceeded,
		SessionID:     "cs_initial",
		TransactionID: "pi_123",
	}
	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), ev))
	receiptsAfterFirst := s.receipts.calls
	gatewayAfterFirst := s.gateway.calls

	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), ev))

	assert.Equal(s.T(), receiptsAfterFirst, s.receipts.calls)
	assert.Equal(s.T(), gatewayAfterFirst, s.gateway.calls)
	assert.Len(s.T(), s.payments.items, 2) // initial + balance, no duplicates
	assert.Len(s.T(), s.deposits.items, 1)
}

func (s *PaymentServiceSuite) TestPaymentSucceededUnknownSession() {
	s.newBooking(1, 100, "0")

	err := s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:      types.EventPaymentSucceeded,
		SessionID: "cs_nobody",
	})
	assert.ErrorIs(s.T(), err, ErrPaymentNotFound)
}

func (s *PaymentServiceSuite) TestPaymentFailedCancelsPendingLink() {
	b := s.newBooking(1, 100, "0")
	p := s.seedInitialLink(b, "cs_initial")

	err := s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:      types.EventPaymentFailed,
		SessionID: "cs_initial",
	})
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), types.PAYMENT_LINK_CANCELLED, p.PaymentLinkStatus)
}

func (s *PaymentServiceSuite) TestPaymentFailedAfterSettleIsIgnored() {
	b := s.newBooking(1, 100, "0")
	p := s.seedInitialLink(b, "cs_initial")

	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:          types.EventPaymentSucceeded,
		SessionID:     "cs_initial",
		TransactionID: "pi_123",
	}))
	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:      types.EventPaymentFailed,
		SessionID: "cs_initial",
	}))
	assert.Equal(s.T(), types.PAYMENT_LINK_PAID, p.PaymentLinkStatus)
}

func (s *PaymentServiceSuite) TestDepositLifecycleStaysOutOfPaidTotal() {
	b := s.newBooking(1, 100, "300")

	link, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)
	assert.False(s.T(), link.ReusedExisting)

	dep, _ := s.deposits.Get(context.Background(), link.AuthorizationID)
	assert.NotNil(s.T(), dep)
	sessionID := *dep.AuthorizationID

	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:            types.EventAuthorizationSucceeded,
		AuthorizationID: sessionID,
	}))
	assert.Equal(s.T(), types.DEPOSIT_AUTHORIZED, dep.Status)
	assert.NotNil(s.T(), dep.AuthorizedAt)

	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:            types.EventCaptureSucceeded,
		AuthorizationID: *dep.AuthorizationID,
	}))
	assert.Equal(s.T(), types.DEPOSIT_CAPTURED, dep.Status)

	assert.True(s.T(), b.AmountPaid.IsZero())
}

func (s *PaymentServiceSuite) TestAuthorizationExpired() {
	b := s.newBooking(1, 100, "300")
	link, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)

	dep, _ := s.deposits.Get(context.Background(), link.AuthorizationID)
	assert.Nil(s.T(), s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:            types.EventAuthorizationExpired,
		AuthorizationID: *dep.AuthorizationID,
	}))
	assert.Equal(s.T(), types.DEPOSIT_EXPIRED, dep.Status)

	// A new request after expiry creates a fresh authorization.
	again, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)
	assert.False(s.T(), again.ReusedExisting)
	assert.NotEqual(s.T(), link.AuthorizationID, again.AuthorizationID)
}

func (s *PaymentServiceSuite) TestDepositLinkReuse() {
	b := s.newBooking(1, 100, "300")

	first, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)
	callsAfterFirst := s.gateway.calls

	same, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)
	assert.True(s.T(), same.ReusedExisting)
	assert.Equal(s.T(), first.AuthorizationID, same.AuthorizationID)
	assert.Equal(s.T(), first.RedirectURL, same.RedirectURL)
	assert.Equal(s.T(), callsAfterFirst, s.gateway.calls)

	// Different method keeps the record but gets a fresh link.
	other, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "sepa_debit")
	assert.Nil(s.T(), err)
	assert.True(s.T(), other.ReusedExisting)
	assert.Equal(s.T(), first.AuthorizationID, other.AuthorizationID)
	assert.NotEqual(s.T(), first.RedirectURL, other.RedirectURL)
	assert.Equal(s.T(), callsAfterFirst+1, s.gateway.calls)
	assert.Equal(s.T(), 1, len(s.deposits.items))
}

func (s *PaymentServiceSuite) TestConfirmBankTransfer() {
	b := s.newBooking(1, 100, "0")
	p := s.seedInitialLink(b, "cs_initial")

	receiptURL, err := s.svc.ConfirmBankTransfer(context.Background(), p.ID, "staff@example.com")
	assert.Nil(s.T(), err)
	assert.NotEmpty(s.T(), receiptURL)
	assert.Equal(s.T(), types.PAYMENT_LINK_PAID, p.PaymentLinkStatus)
	assert.Equal(s.T(), types.BOOKING_CONFIRMED, b.Status)
	assert.Contains(s.T(), s.audit.actions(), "bank_transfer_confirmed")

	_, err = s.svc.ConfirmBankTransfer(context.Background(), p.ID, "staff@example.com")
	assert.ErrorIs(s.T(), err, ErrAlreadyConfirmed)
	assert.Equal(s.T(), 1, s.receipts.calls)
}

func (s *PaymentServiceSuite) TestConfirmBankTransferUnknownPayment() {
	_, err := s.svc.ConfirmBankTransfer(context.Background(), uuid.New(), "staff@example.com")
	assert.ErrorIs(s.T(), err, ErrPaymentNotFound)
}

func (s *PaymentServiceSuite) TestCreateInitialPaymentLinkReusesOpenLink() {
	b := s.newBooking(1, 40, "0")

	first, err := s.svc.CreateInitialPaymentLink(context.Background(), b.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), types.INTENT_CLIENT_PAYMENT, first.PaymentIntent)
	assert.True(s.T(), first.Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(s.T(), 1, s.gateway.calls)

	second, err := s.svc.CreateInitialPaymentLink(context.Background(), b.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), first.ID, second.ID)
	assert.Equal(s.T(), 1, s.gateway.calls)
}

func (s *PaymentServiceSuite) TestCreateInitialPaymentLinkGatewayFailure() {
	b := s.newBooking(1, 100, "0")
	s.gateway.fail = true

	_, err := s.svc.CreateInitialPaymentLink(context.Background(), b.ID)
	assert.ErrorIs(s.T(), err, ErrGatewayUnavailable)
	assert.Empty(s.T(), s.payments.items)
	assert.Empty(s.T(), s.audit.entries)
}

func (s *PaymentServiceSuite) TestCreateInitialPaymentLinkUnknownBooking() {
	_, err := s.svc.CreateInitialPaymentLink(context.Background(), 42)
	assert.ErrorIs(s.T(), err, ErrBookingNotFound)
}

func (s *PaymentServiceSuite) TestFollowupSkipsFullyPaidNoDeposit() {
	b := s.newBooking(1, 100, "0")

	assert.Nil(s.T(), s.svc.GenerateFollowupLinks(context.Background(), b.ID))
	assert.Equal(s.T(), 0, s.gateway.calls)
	assert.Empty(s.T(), s.payments.items)
	assert.Empty(s.T(), s.deposits.items)
}

func (s *PaymentServiceSuite) TestReceiptFailureDoesNotUndoSettle() {
	b := s.newBooking(1, 100, "0")
	p := s.seedInitialLink(b, "cs_initial")
	s.receipts.fail = true

	err := s.svc.HandleWebhookEvent(context.Background(), &types.WebhookEvent{
		Kind:          types.EventPaymentSucceeded,
		SessionID:     "cs_initial",
		TransactionID: "pi_123",
	})
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), types.PAYMENT_LINK_PAID, p.PaymentLinkStatus)
	assert.Equal(s.T(), 0, s.notifier.calls)
	assert.Contains(s.T(), s.audit.actions(), "receipt_generation_failed")
}

func (s *PaymentServiceSuite) TestExpireStaleLinks() {
	b := s.newBooking(1, 100, "300")
	p := s.seedInitialLink(b, "cs_initial")
	past := time.Now().Add(-time.Hour)
	p.PaymentLinkExpiresAt = &past

	link, err := s.svc.RequestDepositAuthorization(context.Background(), b.ID, "card")
	assert.Nil(s.T(), err)
	dep, _ := s.deposits.Get(context.Background(), link.AuthorizationID)
	dep.ExpiresAt = &past

	s.svc.ExpireStaleLinks(context.Background())

	assert.Equal(s.T(), types.PAYMENT_LINK_EXPIRED, p.PaymentLinkStatus)
	assert.Equal(s.T(), types.DEPOSIT_EXPIRED, dep.Status)
	assert.Contains(s.T(), s.audit.actions(), "payment_links_expired")
	assert.Contains(s.T(), s.audit.actions(), "deposit_authorizations_expired")
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func TestAmountSplit(t *testing.T) {
	b := &models.Booking{
		AmountTotal:          decimal.RequireFromString("999.99"),
		PaymentAmountPercent: 30,
	}
	assert.Equal(t, "300.00", InitialAmount(b).StringFixed(2))
	assert.Equal(t, "699.99", BalanceAmount(b).StringFixed(2))

	full := &models.Booking{
		AmountTotal:          decimal.NewFromInt(500),
		PaymentAmountPercent: 100,
	}
	assert.True(t, BalanceAmount(full).IsZero())
}
