package services

import (
	"context"
	"fmt"
	"log"

	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HandleWebhookEvent applies one normalized gateway event. Re-delivery of an
// already-applied event returns nil without reapplying side effects; an event
// whose identifier resolves to nothing returns ErrPaymentNotFound so the
// endpoint can answer 400 instead of dropping it silently.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, ev *types.WebhookEvent) error {
	switch ev.Kind {
	case types.EventPaymentSucceeded:
		return s.applyPaymentSucceeded(ctx, ev)
	case types.EventPaymentFailed:
		return s.applyPaymentTerminal(ctx, ev, types.PAYMENT_LINK_CANCELLED, "payment_failed")
	case types.EventSessionExpired:
		return s.applyPaymentTerminal(ctx, ev, types.PAYMENT_LINK_EXPIRED, "payment_link_expired")
	case types.EventAuthorizationSucceeded:
		return s.applyAuthorizationSucceeded(ctx, ev)
	case types.EventAuthorizationExpired:
		return s.applyDepositTerminal(ctx, ev, types.DEPOSIT_EXPIRED, "deposit_expired")
	case types.EventCaptureSucceeded:
		return s.applyCaptureSucceeded(ctx, ev)
	default:
		log.Printf("[Webhook] acknowledging unhandled event type %q\n", ev.Type)
		return nil
	}
}

func (s *PaymentService) resolvePayment(ctx context.Context, ev *types.WebhookEvent) (*models.Payment, error) {
	for _, id := range []string{ev.SessionID, ev.TransactionID} {
		if id == "" {
			continue
		}
		p, err := s.payments.FindByExternalID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no payment matches [%s/%s]", ErrPaymentNotFound, ev.SessionID, ev.TransactionID)
}

func (s *PaymentService) resolveDeposit(ctx context.Context, ev *types.WebhookEvent) (*models.SecurityDepositAuthorization, error) {
	for _, id := range []string{ev.AuthorizationID, ev.SessionID} {
		if id == "" {
			continue
		}
		d, err := s.deposits.FindByAuthorizationID(ctx, id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: no deposit authorization matches [%s]", ErrPaymentNotFound, ev.AuthorizationID)
}

func (s *PaymentService) applyPaymentSucceeded(ctx context.Context, ev *types.WebhookEvent) error {
	p, err := s.resolvePayment(ctx, ev)
	if err != nil {
		return err
	}
	if p.PaymentLinkStatus == types.PAYMENT_LINK_PAID {
		log.Printf("[Webhook] payment %s already settled, skipping\n", p.ID)
		return nil
	}
	settled, err := s.payments.Settle(ctx, p.ID, ev.TransactionID)
	if err != nil {
		return err
	}
	if !settled {
		// A concurrent delivery won the conditional update.
		log.Printf("[Webhook] payment %s settled by another delivery\n", p.ID)
		return nil
	}
	s.auditLog(ctx, "payment", p.ID.String(), "payment_settled", types.JSONB{
		"booking_id":     p.BookingID,
		"payment_intent": p.PaymentIntent,
		"amount":         p.Amount.String(),
		"transaction_id": ev.TransactionID,
	})
	s.settleSideEffects(ctx, p)
	return nil
}

func (s *PaymentService) applyPaymentTerminal(ctx context.Context, ev *types.WebhookEvent, to types.PaymentLinkStatus, action string) error {
	p, err := s.resolvePayment(ctx, ev)
	if err != nil {
		return err
	}
	if !p.PaymentLinkStatus.CanTransition(to) {
		log.Printf("[Webhook] payment %s is %s, ignoring %s\n", p.ID, p.PaymentLinkStatus, ev.Type)
		return nil
	}
	changed, err := s.payments.SetStatus(ctx, p.ID, types.PaymentLinkSources(to), to)
	if err != nil {
		return err
	}
	if changed {
		s.auditLog(ctx, "payment", p.ID.String(), action, types.JSONB{"booking_id": p.BookingID})
	}
	return nil
}

func (s *PaymentService) applyAuthorizationSucceeded(ctx context.Context, ev *types.WebhookEvent) error {
	d, err := s.resolveDeposit(ctx, ev)
	if err != nil {
		return err
	}
	if d.Status == types.DEPOSIT_AUTHORIZED {
		log.Printf("[Webhook] deposit %s already authorized, skipping\n", d.ID)
		return nil
	}
	changed, err := s.deposits.Authorize(ctx, d.ID, ev.AuthorizationID)
	if err != nil {
		return err
	}
	if changed {
		s.auditLog(ctx, "security_deposit_authorization", d.ID.String(), "deposit_authorized", types.JSONB{
			"booking_id":       d.BookingID,
			"authorization_id": ev.AuthorizationID,
		})
	}
	return nil
}

func (s *PaymentService) applyDepositTerminal(ctx context.Context, ev *types.WebhookEvent, to types.DepositStatus, action string) error {
	d, err := s.resolveDeposit(ctx, ev)
	if err != nil {
		return err
	}
	if !d.Status.CanTransition(to) {
		log.Printf("[Webhook] deposit %s is %s, ignoring %s\n", d.ID, d.Status, ev.Type)
		return nil
	}
	changed, err := s.deposits.SetStatus(ctx, d.ID, types.DepositSources(to), to)
	if err != nil {
		return err
	}
	if changed {
		s.auditLog(ctx, "security_deposit_authorization", d.ID.String(), action, types.JSONB{"booking_id": d.BookingID})
	}
	return nil
}

// applyCaptureSucceeded first tries the deposit the capture belongs to. Some
// gateways raise the same event type when an ordinary payment settles, so an
// unmatched capture falls through to the payment path before giving up.
func (s *PaymentService) applyCaptureSucceeded(ctx context.Context, ev *types.WebhookEvent) error {
	d, err := s.resolveDeposit(ctx, ev)
	if err == nil {
		changed, err := s.deposits.SetStatus(ctx, d.ID, types.DepositSources(types.DEPOSIT_CAPTURED), types.DEPOSIT_CAPTURED)
		if err != nil {
			return err
		}
		if changed {
			s.auditLog(ctx, "security_deposit_authorization", d.ID.String(), "deposit_captured", types.JSONB{"booking_id": d.BookingID})
		}
		return nil
	}
	return s.applyPaymentSucceeded(ctx, ev)
}

// ConfirmBankTransfer marks a bank-transfer payment as paid on explicit staff
// action. Unlike the webhook path it is not idempotent: confirming a settled
// payment fails with ErrAlreadyConfirmed.
func (s *PaymentService) ConfirmBankTransfer(ctx context.Context, paymentID uuid.UUID, actor string) (string, error) {
	p, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrPaymentNotFound
	}
	if p.Settled() || p.PaymentLinkStatus == types.PAYMENT_LINK_PAID {
		return "", ErrAlreadyConfirmed
	}
	settled, err := s.payments.Settle(ctx, p.ID, "")
	if err != nil {
		return "", err
	}
	if !settled {
		return "", ErrAlreadyConfirmed
	}
	s.auditLog(ctx, "payment", p.ID.String(), "bank_transfer_confirmed", types.JSONB{
		"booking_id": p.BookingID,
		"amount":     p.Amount.String(),
		"actor":      actor,
	})
	receiptURL := s.settleSideEffects(ctx, p)
	return receiptURL, nil
}

// settleSideEffects runs everything that should follow a first-time settle:
// booking totals, status promotion, receipt, email, follow-up links. The
// settle itself is already committed, so every failure here is logged and
// audited instead of bubbling up.
func (s *PaymentService) settleSideEffects(ctx context.Context, p *models.Payment) (receiptURL string) {
	booking, err := s.bookings.Get(ctx, p.BookingID)
	if err != nil || booking == nil {
		log.Printf("[Payments] booking %d missing for settled payment %s: %v\n", p.BookingID, p.ID, err)
		return ""
	}
	if p.PaymentIntent.CountsTowardPaid() {
		if _, err := s.bookings.RecalcAmountPaid(ctx, booking.ID); err != nil {
			log.Printf("[Payments] failed to refresh paid total for booking %d: %s\n", booking.ID, err.Error())
		}
	}
	promoted, err := s.bookings.SetStatus(ctx, booking.ID, []types.BookingStatus{types.BOOKING_DRAFT}, types.BOOKING_CONFIRMED)
	if err != nil {
		log.Printf("[Payments] failed to promote booking %d: %s\n", booking.ID, err.Error())
	} else if promoted {
		s.auditLog(ctx, "booking", fmt.Sprint(booking.ID), "booking_confirmed", types.JSONB{"payment_id": p.ID.String()})
	}

	url, err := s.receipts.Generate(ctx, booking, p)
	if err != nil {
		log.Printf("[Payments] receipt generation failed for payment %s: %s\n", p.ID, err.Error())
		s.auditLog(ctx, "payment", p.ID.String(), "receipt_generation_failed", types.JSONB{"error": err.Error()})
	} else {
		receiptURL = url
		if err := s.payments.SetReceiptURL(ctx, p.ID, url); err != nil {
			log.Printf("[Payments] failed to store receipt url for payment %s: %s\n", p.ID, err.Error())
		}
		s.auditLog(ctx, "payment", p.ID.String(), "receipt_generation", types.JSONB{"receipt_url": url})
		if err := s.notifier.SendPaymentReceipt(ctx, booking, p, url); err != nil {
			log.Printf("[Payments] receipt email failed for payment %s: %s\n", p.ID, err.Error())
		}
	}

	if p.PaymentIntent.IsInitial() {
		if err := s.GenerateFollowupLinks(ctx, booking.ID); err != nil {
			log.Printf("[Payments] follow-up link generation failed for booking %d: %s\n", booking.ID, err.Error())
			s.auditLog(ctx, "booking", fmt.Sprint(booking.ID), "followup_links_failed", types.JSONB{"error": err.Error()})
		}
	}
	return receiptURL
}

// CreateInitialPaymentLink issues the up-front link for a draft booking. An
// existing open initial link is returned as-is so a double click in the
// back office does not mint a second session.
func (s *PaymentService) CreateInitialPaymentLink(ctx context.Context, bookingID uint) (*models.Payment, error) {
	var created *models.Payment
	err := s.locker.WithLock(ctx, bookingID, func() error {
		booking, err := s.bookings.Get(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		existing, err := s.payments.FindOpenByIntent(ctx, bookingID, types.INTENT_CLIENT_PAYMENT)
		if err != nil {
			return err
		}
		if existing != nil {
			created = existing
			return nil
		}
		amount := InitialAmount(booking)
		out, err := s.gateway.CreatePaymentLink(ctx, &types.CreatePaymentLinkInput{
			BookingID:     booking.ID,
			ReferenceCode: booking.ReferenceCode,
			Amount:        amount,
			Currency:      booking.Currency,
			Intent:        types.INTENT_CLIENT_PAYMENT,
			ExpiryHours:   s.cfg.PaymentLinkExpiryHours,
			Description:   fmt.Sprintf("Rental payment for booking %s", booking.ReferenceCode),
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		created = s.newLinkPayment(booking, types.INTENT_CLIENT_PAYMENT, amount, out)
		if err := s.payments.Create(ctx, created); err != nil {
			return err
		}
		s.auditLog(ctx, "payment", created.ID.String(), "payment_link_created", types.JSONB{
			"booking_id": booking.ID,
			"intent":     created.PaymentIntent,
			"amount":     amount.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *PaymentService) newLinkPayment(b *models.Booking, intent types.PaymentIntent, amount decimal.Decimal, out *types.PaymentLinkResult) *models.Payment {
	expires := out.ExpiresAt
	return &models.Payment{
		ID:                   uuid.New(),
		BookingID:            b.ID,
		PaymentIntent:        intent,
		Amount:               amount,
		TotalAmount:          amount,
		Currency:             b.Currency,
		SessionID:            &out.PaymentID,
		PaymentLinkStatus:    types.PAYMENT_LINK_PENDING,
		PaymentLinkURL:       out.RedirectURL,
		PaymentLinkExpiresAt: &expires,
	}
}

func (s *PaymentService) auditLog(ctx context.Context, entityType, entityID, action string, payload types.JSONB) {
	if err := s.audit.Append(ctx, entityType, entityID, action, payload); err != nil {
		log.Printf("[Audit] failed to append %s/%s %s: %s\n", entityType, entityID, action, err.Error())
	}
}
