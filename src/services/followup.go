package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
)

// GenerateFollowupLinks creates the balance-payment link and the security
// deposit authorization a booking still needs after its initial payment
// clears. Both checks run under a per-booking lock so concurrent triggers
// (webhook retry racing a staff click) cannot create duplicate outstanding
// links. Nothing is persisted when the gateway call fails.
func (s *PaymentService) GenerateFollowupLinks(ctx context.Context, bookingID uint) error {
	return s.locker.WithLock(ctx, bookingID, func() error {
		booking, err := s.bookings.Get(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.PaymentAmountPercent < 100 {
			if err := s.ensureBalanceLink(ctx, booking); err != nil {
				return err
			}
		}
		if booking.SecurityDepositAmount.IsPositive() {
			open, err := s.deposits.FindOpenByBooking(ctx, bookingID)
			if err != nil {
				return err
			}
			if open == nil {
				if _, err := s.createDepositAuthorization(ctx, booking, s.cfg.DefaultPaymentMethod); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *PaymentService) ensureBalanceLink(ctx context.Context, booking *models.Booking) error {
	existing, err := s.payments.FindOpenBalance(ctx, booking.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("[Followup] booking %d already has balance payment %s (%s), skipping\n", booking.ID, existing.ID, existing.PaymentLinkStatus)
		return nil
	}
	balance := BalanceAmount(booking)
	if !balance.IsPositive() {
		return nil
	}
	out, err := s.gateway.CreatePaymentLink(ctx, &types.CreatePaymentLinkInput{
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		Amount:        balance,
		Currency:      booking.Currency,
		Intent:        types.INTENT_BALANCE_PAYMENT,
		ExpiryHours:   s.cfg.PaymentLinkExpiryHours,
		Description:   fmt.Sprintf("Balance payment for booking %s", booking.ReferenceCode),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	pmt := s.newLinkPayment(booking, types.INTENT_BALANCE_PAYMENT, balance, out)
	if err := s.payments.Create(ctx, pmt); err != nil {
		return err
	}
	s.auditLog(ctx, "payment", pmt.ID.String(), "balance_link_created", types.JSONB{
		"booking_id": booking.ID,
		"amount":     balance.String(),
	})
	return nil
}

// DepositLink is what deposit-authorization requests hand back to the
// caller. ReusedExisting reports that an already-open authorization was
// matched instead of creating a new one.
type DepositLink struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	RedirectURL     string    `json:"url"`
	ReusedExisting  bool      `json:"reused_existing"`
}

// RequestDepositAuthorization asks for a security-deposit hold with the given
// payment method. While a pending/authorized record exists it is reused: the
// same method returns the stored link untouched, a different method gets a
// fresh gateway link attached to the same record.
func (s *PaymentService) RequestDepositAuthorization(ctx context.Context, bookingID uint, method string) (*DepositLink, error) {
	var result *DepositLink
	err := s.locker.WithLock(ctx, bookingID, func() error {
		booking, err := s.bookings.Get(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		open, err := s.deposits.FindOpenByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if open != nil {
			if open.PaymentMethodType == method && open.PaymentLinkURL != "" {
				result = &DepositLink{AuthorizationID: open.ID, RedirectURL: open.PaymentLinkURL, ReusedExisting: true}
				return nil
			}
			out, err := s.gateway.CreateDepositAuthorization(ctx, s.depositLinkInput(booking, method))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
			}
			if err := s.deposits.AttachLink(ctx, open.ID, method, out.RedirectURL, out.PaymentID); err != nil {
				return err
			}
			s.auditLog(ctx, "security_deposit_authorization", open.ID.String(), "deposit_link_reused", types.JSONB{
				"booking_id":          booking.ID,
				"payment_method_type": method,
			})
			result = &DepositLink{AuthorizationID: open.ID, RedirectURL: out.RedirectURL, ReusedExisting: true}
			return nil
		}
		created, err := s.createDepositAuthorization(ctx, booking, method)
		if err != nil {
			return err
		}
		result = &DepositLink{AuthorizationID: created.ID, RedirectURL: created.PaymentLinkURL}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PaymentService) depositLinkInput(booking *models.Booking, method string) *types.CreatePaymentLinkInput {
	return &types.CreatePaymentLinkInput{
		BookingID:         booking.ID,
		ReferenceCode:     booking.ReferenceCode,
		Amount:            booking.SecurityDepositAmount,
		Currency:          booking.Currency,
		Intent:            types.INTENT_SECURITY_DEPOSIT,
		PaymentMethodType: method,
		ExpiryHours:       s.cfg.DepositExpiryHours,
		Description:       fmt.Sprintf("Security deposit for booking %s", booking.ReferenceCode),
	}
}

func (s *PaymentService) createDepositAuthorization(ctx context.Context, booking *models.Booking, method string) (*models.SecurityDepositAuthorization, error) {
	out, err := s.gateway.CreateDepositAuthorization(ctx, s.depositLinkInput(booking, method))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	expires := out.ExpiresAt
	dep := &models.SecurityDepositAuthorization{
		ID:                uuid.New(),
		BookingID:         booking.ID,
		Amount:            booking.SecurityDepositAmount,
		Currency:          booking.Currency,
		AuthorizationID:   &out.PaymentID,
		Status:            types.DEPOSIT_PENDING,
		PaymentMethodType: method,
		PaymentLinkURL:    out.RedirectURL,
		ExpiresAt:         &expires,
	}
	if err := s.deposits.Create(ctx, dep); err != nil {
		return nil, err
	}
	s.auditLog(ctx, "security_deposit_authorization", dep.ID.String(), "deposit_authorization_created", types.JSONB{
		"booking_id":          booking.ID,
		"amount":              dep.Amount.String(),
		"payment_method_type": method,
	})
	return dep, nil
}

// ExpireStaleLinks is run by the scheduler. It pushes pending/active payment
// links and open deposit authorizations past their expiry into the expired
// state through the same conditional updates the webhook path uses.
func (s *PaymentService) ExpireStaleLinks(ctx context.Context) {
	now := time.Now()
	if n, err := s.payments.ExpireStale(ctx, now); err != nil {
		log.Printf("[Sweep] failed to expire stale payment links: %s\n", err.Error())
	} else if n > 0 {
		log.Printf("[Sweep] expired %d stale payment links\n", n)
		s.auditLog(ctx, "payment", "sweep", "payment_links_expired", types.JSONB{"count": n})
	}
	if n, err := s.deposits.ExpireStale(ctx, now); err != nil {
		log.Printf("[Sweep] failed to expire stale deposit authorizations: %s\n", err.Error())
	} else if n > 0 {
		log.Printf("[Sweep] expired %d stale deposit authorizations\n", n)
		s.auditLog(ctx, "security_deposit_authorization", "sweep", "deposit_authorizations_expired", types.JSONB{"count": n})
	}
}
