package services

import (
	"context"
	"errors"
	"time"

	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gorm-backed stores. Every status change is a conditional update whose
// WHERE clause carries the legal source states, so two concurrent deliveries
// of the same event cannot both see a row changed.

type GormBookingStore struct{ DB *gorm.DB }
type GormPaymentStore struct{ DB *gorm.DB }
type GormDepositStore struct{ DB *gorm.DB }
type GormAuditStore struct{ DB *gorm.DB }

func (s *GormBookingStore) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Client").
		Where("id = ?", id).
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormBookingStore) SetStatus(ctx context.Context, id uint, from []types.BookingStatus, to types.BookingStatus) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormBookingStore) RecalcAmountPaid(ctx context.Context, id uint) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Payment{}).
			Select("COALESCE(SUM(amount), 0) AS total").
			Where("booking_id = ? AND payment_link_status = ? AND paid_at IS NOT NULL AND payment_intent <> ?",
				id, types.PAYMENT_LINK_PAID, types.INTENT_SECURITY_DEPOSIT).
			Scan(&row).
			Error; err != nil {
			return err
		}
		return tx.
			Model(&models.Booking{}).
			Where("id = ?", id).
			Update("amount_paid", row.Total).
			Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (s *GormPaymentStore) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		First(&p).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormPaymentStore) FindByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("session_id = ? OR transaction_id = ?", externalID, externalID).
		First(&p).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormPaymentStore) Create(ctx context.Context, p *models.Payment) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *GormPaymentStore) Settle(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	updates := map[string]any{
		"payment_link_status": types.PAYMENT_LINK_PAID,
		"paid_at":             time.Now(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	res := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND payment_link_status IN ?", id, types.PaymentLinkSources(types.PAYMENT_LINK_PAID)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormPaymentStore) SetStatus(ctx context.Context, id uuid.UUID, from []types.PaymentLinkStatus, to types.PaymentLinkStatus) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND payment_link_status IN ?", id, from).
		Update("payment_link_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormPaymentStore) SetReceiptURL(ctx context.Context, id uuid.UUID, url string) error {
	return s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("receipt_url", url).
		Error
}

var balanceIntents = []types.PaymentIntent{types.INTENT_BALANCE_PAYMENT, types.INTENT_FINAL_PAYMENT}

func (s *GormPaymentStore) FindOpenBalance(ctx context.Context, bookingID uint) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ? AND payment_intent IN ? AND payment_link_status IN ?",
			bookingID, balanceIntents,
			[]types.PaymentLinkStatus{types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE, types.PAYMENT_LINK_PAID}).
		First(&p).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormPaymentStore) FindOpenByIntent(ctx context.Context, bookingID uint, intent types.PaymentIntent) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ? AND payment_intent = ? AND payment_link_status IN ?",
			bookingID, intent,
			[]types.PaymentLinkStatus{types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE}).
		First(&p).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormPaymentStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("payment_link_status IN ? AND payment_link_expires_at IS NOT NULL AND payment_link_expires_at < ?",
			[]types.PaymentLinkStatus{types.PAYMENT_LINK_PENDING, types.PAYMENT_LINK_ACTIVE}, now).
		Update("payment_link_status", types.PAYMENT_LINK_EXPIRED)
	return res.RowsAffected, res.Error
}

func (s *GormDepositStore) Get(ctx context.Context, id uuid.UUID) (*models.SecurityDepositAuthorization, error) {
	var d models.SecurityDepositAuthorization
	err := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("id = ?", id).
		First(&d).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormDepositStore) FindByAuthorizationID(ctx context.Context, authorizationID string) (*models.SecurityDepositAuthorization, error) {
	var d models.SecurityDepositAuthorization
	err := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("authorization_id = ?", authorizationID).
		First(&d).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormDepositStore) FindOpenByBooking(ctx context.Context, bookingID uint) (*models.SecurityDepositAuthorization, error) {
	var d models.SecurityDepositAuthorization
	err := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("booking_id = ? AND status IN ?", bookingID,
			[]types.DepositStatus{types.DEPOSIT_PENDING, types.DEPOSIT_AUTHORIZED}).
		First(&d).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormDepositStore) Create(ctx context.Context, d *models.SecurityDepositAuthorization) error {
	return s.DB.WithContext(ctx).Create(d).Error
}

func (s *GormDepositStore) Authorize(ctx context.Context, id uuid.UUID, authorizationID string) (bool, error) {
	updates := map[string]any{
		"status":        types.DEPOSIT_AUTHORIZED,
		"authorized_at": time.Now(),
	}
	if authorizationID != "" {
		updates["authorization_id"] = authorizationID
	}
	res := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("id = ? AND status = ?", id, types.DEPOSIT_PENDING).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormDepositStore) SetStatus(ctx context.Context, id uuid.UUID, from []types.DepositStatus, to types.DepositStatus) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormDepositStore) AttachLink(ctx context.Context, id uuid.UUID, method string, url string, externalID string) error {
	return s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_method_type": method,
			"payment_link_url":    url,
			"authorization_id":    externalID,
		}).
		Error
}

func (s *GormDepositStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.SecurityDepositAuthorization{}).
		Where("status IN ? AND expires_at IS NOT NULL AND expires_at < ?",
			[]types.DepositStatus{types.DEPOSIT_PENDING, types.DEPOSIT_AUTHORIZED}, now).
		Update("status", types.DEPOSIT_EXPIRED)
	return res.RowsAffected, res.Error
}

func (s *GormAuditStore) Append(ctx context.Context, entityType string, entityID string, action string, payload types.JSONB) error {
	return s.DB.WithContext(ctx).Create(&models.AuditLog{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    payload,
	}).Error
}
