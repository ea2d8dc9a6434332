package repository

import (
	"context"
	"time"

	"lilass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	Update(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	// ListPendingRetries returns failed payments whose next retry window has
	// already opened.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) Update(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.PaymentStatusFailed, now).
		Order("next_retry_at ASC").Limit(limit).Find(&payments).Error
	return payments, err
}
