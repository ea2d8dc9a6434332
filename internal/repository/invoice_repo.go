package repository

import (
	"context"
	"time"

	"lilass/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Invoice, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC, time ASC").Find(&invoices).Error
	return invoices, err
}
