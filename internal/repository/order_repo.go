package repository

import (
	"context"
	"time"

	"lilass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create persists the order and its items. When tx is non-nil the insert
	// joins the caller's transaction so stock deductions and the order commit
	// or roll back together.
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// InTx runs fn inside a database transaction. fn receives the transaction
	// handle to pass on to the ...Tx repository methods; any error rolls the
	// whole transaction back.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
