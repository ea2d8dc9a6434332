package repository

import (
	"context"

	"lilass/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.StockItem, error)
	ListAll(ctx context.Context) ([]model.StockItem, error)
	// ListLow returns items at or below their reorder level, or at or below
	// the explicit threshold when one is given.
	ListLow(ctx context.Context, threshold *decimal.Decimal) ([]model.StockItem, error)
	Adjust(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*model.StockItem, error)
	SetReorderLevel(ctx context.Context, id uuid.UUID, level decimal.Decimal) (*model.StockItem, error)

	// DecrementTx conditionally subtracts amount from an ingredient inside an
	// open transaction. Returns ErrConditionalUpdate when on-hand quantity is
	// below amount.
	DecrementTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *stockRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *stockRepo) ListAll(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) ListLow(ctx context.Context, threshold *decimal.Decimal) ([]model.StockItem, error) {
	q := r.db.WithContext(ctx).Where("active = true")
	if threshold != nil {
		q = q.Where("quantity <= ?", *threshold)
	} else {
		q = q.Where("quantity <= reorder_level")
	}
	var items []model.StockItem
	err := q.Order("quantity ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) Adjust(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StockItem{}).
			Where("id = ? AND quantity + ? >= 0", id, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish missing row from a floor violation.
			var exists int64
			if err := tx.Model(&model.StockItem{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrConditionalUpdate
		}
		return tx.First(&item, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) SetReorderLevel(ctx context.Context, id uuid.UUID, level decimal.Decimal) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StockItem{}).Where("id = ?", id).Update("reorder_level", level)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&item, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) DecrementTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	res := tx.Model(&model.StockItem{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionalUpdate
	}
	return nil
}

