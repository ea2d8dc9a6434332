package repository

import (
	"context"

	"lilass/internal/dto"
	"lilass/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	// Upsert inserts the customer or refreshes an existing row matched by
	// phone, so repeat feedback keeps a single customer record.
	Upsert(ctx context.Context, c *model.Customer) error
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Upsert(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "gender", "age_group", "email"}),
	}).Create(c).Error
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Query != "" {
		needle := "%" + filter.Query + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", needle, needle, needle)
	}
	var customers []model.Customer
	err := q.Order("created_at DESC").Find(&customers).Error
	return customers, err
}
