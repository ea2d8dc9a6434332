package repository

import (
	"context"
	"time"

	"lilass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CostRepository interface {
	Create(ctx context.Context, entry *model.CostEntry) error
	ListBetween(ctx context.Context, section string, start, end time.Time) ([]model.CostEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type costRepo struct{ db *gorm.DB }

func NewCostRepository(db *gorm.DB) CostRepository { return &costRepo{db: db} }

func (r *costRepo) Create(ctx context.Context, entry *model.CostEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *costRepo) ListBetween(ctx context.Context, section string, start, end time.Time) ([]model.CostEntry, error) {
	q := r.db.WithContext(ctx).Where("date >= ? AND date < ?", start, end)
	if section != "" {
		q = q.Where("section = ?", section)
	}
	var entries []model.CostEntry
	err := q.Order("date ASC").Find(&entries).Error
	return entries, err
}

func (r *costRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.CostEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
