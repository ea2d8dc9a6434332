package repository

import (
	"context"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Feedback, error)
	List(ctx context.Context, filter dto.FeedbackFilter) ([]model.Feedback, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type feedbackRepo struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository { return &feedbackRepo{db: db} }

func (r *feedbackRepo) Create(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Feedback, error) {
	var fb model.Feedback
	err := r.db.WithContext(ctx).First(&fb, "id = ?", id).Error
	return &fb, err
}

func (r *feedbackRepo) List(ctx context.Context, filter dto.FeedbackFilter) ([]model.Feedback, error) {
	q := r.db.WithContext(ctx).Model(&model.Feedback{})
	if filter.Start != "" {
		q = q.Where("created_at >= ?", filter.Start)
	}
	if filter.End != "" {
		q = q.Where("created_at < ?", filter.End)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Query != "" {
		needle := "%" + filter.Query + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR description ILIKE ?", needle, needle, needle)
	}
	var items []model.Feedback
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *feedbackRepo) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("created_at >= ? AND created_at < ?", start, end).Count(&n).Error
	return n, err
}
