package service

import (
	"context"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
)

type FeedbackService interface {
	ListFeedback(ctx context.Context, filter dto.FeedbackFilter) (*dto.FeedbackListResponse, error)
	CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListCustomers(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Summary(ctx context.Context, scale string) (*dto.FeedbackSummaryResponse, error)
}

type feedbackService struct {
	repo         repository.FeedbackRepository
	customerRepo repository.CustomerRepository
}

func NewFeedbackService(repo repository.FeedbackRepository, customerRepo repository.CustomerRepository) FeedbackService {
	return &feedbackService{repo: repo, customerRepo: customerRepo}
}

func (s *feedbackService) ListFeedback(ctx context.Context, filter dto.FeedbackFilter) (*dto.FeedbackListResponse, error) {
	if filter.Type == "All" {
		filter.Type = ""
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.FeedbackListResponse{Feedback: rows}, nil
}

func (s *feedbackService) CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	fb := &model.Feedback{
		Name:        req.Name,
		Phone:       req.Phone,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	// Track the submitter as a known customer when a phone is present.
	if req.Phone != "" {
		_ = s.customerRepo.Upsert(ctx, &model.Customer{
			Name:  req.Name,
			Phone: req.Phone,
		})
	}

	return &dto.FeedbackResponse{Feedback: *fb}, nil
}

func (s *feedbackService) ListCustomers(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Customers: customers}, nil
}

// Summary reports a satisfaction split. The per-scale base rate is a CSAT
// stand-in; recorded complaints in the current month pull it down one point
// each, clamped to [5, 98].
func (s *feedbackService) Summary(ctx context.Context, scale string) (*dto.FeedbackSummaryResponse, error) {
	base := 74
	switch scale {
	case "yearly":
		base = 82
	case "monthly":
		base = 78
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	complaints, err := s.repo.CountBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	positive := base - int(complaints)
	if positive > 98 {
		positive = 98
	}
	if positive < 5 {
		positive = 5
	}
	return &dto.FeedbackSummaryResponse{
		PositiveRate: positive,
		NegativeRate: 100 - positive,
	}, nil
}
