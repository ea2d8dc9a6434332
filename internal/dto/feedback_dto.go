package dto

import "lilass/internal/model"

// ─── Filter ──────────────────────────────────────────────────────────────────

// FeedbackFilter is bound from the query string of GET /api/cs/feedback.
type FeedbackFilter struct {
	Start string `form:"start"` // RFC 3339 or YYYY-MM-DD
	End   string `form:"end"`
	Type  string `form:"type"` // All | Quality | Service | Delivery | Price | Other
	Query string `form:"q"`
}

type CustomerFilter struct {
	Query string `form:"q"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateFeedbackRequest struct {
	Name        string `json:"name"        validate:"required,min=2"`
	Phone       string `json:"phone"`
	Type        string `json:"type"        validate:"required,oneof=Quality Service Delivery Price Other"`
	Description string `json:"description" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FeedbackListResponse struct {
	Feedback []model.Feedback `json:"feedback"`
}

type FeedbackResponse struct {
	Feedback model.Feedback `json:"feedback"`
}

type CustomerListResponse struct {
	Customers []model.Customer `json:"customers"`
}

type FeedbackSummaryResponse struct {
	PositiveRate int `json:"positiveRate"`
	NegativeRate int `json:"negativeRate"`
}
