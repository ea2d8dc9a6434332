package dto

import (
	"github.com/shopspring/decimal"

	"lilass/internal/model"
)

// ─── Filter ──────────────────────────────────────────────────────────────────

// FinanceWindow is bound from the query string of every /api/finance endpoint.
// Scale: yearly | quarterly | monthly | weekly (weekly with week=0 covers the
// whole month in week buckets, week=1..4 covers that week in day buckets).
type FinanceWindow struct {
	Scale   string `form:"scale,default=monthly"`
	Year    int    `form:"year"`
	Quarter int    `form:"quarter" validate:"omitempty,min=1,max=4"`
	Month   int    `form:"month"   validate:"omitempty,min=1,max=12"`
	Week    int    `form:"week"    validate:"omitempty,min=0,max=4"`
	Section string `form:"section,default=cogs"` // costs only
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type Bucket struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type InvoiceListResponse struct {
	Invoices []model.Invoice `json:"invoices"`
}

type InvoiceTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

type InvoiceSummaryResponse struct {
	Totals  InvoiceTotals `json:"totals"`
	Buckets []Bucket      `json:"buckets"`
}

type CreateCostRequest struct {
	Section string          `json:"section" validate:"required,oneof=cogs tech variable"`
	Date    string          `json:"date"    validate:"required"` // YYYY-MM-DD
	Amount  decimal.Decimal `json:"amount"  validate:"required,gt=0"`
	Note    *string         `json:"note"`
}

type CostListResponse struct {
	Entries []model.CostEntry `json:"entries"`
	Buckets []Bucket          `json:"buckets"`
	Total   decimal.Decimal   `json:"total"`
}

type CostEntryResponse struct {
	Entry model.CostEntry `json:"entry"`
}
