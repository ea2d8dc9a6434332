package dto

import "github.com/shopspring/decimal"

// AnalyticsQuery is bound from the query string of GET /api/analytics/overview.
// Scale: yearly | quarterly | monthly | weekly | hourly.
type AnalyticsQuery struct {
	Scale         string `form:"scale,default=weekly"`
	Year          int    `form:"year"`
	Quarter       int    `form:"quarter"       validate:"omitempty,min=1,max=4"`
	Month         int    `form:"month"         validate:"omitempty,min=1,max=12"`
	Week          int    `form:"week"          validate:"omitempty,min=0,max=4"`
	IntervalStart int    `form:"intervalStart" validate:"omitempty,min=0,max=23"`
	IntervalEnd   int    `form:"intervalEnd"   validate:"omitempty,min=0,max=24"`
}

type RevenueBucket struct {
	Label         string          `json:"label"`
	Revenue       decimal.Decimal `json:"revenue"`
	ProfitPercent decimal.Decimal `json:"profitPercent"`
}

type AnalyticsKPIs struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	AvgProfitPercent decimal.Decimal `json:"avgProfitPercent"`
	Status           string          `json:"status"` // Profitable | Saturated | Loss
}

type AnalyticsOverviewResponse struct {
	Buckets []RevenueBucket `json:"buckets"`
	KPIs    AnalyticsKPIs   `json:"kpis"`
}
