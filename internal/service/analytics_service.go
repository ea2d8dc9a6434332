package service

import (
	"context"
	"fmt"
	"time"

	"lilass/internal/dto"
	"lilass/internal/repository"

	"github.com/shopspring/decimal"
)

// Revenue status thresholds on avgProfitPercent.
var (
	profitableFloor = decimal.NewFromInt(18)
	saturatedFloor  = decimal.NewFromInt(14)

	profitHeuristic = decimal.NewFromFloat(0.2)
	hundred         = decimal.NewFromInt(100)
)

type AnalyticsService interface {
	Overview(ctx context.Context, q dto.AnalyticsQuery) (*dto.AnalyticsOverviewResponse, error)
}

type analyticsService struct {
	orderRepo repository.OrderRepository
}

func NewAnalyticsService(orderRepo repository.OrderRepository) AnalyticsService {
	return &analyticsService{orderRepo: orderRepo}
}

// Overview buckets order revenue over the requested scale. The backing query
// always spans the selected month; yearly and quarterly grids therefore only
// fill the buckets that month touches, which matches how the dashboard charts
// are driven.
//
// profitPercent per bucket is a margin heuristic: 20% of bucket subtotal over
// bucket revenue, as a percentage rounded to one decimal. Real COGS tracking
// lives in the finance module.
func (s *analyticsService) Overview(ctx context.Context, q dto.AnalyticsQuery) (*dto.AnalyticsOverviewResponse, error) {
	now := time.Now()
	year := q.Year
	if year == 0 {
		year = now.Year()
	}
	month := q.Month
	if month == 0 {
		month = int(now.Month())
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	orders, err := s.orderRepo.ListBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	scale := q.Scale
	if scale == "" {
		scale = "weekly"
	}

	var buckets []dto.RevenueBucket
	slice := func(start, end time.Time, label string) {
		revenue, subtotal := decimal.Zero, decimal.Zero
		n := 0
		for _, o := range orders {
			if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
				revenue = revenue.Add(o.Total)
				subtotal = subtotal.Add(o.Subtotal)
				n++
			}
		}
		buckets = append(buckets, dto.RevenueBucket{
			Label:         label,
			Revenue:       revenue,
			ProfitPercent: profitPercent(subtotal, revenue, n),
		})
	}

	switch scale {
	case "yearly":
		for m := 1; m <= 12; m++ {
			start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.Local)
			slice(start, start.AddDate(0, 1, 0), monthShort[m-1])
		}
	case "quarterly":
		for qi := 0; qi < 4; qi++ {
			start := time.Date(year, time.Month(qi*3+1), 1, 0, 0, 0, 0, time.Local)
			slice(start, start.AddDate(0, 3, 0), fmt.Sprintf("Q%d", qi+1))
		}
	case "monthly":
		for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
			slice(d, d.AddDate(0, 0, 1), fmt.Sprintf("%d", d.Day()))
		}
	case "hourly":
		startHour, endHour := q.IntervalStart, q.IntervalEnd
		if startHour == 0 && endHour == 0 {
			startHour, endHour = 9, 12
		}
		for h := startHour; h < endHour; h++ {
			start := time.Date(year, time.Month(month), 1, h, 0, 0, 0, time.Local)
			slice(start, start.Add(time.Hour), fmt.Sprintf("%02d:00", h))
		}
	default: // weekly
		base := startOfWeek(monthStart)
		if q.Week == 0 {
			for w := 0; w < 4; w++ {
				start := base.AddDate(0, 0, w*7)
				slice(start, start.AddDate(0, 0, 7), fmt.Sprintf("Wk %d", w+1))
			}
		} else {
			start := base.AddDate(0, 0, (q.Week-1)*7)
			for i := 0; i < 7; i++ {
				day := start.AddDate(0, 0, i)
				slice(day, day.AddDate(0, 0, 1), day.Format("Mon"))
			}
		}
	}

	total := decimal.Zero
	sumProfit := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Revenue)
		sumProfit = sumProfit.Add(b.ProfitPercent)
	}
	avgProfit := decimal.Zero
	if len(buckets) > 0 {
		avgProfit = sumProfit.Div(decimal.NewFromInt(int64(len(buckets)))).Round(1)
	}

	status := "Loss"
	switch {
	case avgProfit.GreaterThanOrEqual(profitableFloor):
		status = "Profitable"
	case avgProfit.GreaterThanOrEqual(saturatedFloor):
		status = "Saturated"
	}

	return &dto.AnalyticsOverviewResponse{
		Buckets: buckets,
		KPIs: dto.AnalyticsKPIs{
			TotalRevenue:     total,
			AvgProfitPercent: avgProfit,
			Status:           status,
		},
	}, nil
}

// profitPercent returns 20% of subtotal over revenue as a percentage with one
// decimal, or zero when the bucket is empty. Revenue is floored at 1 to keep
// tiny buckets from exploding the ratio.
func profitPercent(subtotal, revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	denom := revenue
	if denom.LessThan(decimal.NewFromInt(1)) {
		denom = decimal.NewFromInt(1)
	}
	return subtotal.Mul(profitHeuristic).Div(denom).Mul(hundred).Round(1)
}
