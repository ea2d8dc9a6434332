package service

import (
	"context"
	"fmt"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FinanceService interface {
	ListInvoices(ctx context.Context, q dto.FinanceWindow) (*dto.InvoiceListResponse, error)
	InvoiceSummary(ctx context.Context, q dto.FinanceWindow) (*dto.InvoiceSummaryResponse, error)
	ListCosts(ctx context.Context, q dto.FinanceWindow) (*dto.CostListResponse, error)
	CreateCost(ctx context.Context, req dto.CreateCostRequest) (*dto.CostEntryResponse, error)
	DeleteCost(ctx context.Context, id uuid.UUID) error
}

type financeService struct {
	invoiceRepo repository.InvoiceRepository
	costRepo    repository.CostRepository
}

func NewFinanceService(invoiceRepo repository.InvoiceRepository, costRepo repository.CostRepository) FinanceService {
	return &financeService{invoiceRepo: invoiceRepo, costRepo: costRepo}
}

// ── Window parsing ────────────────────────────────────────────────────────────

// window is a resolved reporting period. end is exclusive.
type window struct {
	scale   string
	year    int
	quarter int
	month   int
	week    int
	start   time.Time
	end     time.Time
}

// startOfWeek returns the Monday at or before t.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(wd - 1))
}

// parseWindow resolves the query into a concrete [start, end) period.
// Weeks start Monday; week=0 on the weekly scale means the whole month.
func parseWindow(q dto.FinanceWindow) window {
	now := time.Now()
	scale := q.Scale
	if scale == "" {
		scale = "monthly"
	}
	year := q.Year
	if year == 0 {
		year = now.Year()
	}
	quarter := q.Quarter
	if quarter == 0 {
		quarter = (int(now.Month())-1)/3 + 1
	}
	month := q.Month
	if month == 0 {
		month = int(now.Month())
	}
	w := window{scale: scale, year: year, quarter: quarter, month: month, week: q.Week}

	switch scale {
	case "yearly":
		w.start = time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
		w.end = w.start.AddDate(1, 0, 0)
	case "quarterly":
		w.start = time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.Local)
		w.end = w.start.AddDate(0, 3, 0)
	case "weekly", "daily":
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		if q.Week == 0 {
			w.start = monthStart
			w.end = monthStart.AddDate(0, 1, 0)
		} else {
			base := startOfWeek(monthStart)
			w.start = base.AddDate(0, 0, (q.Week-1)*7)
			w.end = w.start.AddDate(0, 0, 7)
		}
	default: // monthly
		w.start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		w.end = w.start.AddDate(0, 1, 0)
	}
	return w
}

var monthShort = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// bucketize distributes dated amounts into the window's bucket grid.
func bucketize(w window, dates []time.Time, amounts []decimal.Decimal) []dto.Bucket {
	var buckets []dto.Bucket

	add := func(idx int, amount decimal.Decimal) {
		if idx >= 0 && idx < len(buckets) {
			buckets[idx].Total = buckets[idx].Total.Add(amount)
		}
	}

	switch {
	case w.scale == "yearly":
		for _, m := range monthShort {
			buckets = append(buckets, dto.Bucket{Label: m, Total: decimal.Zero})
		}
		for i, d := range dates {
			add(int(d.Month())-1, amounts[i])
		}
	case w.scale == "quarterly":
		for q := 1; q <= 4; q++ {
			buckets = append(buckets, dto.Bucket{Label: fmt.Sprintf("Q%d", q), Total: decimal.Zero})
		}
		for i, d := range dates {
			add((int(d.Month())-1)/3, amounts[i])
		}
	case w.scale == "monthly":
		for d := w.start; d.Before(w.end); d = d.AddDate(0, 0, 1) {
			buckets = append(buckets, dto.Bucket{Label: fmt.Sprintf("%d", d.Day()), Total: decimal.Zero})
		}
		for i, d := range dates {
			add(d.Day()-1, amounts[i])
		}
	case w.week == 0:
		// weekly scale, whole month in week buckets
		for i := 1; i <= 4; i++ {
			buckets = append(buckets, dto.Bucket{Label: fmt.Sprintf("Wk %d", i), Total: decimal.Zero})
		}
		base := startOfWeek(time.Date(w.year, time.Month(w.month), 1, 0, 0, 0, 0, time.Local))
		for i, d := range dates {
			wk := int(d.Sub(base).Hours()/24)/7 + 1
			if wk < 1 {
				wk = 1
			}
			if wk > 4 {
				wk = 4
			}
			add(wk-1, amounts[i])
		}
	default:
		// one week in day buckets
		for d := w.start; d.Before(w.end); d = d.AddDate(0, 0, 1) {
			buckets = append(buckets, dto.Bucket{Label: d.Format("Mon"), Total: decimal.Zero})
		}
		for i, d := range dates {
			add(int(d.Sub(w.start).Hours()/24), amounts[i])
		}
	}
	return buckets
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (s *financeService) ListInvoices(ctx context.Context, q dto.FinanceWindow) (*dto.InvoiceListResponse, error) {
	w := parseWindow(q)
	invoices, err := s.invoiceRepo.ListBetween(ctx, w.start, w.end)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceListResponse{Invoices: invoices}, nil
}

func (s *financeService) InvoiceSummary(ctx context.Context, q dto.FinanceWindow) (*dto.InvoiceSummaryResponse, error) {
	w := parseWindow(q)
	invoices, err := s.invoiceRepo.ListBetween(ctx, w.start, w.end)
	if err != nil {
		return nil, err
	}

	subtotal, paid := decimal.Zero, decimal.Zero
	dates := make([]time.Time, len(invoices))
	amounts := make([]decimal.Decimal, len(invoices))
	for i, inv := range invoices {
		subtotal = subtotal.Add(inv.Subtotal)
		paid = paid.Add(inv.Paid)
		dates[i] = inv.Date
		amounts[i] = inv.Subtotal
	}
	balance := subtotal.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return &dto.InvoiceSummaryResponse{
		Totals:  dto.InvoiceTotals{Subtotal: subtotal, Paid: paid, Balance: balance},
		Buckets: bucketize(w, dates, amounts),
	}, nil
}

// ── Costs ─────────────────────────────────────────────────────────────────────

func (s *financeService) ListCosts(ctx context.Context, q dto.FinanceWindow) (*dto.CostListResponse, error) {
	w := parseWindow(q)
	section := q.Section
	if section == "" {
		section = model.CostSectionCOGS
	}
	entries, err := s.costRepo.ListBetween(ctx, section, w.start, w.end)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	dates := make([]time.Time, len(entries))
	amounts := make([]decimal.Decimal, len(entries))
	for i, en := range entries {
		total = total.Add(en.Amount)
		dates[i] = en.Date
		amounts[i] = en.Amount
	}

	return &dto.CostListResponse{
		Entries: entries,
		Buckets: bucketize(w, dates, amounts),
		Total:   total,
	}, nil
}

func (s *financeService) CreateCost(ctx context.Context, req dto.CreateCostRequest) (*dto.CostEntryResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	entry := &model.CostEntry{
		Section: req.Section,
		Date:    date,
		Amount:  req.Amount,
		Note:    req.Note,
	}
	if err := s.costRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.CostEntryResponse{Entry: *entry}, nil
}

func (s *financeService) DeleteCost(ctx context.Context, id uuid.UUID) error {
	return s.costRepo.Delete(ctx, id)
}
