package tests

import (
	"context"
	"testing"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices []model.Invoice

	// captured window of the last ListBetween call
	start, end time.Time
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	r.invoices = append(r.invoices, *inv)
	return nil
}

func (r *stubInvoiceRepo) ListBetween(_ context.Context, start, end time.Time) ([]model.Invoice, error) {
	r.start, r.end = start, end
	var out []model.Invoice
	for _, inv := range r.invoices {
		if !inv.Date.Before(start) && inv.Date.Before(end) {
			out = append(out, inv)
		}
	}
	return out, nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubCostRepo struct {
	entries []model.CostEntry

	lastSection string
}

func (r *stubCostRepo) Create(_ context.Context, entry *model.CostEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubCostRepo) ListBetween(_ context.Context, section string, start, end time.Time) ([]model.CostEntry, error) {
	r.lastSection = section
	var out []model.CostEntry
	for _, en := range r.entries {
		if section != "" && en.Section != section {
			continue
		}
		if !en.Date.Before(start) && en.Date.Before(end) {
			out = append(out, en)
		}
	}
	return out, nil
}

func (r *stubCostRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, en := range r.entries {
		if en.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.CostRepository = (*stubCostRepo)(nil)

func invoiceOn(date time.Time, subtotal, paid string) model.Invoice {
	return model.Invoice{
		Date:     date,
		Subtotal: decimal.RequireFromString(subtotal),
		Paid:     decimal.RequireFromString(paid),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestInvoiceSummaryMonthlyBuckets(t *testing.T) {
	mar := func(day int) time.Time {
		return time.Date(2026, time.March, day, 10, 0, 0, 0, time.Local)
	}
	invRepo := &stubInvoiceRepo{invoices: []model.Invoice{
		invoiceOn(mar(2), "100.00", "80.00"),
		invoiceOn(mar(2), "50.00", "50.00"),
		invoiceOn(mar(15), "30.00", "30.00"),
		invoiceOn(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.Local), "999.00", "999.00"), // outside window
	}}
	svc := service.NewFinanceService(invRepo, &stubCostRepo{})

	resp, err := svc.InvoiceSummary(context.Background(), dto.FinanceWindow{
		Scale: "monthly", Year: 2026, Month: 3,
	})
	require.NoError(t, err)

	assert.True(t, resp.Totals.Subtotal.Equal(decimal.RequireFromString("180.00")), "subtotal %s", resp.Totals.Subtotal)
	assert.True(t, resp.Totals.Paid.Equal(decimal.RequireFromString("160.00")))
	assert.True(t, resp.Totals.Balance.Equal(decimal.RequireFromString("20.00")))

	// March has 31 day buckets labeled by day of month
	require.Len(t, resp.Buckets, 31)
	assert.Equal(t, "1", resp.Buckets[0].Label)
	assert.Equal(t, "31", resp.Buckets[30].Label)
	assert.True(t, resp.Buckets[1].Total.Equal(decimal.RequireFromString("150.00")), "day 2 total %s", resp.Buckets[1].Total)
	assert.True(t, resp.Buckets[14].Total.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, resp.Buckets[0].Total.IsZero())
}

func TestInvoiceSummaryBalanceClampedAtZero(t *testing.T) {
	invRepo := &stubInvoiceRepo{invoices: []model.Invoice{
		invoiceOn(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.Local), "100.00", "120.00"),
	}}
	svc := service.NewFinanceService(invRepo, &stubCostRepo{})

	resp, err := svc.InvoiceSummary(context.Background(), dto.FinanceWindow{
		Scale: "monthly", Year: 2026, Month: 3,
	})
	require.NoError(t, err)
	assert.True(t, resp.Totals.Balance.IsZero(), "overpayment must not produce a negative balance")
}

func TestInvoiceSummaryYearlyBuckets(t *testing.T) {
	invRepo := &stubInvoiceRepo{invoices: []model.Invoice{
		invoiceOn(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local), "40.00", "40.00"),
		invoiceOn(time.Date(2026, time.November, 20, 0, 0, 0, 0, time.Local), "60.00", "60.00"),
	}}
	svc := service.NewFinanceService(invRepo, &stubCostRepo{})

	resp, err := svc.InvoiceSummary(context.Background(), dto.FinanceWindow{Scale: "yearly", Year: 2026})
	require.NoError(t, err)

	require.Len(t, resp.Buckets, 12)
	assert.Equal(t, "Jan", resp.Buckets[0].Label)
	assert.Equal(t, "Dec", resp.Buckets[11].Label)
	assert.True(t, resp.Buckets[1].Total.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, resp.Buckets[10].Total.Equal(decimal.RequireFromString("60.00")))

	// The queried window spans the whole year
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), invRepo.start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local), invRepo.end)
}

func TestInvoiceSummaryWeeklyWholeMonth(t *testing.T) {
	invRepo := &stubInvoiceRepo{invoices: []model.Invoice{
		invoiceOn(time.Date(2026, time.March, 12, 0, 0, 0, 0, time.Local), "25.00", "25.00"),
	}}
	svc := service.NewFinanceService(invRepo, &stubCostRepo{})

	resp, err := svc.InvoiceSummary(context.Background(), dto.FinanceWindow{
		Scale: "weekly", Year: 2026, Month: 3, Week: 0,
	})
	require.NoError(t, err)

	require.Len(t, resp.Buckets, 4)
	assert.Equal(t, "Wk 1", resp.Buckets[0].Label)
	assert.Equal(t, "Wk 4", resp.Buckets[3].Label)
	// Weeks run Monday-first from Feb 23; Mar 12 falls in the third week
	assert.True(t, resp.Buckets[2].Total.Equal(decimal.RequireFromString("25.00")), "wk3 %s", resp.Buckets[2].Total)
}

func TestInvoiceSummarySingleWeekDayBuckets(t *testing.T) {
	invRepo := &stubInvoiceRepo{invoices: []model.Invoice{
		invoiceOn(time.Date(2026, time.February, 24, 0, 0, 0, 0, time.Local), "10.00", "10.00"),
	}}
	svc := service.NewFinanceService(invRepo, &stubCostRepo{})

	// Week 1 of March 2026 starts Monday Feb 23
	resp, err := svc.InvoiceSummary(context.Background(), dto.FinanceWindow{
		Scale: "weekly", Year: 2026, Month: 3, Week: 1,
	})
	require.NoError(t, err)

	require.Len(t, resp.Buckets, 7)
	assert.Equal(t, "Mon", resp.Buckets[0].Label)
	assert.Equal(t, "Sun", resp.Buckets[6].Label)
	assert.True(t, resp.Buckets[1].Total.Equal(decimal.RequireFromString("10.00")), "tuesday %s", resp.Buckets[1].Total)
}

func TestListCostsDefaultsToCOGS(t *testing.T) {
	costRepo := &stubCostRepo{entries: []model.CostEntry{
		{ID: uuid.New(), Section: model.CostSectionCOGS, Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local), Amount: decimal.RequireFromString("420.00")},
		{ID: uuid.New(), Section: model.CostSectionTech, Date: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.Local), Amount: decimal.RequireFromString("60.00")},
	}}
	svc := service.NewFinanceService(&stubInvoiceRepo{}, costRepo)

	resp, err := svc.ListCosts(context.Background(), dto.FinanceWindow{Scale: "monthly", Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, model.CostSectionCOGS, costRepo.lastSection)
	require.Len(t, resp.Entries, 1)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("420.00")))
}

func TestCreateCostParsesDate(t *testing.T) {
	costRepo := &stubCostRepo{}
	svc := service.NewFinanceService(&stubInvoiceRepo{}, costRepo)

	resp, err := svc.CreateCost(context.Background(), dto.CreateCostRequest{
		Section: model.CostSectionVariable,
		Date:    "2026-03-08",
		Amount:  decimal.RequireFromString("95.75"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, resp.Entry.Date.Year())
	assert.Equal(t, time.March, resp.Entry.Date.Month())
	assert.Equal(t, 8, resp.Entry.Date.Day())

	_, err = svc.CreateCost(context.Background(), dto.CreateCostRequest{
		Section: model.CostSectionVariable,
		Date:    "08/03/2026",
		Amount:  decimal.RequireFromString("1.00"),
	})
	assert.Error(t, err)
}

func TestDeleteCost(t *testing.T) {
	entry := model.CostEntry{ID: uuid.New(), Section: model.CostSectionTech, Date: time.Now(), Amount: decimal.NewFromInt(10)}
	costRepo := &stubCostRepo{entries: []model.CostEntry{entry}}
	svc := service.NewFinanceService(&stubInvoiceRepo{}, costRepo)

	require.NoError(t, svc.DeleteCost(context.Background(), entry.ID))
	assert.ErrorIs(t, svc.DeleteCost(context.Background(), entry.ID), gorm.ErrRecordNotFound)
}
