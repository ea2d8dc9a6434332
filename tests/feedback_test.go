package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubFeedbackRepo struct {
	entries []model.Feedback
}

func (r *stubFeedbackRepo) Create(_ context.Context, fb *model.Feedback) error {
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *fb)
	return nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Feedback, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFeedbackRepo) List(_ context.Context, filter dto.FeedbackFilter) ([]model.Feedback, error) {
	var out []model.Feedback
	for _, fb := range r.entries {
		if filter.Type != "" && fb.Type != filter.Type {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(fb.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

func (r *stubFeedbackRepo) CountBetween(_ context.Context, start, end time.Time) (int64, error) {
	var n int64
	for _, fb := range r.entries {
		if !fb.CreatedAt.Before(start) && fb.CreatedAt.Before(end) {
			n++
		}
	}
	return n, nil
}

var _ repository.FeedbackRepository = (*stubFeedbackRepo)(nil)

type stubCustomerRepo struct {
	byPhone map[string]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byPhone: make(map[string]*model.Customer)}
}

func (r *stubCustomerRepo) Upsert(_ context.Context, c *model.Customer) error {
	if existing, ok := r.byPhone[c.Phone]; ok {
		existing.Name = c.Name
		return nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byPhone[c.Phone] = c
	return nil
}

func (r *stubCustomerRepo) List(_ context.Context, filter dto.CustomerFilter) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.byPhone {
		if filter.Query != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateFeedbackTracksCustomer(t *testing.T) {
	fbRepo := &stubFeedbackRepo{}
	custRepo := newStubCustomerRepo()
	svc := service.NewFeedbackService(fbRepo, custRepo)

	resp, err := svc.CreateFeedback(context.Background(), dto.CreateFeedbackRequest{
		Name:        "Mei Tanaka",
		Phone:       "555-0142",
		Type:        "Quality",
		Description: "The latte was lukewarm.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Quality", resp.Feedback.Type)

	require.Len(t, custRepo.byPhone, 1)
	assert.Equal(t, "Mei Tanaka", custRepo.byPhone["555-0142"].Name)
}

func TestCreateFeedbackWithoutPhoneSkipsCustomer(t *testing.T) {
	fbRepo := &stubFeedbackRepo{}
	custRepo := newStubCustomerRepo()
	svc := service.NewFeedbackService(fbRepo, custRepo)

	_, err := svc.CreateFeedback(context.Background(), dto.CreateFeedbackRequest{
		Name:        "Anonymous",
		Type:        "Other",
		Description: "Love the new roast.",
	})
	require.NoError(t, err)
	assert.Empty(t, custRepo.byPhone)
}

func TestRepeatFeedbackKeepsSingleCustomer(t *testing.T) {
	fbRepo := &stubFeedbackRepo{}
	custRepo := newStubCustomerRepo()
	svc := service.NewFeedbackService(fbRepo, custRepo)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateFeedback(context.Background(), dto.CreateFeedbackRequest{
			Name:        "Mei Tanaka",
			Phone:       "555-0142",
			Type:        "Service",
			Description: "Still waiting on my order.",
		})
		require.NoError(t, err)
	}
	assert.Len(t, custRepo.byPhone, 1)
	assert.Len(t, fbRepo.entries, 3)
}

func TestListFeedbackAllMeansNoTypeFilter(t *testing.T) {
	fbRepo := &stubFeedbackRepo{}
	svc := service.NewFeedbackService(fbRepo, newStubCustomerRepo())

	for _, typ := range []string{"Quality", "Service"} {
		_, err := svc.CreateFeedback(context.Background(), dto.CreateFeedbackRequest{
			Name: "Mei Tanaka", Type: typ, Description: "note",
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListFeedback(context.Background(), dto.FeedbackFilter{Type: "All"})
	require.NoError(t, err)
	assert.Len(t, resp.Feedback, 2)

	resp, err = svc.ListFeedback(context.Background(), dto.FeedbackFilter{Type: "Quality"})
	require.NoError(t, err)
	assert.Len(t, resp.Feedback, 1)
}

func TestSummaryReflectsRecentVolume(t *testing.T) {
	fbRepo := &stubFeedbackRepo{}
	svc := service.NewFeedbackService(fbRepo, newStubCustomerRepo())

	// No feedback this month → base rates by scale
	monthly, err := svc.Summary(context.Background(), "monthly")
	require.NoError(t, err)
	assert.Equal(t, 78, monthly.PositiveRate)
	assert.Equal(t, 22, monthly.NegativeRate)

	yearly, err := svc.Summary(context.Background(), "yearly")
	require.NoError(t, err)
	assert.Equal(t, 82, yearly.PositiveRate)

	weekly, err := svc.Summary(context.Background(), "weekly")
	require.NoError(t, err)
	assert.Equal(t, 74, weekly.PositiveRate)

	// Each current-month entry drags the rate down
	for i := 0; i < 4; i++ {
		_, err := svc.CreateFeedback(context.Background(), dto.CreateFeedbackRequest{
			Name: "Mei Tanaka", Type: "Quality", Description: "complaint",
		})
		require.NoError(t, err)
	}
	monthly, err = svc.Summary(context.Background(), "monthly")
	require.NoError(t, err)
	assert.Equal(t, 74, monthly.PositiveRate)
	assert.Equal(t, 26, monthly.NegativeRate)
}
