package handler

import (
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct{ svc service.FeedbackService }

func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// List godoc
// @Summary      Feedback entries, filterable by window, type and free text
// @Tags         customer-service
// @Produce      json
// @Security     BearerAuth
// @Param        start query string false "Start date (YYYY-MM-DD)"
// @Param        end   query string false "End date (YYYY-MM-DD)"
// @Param        type  query string false "All|Quality|Service|Delivery|Price|Other"
// @Param        q     query string false "Search over name, phone and description"
// @Success      200 {object} dto.FeedbackListResponse
// @Router       /api/cs/feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	var filter dto.FeedbackFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListFeedback(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list feedback"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Submit a feedback entry
// @Tags         customer-service
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateFeedbackRequest true "Feedback"
// @Success      201 {object} dto.FeedbackResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /api/cs/feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateFeedback(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to record feedback"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Customers godoc
// @Summary      Customer directory built from feedback submissions
// @Tags         customer-service
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "Search over name and phone"
// @Success      200 {object} dto.CustomerListResponse
// @Router       /api/cs/customers [get]
func (h *FeedbackHandler) Customers(c *gin.Context) {
	var filter dto.CustomerFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list customers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary      Positive/negative sentiment split for a scale
// @Tags         customer-service
// @Produce      json
// @Security     BearerAuth
// @Param        scale query string false "yearly|monthly|weekly"
// @Success      200 {object} dto.FeedbackSummaryResponse
// @Router       /api/cs/feedback/summary [get]
func (h *FeedbackHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context(), c.Query("scale"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to summarize feedback"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
