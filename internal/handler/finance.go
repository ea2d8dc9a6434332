package handler

import (
	"errors"
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// ListInvoices godoc
// @Summary      Invoices within a reporting window
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        scale   query string false "yearly|quarterly|monthly|weekly"
// @Param        year    query int    false "Year"
// @Param        month   query int    false "Month (1-12)"
// @Param        week    query int    false "Week of month (0 = whole month)"
// @Success      200 {object} dto.InvoiceListResponse
// @Router       /api/finance/invoices [get]
func (h *FinanceHandler) ListInvoices(c *gin.Context) {
	var q dto.FinanceWindow
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.ListInvoices(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InvoiceSummary godoc
// @Summary      Invoice totals and bucketed subtotals for a window
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        scale query string false "yearly|quarterly|monthly|weekly"
// @Success      200 {object} dto.InvoiceSummaryResponse
// @Router       /api/finance/invoices/summary [get]
func (h *FinanceHandler) InvoiceSummary(c *gin.Context) {
	var q dto.FinanceWindow
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.InvoiceSummary(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to summarize invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCosts godoc
// @Summary      Cost entries of a section within a window
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        section query string false "cogs|tech|variable"
// @Success      200 {object} dto.CostListResponse
// @Router       /api/finance/costs [get]
func (h *FinanceHandler) ListCosts(c *gin.Context) {
	var q dto.FinanceWindow
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.ListCosts(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list costs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCost godoc
// @Summary      Record a cost entry
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateCostRequest true "Cost entry"
// @Success      201 {object} dto.CostEntryResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /api/finance/costs [post]
func (h *FinanceHandler) CreateCost(c *gin.Context) {
	var req dto.CreateCostRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCost(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteCost godoc
// @Summary      Delete a cost entry
// @Tags         finance
// @Security     BearerAuth
// @Param        id path string true "Cost entry UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/finance/costs/{id} [delete]
func (h *FinanceHandler) DeleteCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid cost entry id"))
		return
	}
	if err := h.svc.DeleteCost(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Cost entry not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete cost entry"))
		return
	}
	c.Status(http.StatusNoContent)
}
