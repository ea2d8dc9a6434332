package handler

import (
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Overview godoc
// @Summary      Revenue buckets, KPIs and profitability status
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        scale          query string false "yearly|quarterly|monthly|weekly|hourly"
// @Param        year           query int    false "Year"
// @Param        month          query int    false "Month (1-12)"
// @Param        week           query int    false "Week of month (0 = whole month)"
// @Param        intervalStart  query int    false "First hour, hourly scale"
// @Param        intervalEnd    query int    false "Last hour, hourly scale"
// @Success      200 {object} dto.AnalyticsOverviewResponse
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	var q dto.AnalyticsQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Overview(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute analytics"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
