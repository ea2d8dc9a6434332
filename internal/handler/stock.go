package handler

import (
	"errors"
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// Coverage godoc
// @Summary      Sellable units per product given current stock
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CoverageResponse
// @Router       /api/stock/products-coverage [get]
func (h *StockHandler) Coverage(c *gin.Context) {
	resp, err := h.svc.ProductsCoverage(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute coverage"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recipe godoc
// @Summary      Recipe of a product with per-ingredient stock position
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  string true  "Product UUID"
// @Param        variantId query string false "Variant UUID (defaults to the first recipe-bearing variant)"
// @Success      200 {object} dto.RecipeResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/stock/product/{id}/recipe [get]
func (h *StockHandler) Recipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	var variantID *uuid.UUID
	if raw := c.Query("variantId"); raw != "" {
		vid, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid variant id"))
			return
		}
		variantID = &vid
	}
	resp, err := h.svc.ProductRecipe(c.Request.Context(), id, variantID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Low godoc
// @Summary      Ingredients at or below their reorder level
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        threshold query string false "Compare against this quantity instead of each item's reorder level"
// @Success      200 {object} dto.LowStockResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/stock/low [get]
func (h *StockHandler) Low(c *gin.Context) {
	var threshold *decimal.Decimal
	if raw := c.Query("threshold"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid threshold"))
			return
		}
		threshold = &v
	}
	resp, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list low stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Forecast godoc
// @Summary      Naive sellable-units forecast
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ForecastResponse
// @Router       /api/stock/forecast [get]
func (h *StockHandler) Forecast(c *gin.Context) {
	resp, err := h.svc.Forecast(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute forecast"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ingredients godoc
// @Summary      All tracked raw materials
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.StockItem
// @Router       /api/stock/ingredients [get]
func (h *StockHandler) Ingredients(c *gin.Context) {
	items, err := h.svc.ListIngredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list ingredients"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Reorder godoc
// @Summary      Receive a reorder into ingredient stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReorderStockRequest true "Ingredient and quantity"
// @Success      200  {object} dto.StockMutationResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/stock/reorder [post]
func (h *StockHandler) Reorder(c *gin.Context) {
	var req dto.ReorderStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reorder(c.Request.Context(), req)
	if err != nil {
		writeStockErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary      Apply a manual stock delta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Ingredient and signed delta"
// @Success      200  {object} dto.StockMutationResponse
// @Failure      409  {object} apierror.APIError
// @Router       /api/stock/adjust [patch]
func (h *StockHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), req)
	if err != nil {
		writeStockErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReorderLevel godoc
// @Summary      Set an ingredient's reorder threshold
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReorderLevelRequest true "Ingredient and level"
// @Success      200  {object} dto.StockMutationResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/stock/reorder-level [patch]
func (h *StockHandler) ReorderLevel(c *gin.Context) {
	var req dto.ReorderLevelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetReorderLevel(c.Request.Context(), req)
	if err != nil {
		writeStockErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeStockErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNegativeStock):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Stock operation failed"))
	}
}
