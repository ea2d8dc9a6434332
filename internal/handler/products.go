package handler

import (
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List godoc
// @Summary      Browse the catalog
// @Tags         products
// @Produce      json
// @Param        search   query string false "Full-text search over title and description"
// @Param        category query string false "Category filter"
// @Param        tags     query string false "Comma-separated tag filter"
// @Param        featured query string false "true | false"
// @Param        min      query string false "Minimum variant price"
// @Param        max      query string false "Maximum variant price"
// @Param        sort     query string false "price_asc | price_desc | newest"
// @Param        page     query int    false "Page (default 1)"
// @Param        pageSize query int    false "Page size (default 24)"
// @Success      200 {object} dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Related godoc
// @Summary      Products related to a given product
// @Tags         products
// @Produce      json
// @Param        id query string true "Product UUID"
// @Success      200 {object} dto.ProductListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/products/related [get]
func (h *ProductsHandler) Related(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	resp, err := h.svc.RelatedProducts(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBySlug godoc
// @Summary      Product detail by slug
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/products/{slug} [get]
func (h *ProductsHandler) GetBySlug(c *gin.Context) {
	resp, err := h.svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
