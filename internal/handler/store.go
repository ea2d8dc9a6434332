package handler

import (
	"errors"
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoreHandler backs the admin product management screen.
type StoreHandler struct{ svc service.StoreService }

func NewStoreHandler(svc service.StoreService) *StoreHandler { return &StoreHandler{svc: svc} }

// List godoc
// @Summary      List products in the flat admin shape
// @Tags         store
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.StoreProductListResponse
// @Router       /api/store/products [get]
func (h *StoreHandler) List(c *gin.Context) {
	resp, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a product
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateStoreProductRequest true "Product"
// @Success      201  {object} dto.StoreProductResponse
// @Router       /api/store/products [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a product
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Product UUID"
// @Param        body body dto.UpdateStoreProductRequest true "Fields to change"
// @Success      200  {object} dto.StoreProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/store/products/{id} [patch]
func (h *StoreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	var req dto.UpdateStoreProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a product and its variants
// @Tags         store
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/store/products/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete product"))
		return
	}
	c.Status(http.StatusNoContent)
}
