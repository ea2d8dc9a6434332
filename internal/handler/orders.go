package handler

import (
	"errors"
	"net/http"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/middleware"
	"lilass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Create godoc
// @Summary      Place an order
// @Description  Validates every line, deducts ingredient and unit stock atomically, prices the cart, and persists the order with product snapshots. Receipt rendering and the confirmation email run async.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateOrderRequest true "Cart and addresses"
// @Success      201  {object} dto.OrderResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /api/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Guests may order; a valid token just attributes the order.
	var userID *uuid.UUID
	if raw, ok := c.Get(middleware.ClaimsKey); ok {
		if claims, ok := raw.(*middleware.JWTClaims); ok {
			if uid, err := uuid.Parse(claims.UserID); err == nil {
				userID = &uid
			}
		}
	}

	resp, err := h.svc.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrVariantNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrInsufficientIngredient):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrProductInactive):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to place order"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Fetch one order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order id"))
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Order not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary      Orders of the authenticated user
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrdersHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token"))
		return
	}
	resp, err := h.svc.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Update order status label (staff)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Order UUID"
// @Param        body body object{status=string} true "New status"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order id"))
		return
	}
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
