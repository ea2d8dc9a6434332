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

type PaymentHandler struct{ svc service.PaymentService }

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Initiate godoc
// @Summary      Start a payment for an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.InitiatePaymentRequest true "Payment intent"
// @Success      201 {object} dto.PaymentResponse
// @Failure      400 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Failure      501 {object} apierror.APIError
// @Router       /api/payments [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var userID *uuid.UUID
	if raw, ok := c.Get(middleware.ClaimsKey); ok {
		if claims, ok := raw.(*middleware.JWTClaims); ok {
			if id, err := uuid.Parse(claims.UserID); err == nil {
				userID = &id
			}
		}
	}
	resp, err := h.svc.Initiate(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentAmount):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrProviderNotImplemented):
			c.JSON(http.StatusNotImplemented, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to initiate payment"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Payment status by id
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment UUID"
// @Success      200 {object} dto.PaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid payment id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Payment not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
