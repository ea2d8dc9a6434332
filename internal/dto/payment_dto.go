package dto

import (
	"github.com/shopspring/decimal"

	"lilass/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InitiatePaymentRequest struct {
	Provider string          `json:"provider" validate:"omitempty,oneof=stripe paypal manual"`
	Amount   decimal.Decimal `json:"amount"   validate:"required,gt=0"`
	Currency string          `json:"currency"`
	OrderID  *string         `json:"orderId"  validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	Payment model.Payment `json:"payment"`
	// ClientSecret is present for stripe payments and is consumed by the
	// browser SDK to confirm the intent.
	ClientSecret *string `json:"clientSecret,omitempty"`
}
