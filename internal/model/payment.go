package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentStatusCreated   = "created"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment tracks one payment attempt against an order.
// Provider: "stripe" | "paypal" | "manual".
// Retry bookkeeping (RetryCount / NextRetryAt / LastError) drives the retry
// cron for payments whose gateway registration failed.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Provider   string          `gorm:"type:varchar(20);not null" json:"provider"`
	Status     string          `gorm:"type:varchar(20);not null;default:'created';index" json:"status"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency   string          `gorm:"type:varchar(10);not null;default:'usd'" json:"currency"`
	OrderID    *uuid.UUID      `gorm:"type:uuid;index" json:"orderId,omitempty"`
	UserID     *uuid.UUID      `gorm:"type:uuid" json:"userId,omitempty"`
	ExternalID *string         `json:"externalId,omitempty"`

	RetryCount  int        `gorm:"not null;default:0" json:"-"`
	NextRetryAt *time.Time `gorm:"index" json:"-"`
	LastError   *string    `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
