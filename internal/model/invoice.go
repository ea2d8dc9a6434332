package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem is one sold line on an in-store invoice.
type InvoiceItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Invoice is an in-store sale record used by the finance dashboard.
type Invoice struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date         time.Time       `gorm:"index;not null" json:"date"`
	Time         string          `json:"time,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Gender       *string         `gorm:"type:varchar(10)" json:"gender,omitempty"` // Male | Female
	Items        []InvoiceItem   `gorm:"serializer:json" json:"items"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Paid         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"paid"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
