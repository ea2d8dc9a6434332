package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is a raw material tracked by quantity on hand (grams, ml, pieces).
// Mutated by reorders, manual adjustments and order placement; never deleted
// in normal flow.
type StockItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	SKU          *string         `gorm:"uniqueIndex" json:"sku,omitempty"`
	Unit         string          `gorm:"not null" json:"unit"` // g | ml | piece
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"reorderLevel"`
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
