package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cost sections tracked by the finance dashboard.
const (
	CostSectionCOGS     = "cogs"
	CostSectionTech     = "tech"
	CostSectionVariable = "variable"
)

// CostEntry is a dated expense line (cost of goods, tech, variable).
type CostEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Section   string          `gorm:"type:varchar(20);not null;index" json:"section"`
	Date      time.Time       `gorm:"index;not null" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
