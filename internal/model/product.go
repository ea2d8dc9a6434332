package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry visible in the storefront. Purchasable units are
// its Variants; the product itself carries only presentation data.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description *string   `json:"description,omitempty"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Categories  []string  `gorm:"serializer:json" json:"categories"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
}

// Variant is a purchasable SKU of a Product (e.g. "250g bag").
// When Recipe is non-empty the variant is produced on demand from raw
// materials and ingredient availability, not Stock, is the selling constraint.
type Variant struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"productId"`
	SKU        string            `gorm:"uniqueIndex;not null" json:"sku"`
	Title      string            `gorm:"not null" json:"title"`
	Price      decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost       decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"cost"`
	Stock      int               `gorm:"not null;default:0" json:"stock"`
	Attributes map[string]string `gorm:"serializer:json" json:"attributes,omitempty"`
	Images     []string          `gorm:"serializer:json" json:"images"`
	Active     bool              `gorm:"not null;default:true" json:"active"`
	Recipe     []RecipeItem      `gorm:"serializer:json" json:"recipe"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// RecipeItem declares how much of a raw material one unit of a variant consumes.
type RecipeItem struct {
	IngredientID uuid.UUID       `json:"ingredientId"`
	Amount       decimal.Decimal `json:"amount"` // per single unit, in the StockItem's unit
}

// FindVariant locates a variant by id within the product, or nil.
func (p *Product) FindVariant(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}
