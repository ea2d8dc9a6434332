package dto

import "github.com/shopspring/decimal"

// The store admin screen works with a flat single-variant product shape;
// the service maps it onto Product + first Variant.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateStoreProductRequest struct {
	Name        string          `json:"name"     validate:"required,min=2,max=120"`
	Category    string          `json:"category" validate:"required"`
	Unit        string          `json:"unit"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"    validate:"required"`
	SKU         string          `json:"sku"      validate:"required"`
	Stock       int             `json:"stock"    validate:"min=0"`
	ImageURL    string          `json:"imageUrl"`
	Description string          `json:"description"`
}

type UpdateStoreProductRequest struct {
	Name        *string          `json:"name"     validate:"omitempty,min=2,max=120"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	Size        *string          `json:"size"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku"`
	Stock       *int             `json:"stock"    validate:"omitempty,min=0"`
	ImageURL    *string          `json:"imageUrl"`
	Description *string          `json:"description"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StoreProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	Description string          `json:"description"`
	AddedAt     string          `json:"addedAt"`
}

type StoreProductListResponse struct {
	Products []StoreProduct `json:"products"`
}

type StoreProductResponse struct {
	Product StoreProduct `json:"product"`
}
