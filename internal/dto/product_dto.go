package dto

import "lilass/internal/model"

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /api/products.
type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Min      string `form:"min"`
	Max      string `form:"max"`
	Featured string `form:"featured"` // "true" | "false" | ""
	Tags     string `form:"tags"`     // comma-separated
	Sort     string `form:"sort"`     // price_asc | price_desc | newest (default)
	Page     int    `form:"page,default=1"      validate:"min=1"`
	PageSize int    `form:"pageSize,default=24" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Catalog responses reuse the model's JSON shape; the storefront and the
// admin dashboard consume the same payloads.

type ProductListResponse struct {
	Products []model.Product `json:"products"`
}

type ProductResponse struct {
	Product model.Product `json:"product"`
}
