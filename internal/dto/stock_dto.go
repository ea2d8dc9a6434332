package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReorderStockRequest struct {
	IngredientID string          `json:"ingredientId" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"     validate:"required,gt=0"`
}

type AdjustStockRequest struct {
	IngredientID string          `json:"ingredientId" validate:"required,uuid"`
	Delta        decimal.Decimal `json:"delta"        validate:"required"`
}

type ReorderLevelRequest struct {
	IngredientID string          `json:"ingredientId" validate:"required,uuid"`
	ReorderLevel decimal.Decimal `json:"reorderLevel" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LowStockItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
}

type LowStockResponse struct {
	LowCount int            `json:"lowCount"`
	Items    []LowStockItem `json:"items"`
}

// ProductCoverage reports how many whole units of a product are currently
// sellable given on-hand ingredient stock.
type ProductCoverage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Coverage int    `json:"coverage"`
	Status   string `json:"status"` // "in" | "out"
}

type CoverageResponse struct {
	Products []ProductCoverage `json:"products"`
}

// RecipeLine is one ingredient requirement of a variant, enriched with the
// current stock position.
type RecipeLine struct {
	IngredientID  string          `json:"ingredientId"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	AmountPerUnit decimal.Decimal `json:"amountPerUnit"`
	InStock       decimal.Decimal `json:"inStock"`
	Missing       decimal.Decimal `json:"missing"`
}

type RecipeResponse struct {
	ProductID string       `json:"productId"`
	VariantID string       `json:"variantId"`
	Recipe    []RecipeLine `json:"recipe"`
}

type ForecastProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ForecastUnits int    `json:"forecastUnits"`
}

type ForecastResponse struct {
	Products []ForecastProduct `json:"products"`
}

type StockMutationResponse struct {
	Item struct {
		ID           string           `json:"id"`
		Quantity     *decimal.Decimal `json:"quantity,omitempty"`
		ReorderLevel *decimal.Decimal `json:"reorderLevel,omitempty"`
	} `json:"item"`
}
