package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrNegativeStock      = errors.New("adjustment would take stock below zero")
)

type StockService interface {
	ProductsCoverage(ctx context.Context) (*dto.CoverageResponse, error)
	ProductRecipe(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*dto.RecipeResponse, error)
	LowStock(ctx context.Context, threshold *decimal.Decimal) (*dto.LowStockResponse, error)
	Forecast(ctx context.Context) (*dto.ForecastResponse, error)
	Reorder(ctx context.Context, req dto.ReorderStockRequest) (*dto.StockMutationResponse, error)
	Adjust(ctx context.Context, req dto.AdjustStockRequest) (*dto.StockMutationResponse, error)
	SetReorderLevel(ctx context.Context, req dto.ReorderLevelRequest) (*dto.StockMutationResponse, error)
	ListIngredients(ctx context.Context) ([]model.StockItem, error)
}

type stockService struct {
	repo        repository.StockRepository
	productRepo repository.ProductRepository
}

func NewStockService(repo repository.StockRepository, productRepo repository.ProductRepository) StockService {
	return &stockService{repo: repo, productRepo: productRepo}
}

// variantCoverage computes how many whole units of a variant are sellable.
// Recipe variants are bounded by their scarcest ingredient; plain variants by
// their own unit stock. Order validation and the coverage endpoint both rely
// on this arithmetic.
func variantCoverage(v *model.Variant, onHand map[uuid.UUID]decimal.Decimal) int {
	if len(v.Recipe) == 0 {
		return v.Stock
	}
	units := math.MaxInt32
	for _, ri := range v.Recipe {
		if ri.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		have, ok := onHand[ri.IngredientID]
		if !ok {
			return 0
		}
		n := int(have.Div(ri.Amount).IntPart())
		if n < units {
			units = n
		}
	}
	if units == math.MaxInt32 {
		return 0
	}
	return units
}

func (s *stockService) onHandMap(ctx context.Context) (map[uuid.UUID]decimal.Decimal, map[uuid.UUID]model.StockItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	onHand := make(map[uuid.UUID]decimal.Decimal, len(items))
	byID := make(map[uuid.UUID]model.StockItem, len(items))
	for _, it := range items {
		onHand[it.ID] = it.Quantity
		byID[it.ID] = it
	}
	return onHand, byID, nil
}

func (s *stockService) ProductsCoverage(ctx context.Context) (*dto.CoverageResponse, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	onHand, _, err := s.onHandMap(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductCoverage, 0, len(products))
	for i := range products {
		p := &products[i]
		coverage := math.MaxInt32
		for j := range p.Variants {
			if c := variantCoverage(&p.Variants[j], onHand); c < coverage {
				coverage = c
			}
		}
		if len(p.Variants) == 0 || coverage == math.MaxInt32 {
			coverage = 0
		}
		status := "in"
		if coverage <= 0 {
			status = "out"
		}
		category := ""
		if len(p.Categories) > 0 {
			category = p.Categories[0]
		}
		out = append(out, dto.ProductCoverage{
			ID:       p.ID.String(),
			Name:     p.Title,
			Category: category,
			Coverage: coverage,
			Status:   status,
		})
	}
	return &dto.CoverageResponse{Products: out}, nil
}

func (s *stockService) ProductRecipe(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*dto.RecipeResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	// An explicit variantId selects that variant; without one the view reports
	// the first recipe-bearing variant. Products whose variants are all
	// pre-made return an empty recipe.
	var v *model.Variant
	if variantID != nil {
		if v = p.FindVariant(*variantID); v == nil {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, *variantID)
		}
	} else {
		for i := range p.Variants {
			if len(p.Variants[i].Recipe) > 0 {
				v = &p.Variants[i]
				break
			}
		}
	}
	resp := &dto.RecipeResponse{ProductID: p.ID.String(), Recipe: []dto.RecipeLine{}}
	if v == nil {
		return resp, nil
	}
	resp.VariantID = v.ID.String()

	_, byID, err := s.onHandMap(ctx)
	if err != nil {
		return nil, err
	}
	for _, ri := range v.Recipe {
		line := dto.RecipeLine{
			IngredientID:  ri.IngredientID.String(),
			AmountPerUnit: ri.Amount,
			Missing:       decimal.Zero,
		}
		if item, ok := byID[ri.IngredientID]; ok {
			line.Name = item.Name
			line.Unit = item.Unit
			line.InStock = item.Quantity
			if item.Quantity.LessThan(ri.Amount) {
				line.Missing = ri.Amount.Sub(item.Quantity)
			}
		} else {
			line.Missing = ri.Amount
		}
		resp.Recipe = append(resp.Recipe, line)
	}
	return resp, nil
}

func (s *stockService) LowStock(ctx context.Context, threshold *decimal.Decimal) (*dto.LowStockResponse, error) {
	items, err := s.repo.ListLow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItem{
			ID:           it.ID.String(),
			Name:         it.Name,
			Quantity:     it.Quantity,
			ReorderLevel: it.ReorderLevel,
		})
	}
	return &dto.LowStockResponse{LowCount: len(out), Items: out}, nil
}

// Forecast is a naive stock-proxy: projected sellable units per product given
// today's stock position. A real demand model can replace this without
// touching the endpoint shape.
func (s *stockService) Forecast(ctx context.Context) (*dto.ForecastResponse, error) {
	coverage, err := s.ProductsCoverage(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ForecastProduct, 0, len(coverage.Products))
	for _, pc := range coverage.Products {
		out = append(out, dto.ForecastProduct{
			ID:            pc.ID,
			Name:          pc.Name,
			ForecastUnits: pc.Coverage,
		})
	}
	return &dto.ForecastResponse{Products: out}, nil
}

func (s *stockService) Reorder(ctx context.Context, req dto.ReorderStockRequest) (*dto.StockMutationResponse, error) {
	id, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIngredientNotFound, req.IngredientID)
	}
	item, err := s.repo.Adjust(ctx, id, req.Quantity)
	if err != nil {
		return nil, mapStockErr(err, req.IngredientID)
	}
	return mutationResponse(item.ID, &item.Quantity, nil), nil
}

func (s *stockService) Adjust(ctx context.Context, req dto.AdjustStockRequest) (*dto.StockMutationResponse, error) {
	id, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIngredientNotFound, req.IngredientID)
	}
	item, err := s.repo.Adjust(ctx, id, req.Delta)
	if err != nil {
		return nil, mapStockErr(err, req.IngredientID)
	}
	return mutationResponse(item.ID, &item.Quantity, nil), nil
}

func (s *stockService) SetReorderLevel(ctx context.Context, req dto.ReorderLevelRequest) (*dto.StockMutationResponse, error) {
	id, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIngredientNotFound, req.IngredientID)
	}
	item, err := s.repo.SetReorderLevel(ctx, id, req.ReorderLevel)
	if err != nil {
		return nil, mapStockErr(err, req.IngredientID)
	}
	return mutationResponse(item.ID, nil, &item.ReorderLevel), nil
}

func (s *stockService) ListIngredients(ctx context.Context) ([]model.StockItem, error) {
	return s.repo.ListAll(ctx)
}

func mapStockErr(err error, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrIngredientNotFound, id)
	case errors.Is(err, repository.ErrConditionalUpdate):
		return ErrNegativeStock
	default:
		return err
	}
}

func mutationResponse(id uuid.UUID, qty, level *decimal.Decimal) *dto.StockMutationResponse {
	resp := &dto.StockMutationResponse{}
	resp.Item.ID = id.String()
	resp.Item.Quantity = qty
	resp.Item.ReorderLevel = level
	return resp
}
