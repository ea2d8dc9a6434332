package service

import (
	"context"
	"fmt"

	"lilass/internal/dto"
	"lilass/internal/repository"

	"github.com/google/uuid"
)

const relatedLimit = 4

type CatalogService interface {
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	GetProductBySlug(ctx context.Context, slug string) (*dto.ProductResponse, error)
	RelatedProducts(ctx context.Context, productID uuid.UUID) (*dto.ProductListResponse, error)
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 24
	}
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: products}, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, slug)
	}
	return &dto.ProductResponse{Product: *p}, nil
}

// RelatedProducts returns up to 4 active products sharing a category or tag
// with the given product.
func (s *catalogService) RelatedProducts(ctx context.Context, productID uuid.UUID) (*dto.ProductListResponse, error) {
	base, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	products, err := s.repo.ListRelated(ctx, base, relatedLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: products}, nil
}
