package service

import (
	"context"
	"fmt"
	"strings"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"

	"github.com/google/uuid"
)

// StoreService backs the admin product screen. The dashboard edits a flat
// single-variant shape; this service maps it onto Product + first Variant.
type StoreService interface {
	ListProducts(ctx context.Context) (*dto.StoreProductListResponse, error)
	CreateProduct(ctx context.Context, req dto.CreateStoreProductRequest) (*dto.StoreProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateStoreProductRequest) (*dto.StoreProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type storeService struct {
	repo repository.ProductRepository
}

func NewStoreService(repo repository.ProductRepository) StoreService {
	return &storeService{repo: repo}
}

// slugify lowercases the name, replaces runs of non-alphanumerics with
// hyphens, and appends a short random suffix so renames never collide.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "product"
	}
	return slug + "-" + uuid.NewString()[:8]
}

func toStoreProduct(p *model.Product) dto.StoreProduct {
	sp := dto.StoreProduct{
		ID:      p.ID.String(),
		Name:    p.Title,
		AddedAt: p.CreatedAt.Format("2006-01-02"),
	}
	if len(p.Categories) > 0 {
		sp.Category = p.Categories[0]
	}
	if p.Description != nil {
		sp.Description = *p.Description
	}
	if len(p.Images) > 0 {
		sp.ImageURL = p.Images[0]
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		sp.Price = v.Price
		sp.SKU = v.SKU
		sp.Stock = v.Stock
		sp.Unit = v.Attributes["unit"]
		sp.Size = v.Attributes["size"]
	}
	return sp
}

func (s *storeService) ListProducts(ctx context.Context) (*dto.StoreProductListResponse, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreProduct, 0, len(products))
	for i := range products {
		out = append(out, toStoreProduct(&products[i]))
	}
	return &dto.StoreProductListResponse{Products: out}, nil
}

func (s *storeService) CreateProduct(ctx context.Context, req dto.CreateStoreProductRequest) (*dto.StoreProductResponse, error) {
	p := &model.Product{
		Title:      req.Name,
		Slug:       slugify(req.Name),
		Categories: []string{req.Category},
		Active:     true,
	}
	if req.Description != "" {
		desc := req.Description
		p.Description = &desc
	}
	if req.ImageURL != "" {
		p.Images = []string{req.ImageURL}
	}

	attrs := map[string]string{}
	if req.Unit != "" {
		attrs["unit"] = req.Unit
	}
	if req.Size != "" {
		attrs["size"] = req.Size
	}
	p.Variants = []model.Variant{{
		SKU:        req.SKU,
		Title:      req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		Attributes: attrs,
		Active:     true,
	}}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toStoreProduct(p)
	return &dto.StoreProductResponse{Product: resp}, nil
}

func (s *storeService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateStoreProductRequest) (*dto.StoreProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	if req.Name != nil {
		p.Title = *req.Name
	}
	if req.Category != nil {
		p.Categories = []string{*req.Category}
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ImageURL != nil {
		p.Images = []string{*req.ImageURL}
	}

	if len(p.Variants) > 0 {
		v := &p.Variants[0]
		if req.Name != nil {
			v.Title = *req.Name
		}
		if req.Price != nil {
			v.Price = *req.Price
		}
		if req.SKU != nil {
			v.SKU = *req.SKU
		}
		if req.Stock != nil {
			v.Stock = *req.Stock
		}
		if v.Attributes == nil {
			v.Attributes = map[string]string{}
		}
		if req.Unit != nil {
			v.Attributes["unit"] = *req.Unit
		}
		if req.Size != nil {
			v.Attributes["size"] = *req.Size
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toStoreProduct(p)
	return &dto.StoreProductResponse{Product: resp}, nil
}

func (s *storeService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}
