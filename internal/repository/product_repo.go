package repository

import (
	"context"
	"strings"

	"lilass/internal/dto"
	"lilass/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for catalog products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
	ListRelated(ctx context.Context, base *model.Product, limit int) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside the order transaction; callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// DecrementVariantStockTx conditionally subtracts qty from variant stock.
	// Returns ErrConditionalUpdate when the guard (stock >= qty) fails, so a
	// concurrent order can never drive stock negative.
	DecrementVariantStockTx(tx *gorm.DB, variantID uuid.UUID, qty int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variants").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variants").
		Where("slug = ? AND active = true", slug).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Variants").
		Where("products.active = true")

	if filter.Search != "" {
		needle := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", needle, needle)
	}
	if filter.Category != "" {
		q = q.Where("categories::jsonb @> ?", `["`+filter.Category+`"]`)
	}
	if filter.Featured != "" {
		q = q.Where("featured = ?", filter.Featured == "true")
	}
	if filter.Tags != "" {
		for _, tag := range strings.Split(filter.Tags, ",") {
			q = q.Where("tags::jsonb @> ?", `["`+strings.TrimSpace(tag)+`"]`)
		}
	}
	if filter.Min != "" {
		if min, err := decimal.NewFromString(filter.Min); err == nil {
			q = q.Where("EXISTS (SELECT 1 FROM variants v WHERE v.product_id = products.id AND v.price >= ?)", min)
		}
	}
	if filter.Max != "" {
		if max, err := decimal.NewFromString(filter.Max); err == nil {
			q = q.Where("EXISTS (SELECT 1 FROM variants v WHERE v.product_id = products.id AND v.price <= ?)", max)
		}
	}

	switch filter.Sort {
	case "price_asc":
		q = q.Order("(SELECT MIN(v.price) FROM variants v WHERE v.product_id = products.id) ASC")
	case "price_desc":
		q = q.Order("(SELECT MIN(v.price) FROM variants v WHERE v.product_id = products.id) DESC")
	default:
		q = q.Order("created_at DESC")
	}

	offset := (filter.Page - 1) * filter.PageSize
	var products []model.Product
	err := q.Offset(offset).Limit(filter.PageSize).Find(&products).Error
	return products, err
}

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Variants").
		Where("active = true").Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Variants").
		Where("active = true AND featured = true").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) ListRelated(ctx context.Context, base *model.Product, limit int) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Preload("Variants").
		Where("id <> ? AND active = true", base.ID)

	var conds []string
	var args []interface{}
	for _, c := range base.Categories {
		conds = append(conds, "categories::jsonb @> ?")
		args = append(args, `["`+c+`"]`)
	}
	for _, t := range base.Tags {
		conds = append(conds, "tags::jsonb @> ?")
		args = append(args, `["`+t+`"]`)
	}
	if len(conds) > 0 {
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var products []model.Product
	err := q.Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Variants").Delete(&model.Product{ID: id}).Error
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Preload("Variants").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) DecrementVariantStockTx(tx *gorm.DB, variantID uuid.UUID, qty int) error {
	res := tx.Model(&model.Variant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionalUpdate
	}
	return nil
}

