package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		for i := range p.Variants {
			if p.Variants[i].ID == uuid.Nil {
				p.Variants[i].ID = uuid.New()
			}
			p.Variants[i].ProductID = p.ID
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListFeatured(_ context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListRelated(_ context.Context, _ *model.Product, _ int) ([]model.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) DecrementVariantStockTx(_ *gorm.DB, variantID uuid.UUID, qty int) error {
	for _, p := range r.products {
		for i := range p.Variants {
			v := &p.Variants[i]
			if v.ID != variantID {
				continue
			}
			if v.Stock < qty {
				return repository.ErrConditionalUpdate
			}
			v.Stock -= qty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubStockRepo is an in-memory StockRepository with the same conditional
// guards as the real one.
type stubStockRepo struct {
	items map[uuid.UUID]*model.StockItem
}

func newStubStockRepo(items ...*model.StockItem) *stubStockRepo {
	r := &stubStockRepo{items: make(map[uuid.UUID]*model.StockItem)}
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		r.items[it.ID] = it
	}
	return r
}

func (r *stubStockRepo) Create(_ context.Context, item *model.StockItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *stubStockRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.StockItem, error) {
	var out []model.StockItem
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubStockRepo) ListAll(_ context.Context) ([]model.StockItem, error) {
	out := make([]model.StockItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, nil
}

func (r *stubStockRepo) ListLow(_ context.Context, threshold *decimal.Decimal) ([]model.StockItem, error) {
	var out []model.StockItem
	for _, it := range r.items {
		floor := it.ReorderLevel
		if threshold != nil {
			floor = *threshold
		}
		if it.Quantity.LessThanOrEqual(floor) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubStockRepo) Adjust(_ context.Context, id uuid.UUID, delta decimal.Decimal) (*model.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	next := it.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, repository.ErrConditionalUpdate
	}
	it.Quantity = next
	return it, nil
}

func (r *stubStockRepo) SetReorderLevel(_ context.Context, id uuid.UUID, level decimal.Decimal) (*model.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	it.ReorderLevel = level
	return it, nil
}

func (r *stubStockRepo) DecrementTx(_ *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if it.Quantity.LessThan(amount) {
		return repository.ErrConditionalUpdate
	}
	it.Quantity = it.Quantity.Sub(amount)
	return nil
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

// stubOrderRepo captures persisted orders. Its InTx mirrors the database
// rollback: sibling stubs are snapshotted before the callback runs and
// restored when it fails, so a deduction from an earlier line never survives
// a failed later line.
type stubOrderRepo struct {
	orders      map[uuid.UUID]*model.Order
	productRepo *stubProductRepo
	stockRepo   *stubStockRepo
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListBetween(_ context.Context, start, end time.Time) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	variantStock := map[uuid.UUID]int{}
	if r.productRepo != nil {
		for _, p := range r.productRepo.products {
			for i := range p.Variants {
				variantStock[p.Variants[i].ID] = p.Variants[i].Stock
			}
		}
	}
	quantities := map[uuid.UUID]decimal.Decimal{}
	if r.stockRepo != nil {
		for id, it := range r.stockRepo.items {
			quantities[id] = it.Quantity
		}
	}

	err := fn(nil)
	if err == nil {
		return nil
	}

	if r.productRepo != nil {
		for _, p := range r.productRepo.products {
			for i := range p.Variants {
				p.Variants[i].Stock = variantStock[p.Variants[i].ID]
			}
		}
	}
	if r.stockRepo != nil {
		for id, it := range r.stockRepo.items {
			it.Quantity = quantities[id]
		}
	}
	return err
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// orderService wires the stubs together so the order repo can roll the others
// back, the way the shared database transaction does in production.
func orderService(orderRepo *stubOrderRepo, products *stubProductRepo, stock *stubStockRepo) service.OrderService {
	orderRepo.productRepo = products
	orderRepo.stockRepo = stock
	return service.NewOrderService(orderRepo, products, stock, nil)
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func beansProduct() *model.Product {
	return &model.Product{
		Title:      "House Blend Coffee Beans",
		Slug:       "house-blend-coffee-beans",
		Categories: []string{"beans"},
		Active:     true,
		Variants: []model.Variant{
			{SKU: "COF-BEAN-250", Title: "250g bag", Price: decimal.RequireFromString("9.99"), Stock: 120, Active: true},
			{SKU: "COF-BEAN-1000", Title: "1kg bag", Price: decimal.RequireFromString("29.99"), Stock: 45, Active: true},
		},
	}
}

func latteProduct(beansID, milkID, sugarID uuid.UUID) *model.Product {
	return &model.Product{
		Title:      "Cafe Latte",
		Slug:       "cafe-latte",
		Categories: []string{"drinks"},
		Active:     true,
		Variants: []model.Variant{
			{
				SKU:    "LATTE-REG",
				Title:  "Regular",
				Price:  decimal.RequireFromString("4.50"),
				Active: true,
				Recipe: []model.RecipeItem{
					{IngredientID: beansID, Amount: decimal.NewFromInt(18)},
					{IngredientID: milkID, Amount: decimal.NewFromInt(220)},
					{IngredientID: sugarID, Amount: decimal.NewFromInt(5)},
				},
			},
		},
	}
}

func pantry() (*stubStockRepo, *model.StockItem, *model.StockItem, *model.StockItem) {
	beans := &model.StockItem{Name: "Coffee Beans", Unit: "g", Quantity: decimal.NewFromInt(100000)}
	milk := &model.StockItem{Name: "Milk", Unit: "ml", Quantity: decimal.NewFromInt(50000)}
	sugar := &model.StockItem{Name: "Sugar", Unit: "g", Quantity: decimal.NewFromInt(20000)}
	return newStubStockRepo(beans, milk, sugar), beans, milk, sugar
}

func orderRequest(p *model.Product, variantIdx, qty int) dto.CreateOrderRequest {
	addr := dto.AddressRequest{
		FirstName: "Ava", LastName: "Clarke",
		Address1: "12 Bean St", City: "Portland", State: "OR",
		PostalCode: "97201", Country: "US",
	}
	return dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{
			ProductID: p.ID.String(),
			VariantID: p.Variants[variantIdx].ID.String(),
			Quantity:  qty,
		}},
		CustomerEmail:   "ava@example.com",
		ShippingAddress: addr,
		BillingAddress:  addr,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPlaceOrderPricing(t *testing.T) {
	beans := beansProduct()
	productRepo := newStubProductRepo(beans)
	stockRepo, _, _, _ := pantry()
	orderRepo := newStubOrderRepo()
	svc := orderService(orderRepo, productRepo, stockRepo)

	// 2 × 9.99 = 19.98 — below the free-shipping floor
	resp, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 0, 2))
	require.NoError(t, err)

	o := resp.Order
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("19.98")), "subtotal %s", o.Subtotal)
	assert.True(t, o.Tax.Equal(decimal.RequireFromString("1.70")), "tax %s", o.Tax)
	assert.True(t, o.Shipping.Equal(decimal.RequireFromString("5.99")), "shipping %s", o.Shipping)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("27.67")), "total %s", o.Total)
	assert.Equal(t, model.OrderStatusPending, o.Status)
}

func TestPlaceOrderFreeShippingOverFifty(t *testing.T) {
	beans := beansProduct()
	productRepo := newStubProductRepo(beans)
	stockRepo, _, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), productRepo, stockRepo)

	// 2 × 29.99 = 59.98 ≥ 50
	resp, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 1, 2))
	require.NoError(t, err)

	assert.True(t, resp.Order.Shipping.IsZero(), "shipping %s", resp.Order.Shipping)
	assert.True(t, resp.Order.Total.Equal(decimal.RequireFromString("65.08")), "total %s", resp.Order.Total)
}

func TestPlaceOrderRecipeConsumesIngredientsOnly(t *testing.T) {
	stockRepo, beansItem, milkItem, sugarItem := pantry()
	latte := latteProduct(beansItem.ID, milkItem.ID, sugarItem.ID)
	productRepo := newStubProductRepo(latte)
	svc := orderService(newStubOrderRepo(), productRepo, stockRepo)

	_, err := svc.PlaceOrder(context.Background(), nil, orderRequest(latte, 0, 2))
	require.NoError(t, err)

	assert.True(t, beansItem.Quantity.Equal(decimal.NewFromInt(99964)), "beans %s", beansItem.Quantity)
	assert.True(t, milkItem.Quantity.Equal(decimal.NewFromInt(49560)), "milk %s", milkItem.Quantity)
	assert.True(t, sugarItem.Quantity.Equal(decimal.NewFromInt(19990)), "sugar %s", sugarItem.Quantity)
	// The recipe variant's own unit stock is not touched
	assert.Equal(t, 0, latte.Variants[0].Stock)
}

func TestPlaceOrderPlainVariantConsumesUnitStock(t *testing.T) {
	beans := beansProduct()
	productRepo := newStubProductRepo(beans)
	stockRepo, beansItem, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), productRepo, stockRepo)

	_, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 0, 3))
	require.NoError(t, err)

	assert.Equal(t, 117, beans.Variants[0].Stock)
	// Raw materials are not touched for pre-made units
	assert.True(t, beansItem.Quantity.Equal(decimal.NewFromInt(100000)))
}

func TestPlaceOrderInsufficientIngredient(t *testing.T) {
	beansItem := &model.StockItem{Name: "Coffee Beans", Unit: "g", Quantity: decimal.NewFromInt(100000)}
	milkItem := &model.StockItem{Name: "Milk", Unit: "ml", Quantity: decimal.NewFromInt(200)}
	sugarItem := &model.StockItem{Name: "Sugar", Unit: "g", Quantity: decimal.NewFromInt(20000)}
	stockRepo := newStubStockRepo(beansItem, milkItem, sugarItem)
	latte := latteProduct(beansItem.ID, milkItem.ID, sugarItem.ID)
	orderRepo := newStubOrderRepo()
	svc := orderService(orderRepo, newStubProductRepo(latte), stockRepo)

	_, err := svc.PlaceOrder(context.Background(), nil, orderRequest(latte, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInsufficientIngredient)
	assert.Contains(t, err.Error(), "Cafe Latte")
	assert.Contains(t, err.Error(), "Milk")
	assert.Empty(t, orderRepo.orders, "no order may be persisted on a failed deduction")

	// Beans were deducted before milk failed; the rollback must undo that too.
	assert.True(t, beansItem.Quantity.Equal(decimal.NewFromInt(100000)), "beans %s", beansItem.Quantity)
	assert.True(t, milkItem.Quantity.Equal(decimal.NewFromInt(200)), "milk %s", milkItem.Quantity)
	assert.True(t, sugarItem.Quantity.Equal(decimal.NewFromInt(20000)), "sugar %s", sugarItem.Quantity)
}

func TestPlaceOrderRollsBackAcrossLines(t *testing.T) {
	beansItem := &model.StockItem{Name: "Coffee Beans", Unit: "g", Quantity: decimal.NewFromInt(100000)}
	milkItem := &model.StockItem{Name: "Milk", Unit: "ml", Quantity: decimal.NewFromInt(100)}
	sugarItem := &model.StockItem{Name: "Sugar", Unit: "g", Quantity: decimal.NewFromInt(20000)}
	stockRepo := newStubStockRepo(beansItem, milkItem, sugarItem)

	beans := beansProduct()
	latte := latteProduct(beansItem.ID, milkItem.ID, sugarItem.ID)
	productRepo := newStubProductRepo(beans, latte)
	orderRepo := newStubOrderRepo()
	svc := orderService(orderRepo, productRepo, stockRepo)

	// Line 1 (pre-made beans) deducts unit stock, then line 2 (latte) fails on
	// milk. The whole checkout must leave every stock level as it found it.
	addr := dto.AddressRequest{
		FirstName: "Ava", LastName: "Clarke",
		Address1: "12 Bean St", City: "Portland", State: "OR",
		PostalCode: "97201", Country: "US",
	}
	req := dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: beans.ID.String(), VariantID: beans.Variants[0].ID.String(), Quantity: 2},
			{ProductID: latte.ID.String(), VariantID: latte.Variants[0].ID.String(), Quantity: 1},
		},
		CustomerEmail:   "ava@example.com",
		ShippingAddress: addr,
		BillingAddress:  addr,
	}

	_, err := svc.PlaceOrder(context.Background(), nil, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInsufficientIngredient)

	assert.Equal(t, 120, beans.Variants[0].Stock, "unit stock from line 1 must be restored")
	assert.True(t, beansItem.Quantity.Equal(decimal.NewFromInt(100000)), "beans %s", beansItem.Quantity)
	assert.True(t, milkItem.Quantity.Equal(decimal.NewFromInt(100)), "milk %s", milkItem.Quantity)
	assert.True(t, sugarItem.Quantity.Equal(decimal.NewFromInt(20000)), "sugar %s", sugarItem.Quantity)
	assert.Empty(t, orderRepo.orders)
}

func TestPlaceOrderInsufficientVariantStock(t *testing.T) {
	beans := beansProduct()
	beans.Variants[0].Stock = 1
	orderRepo := newStubOrderRepo()
	stockRepo, _, _, _ := pantry()
	svc := orderService(orderRepo, newStubProductRepo(beans), stockRepo)

	_, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 0, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "COF-BEAN-250")
	assert.Empty(t, orderRepo.orders)
	assert.Equal(t, 1, beans.Variants[0].Stock, "failed guard must not change stock")
}

func TestPlaceOrderInactiveProduct(t *testing.T) {
	beans := beansProduct()
	beans.Active = false
	stockRepo, _, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), newStubProductRepo(beans), stockRepo)

	_, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 0, 1))
	assert.ErrorIs(t, err, service.ErrProductInactive)
}

func TestPlaceOrderUnknownVariant(t *testing.T) {
	beans := beansProduct()
	stockRepo, _, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), newStubProductRepo(beans), stockRepo)

	req := orderRequest(beans, 0, 1)
	req.Items[0].VariantID = uuid.NewString()
	_, err := svc.PlaceOrder(context.Background(), nil, req)
	assert.ErrorIs(t, err, service.ErrVariantNotFound)
}

func TestPlaceOrderSnapshotsProductAndVariant(t *testing.T) {
	beans := beansProduct()
	stockRepo, _, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), newStubProductRepo(beans), stockRepo)

	resp, err := svc.PlaceOrder(context.Background(), nil, orderRequest(beans, 0, 1))
	require.NoError(t, err)
	require.Len(t, resp.Order.Items, 1)

	item := resp.Order.Items[0]
	assert.Equal(t, "House Blend Coffee Beans", item.Product.Title)
	assert.Nil(t, item.Product.Variants, "snapshot must not carry the variant list")
	assert.Equal(t, "COF-BEAN-250", item.Variant.SKU)
	assert.True(t, item.Variant.Price.Equal(decimal.RequireFromString("9.99")))

	// Later catalog edits must not leak into the stored snapshot
	beans.Title = "Renamed Blend"
	assert.Equal(t, "House Blend Coffee Beans", item.Product.Title)
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	orderRepo := newStubOrderRepo()
	o := &model.Order{CustomerEmail: "ava@example.com", Status: model.OrderStatusPending}
	require.NoError(t, orderRepo.Create(context.Background(), nil, o))

	stockRepo, _, _, _ := pantry()
	svc := orderService(orderRepo, newStubProductRepo(), stockRepo)

	err := svc.UpdateStatus(context.Background(), o.ID, "baked")
	require.Error(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), o.ID, model.OrderStatusShipped))
	assert.Equal(t, model.OrderStatusShipped, o.Status)
}

func TestGetOrderNotFound(t *testing.T) {
	stockRepo, _, _, _ := pantry()
	svc := orderService(newStubOrderRepo(), newStubProductRepo(), stockRepo)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, service.ErrOrderNotFound))
}
