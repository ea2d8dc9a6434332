package service

import (
	"context"
	"errors"
	"fmt"

	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers so they can map to HTTP statuses.
// Wrapped variants carry the offending product or ingredient name.
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrVariantNotFound        = errors.New("variant not found")
	ErrProductInactive        = errors.New("product is not available")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInsufficientIngredient = errors.New("insufficient ingredient stock")
)

var (
	taxRate           = decimal.NewFromFloat(0.085)
	freeShippingFloor = decimal.NewFromInt(50)
	flatShippingFee   = decimal.NewFromFloat(5.99)
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID *uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type orderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	dispatcher  *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:        repo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		dispatcher:  dispatcher,
	}
}

// ── PlaceOrder ────────────────────────────────────────────────────────────────
// Checkout is all-or-nothing:
//   1. Resolve every line (product active, variant exists) — pre-flight, outside TX
//   2. Price the cart: subtotal, 8.5% tax rounded to cents, flat shipping
//      waived at $50
//   3. BEGIN TX: apply deductions line by line with guarded decrements, then
//      insert the order with full product/variant snapshots
//   4. COMMIT — a failed guard on any line rolls back every deduction
//   5. (async) dispatch receipt job
//
// A variant with a recipe consumes ingredient stock only; a variant without
// one consumes its own unit stock only. The guarded UPDATEs re-check
// availability inside the transaction, so two concurrent checkouts can never
// both take the last unit.

func (s *orderService) PlaceOrder(ctx context.Context, userID *uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	type resolvedLine struct {
		product  *model.Product
		variant  *model.Variant
		quantity int
	}

	// 1. Resolve products and variants (pre-flight, outside TX)
	var resolved []resolvedLine
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		vid, err := uuid.Parse(item.VariantID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, item.VariantID)
		}

		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: %s", ErrProductInactive, p.Title)
		}
		v := p.FindVariant(vid)
		if v == nil {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, item.VariantID)
		}

		subtotal = subtotal.Add(v.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedLine{product: p, variant: v, quantity: item.Quantity})
	}

	// Resolve ingredient names up front so failures report something readable
	var ingredientIDs []uuid.UUID
	for _, line := range resolved {
		for _, ri := range line.variant.Recipe {
			ingredientIDs = append(ingredientIDs, ri.IngredientID)
		}
	}
	ingredientName := map[uuid.UUID]string{}
	if len(ingredientIDs) > 0 {
		items, err := s.stockRepo.FindByIDs(ctx, ingredientIDs)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			ingredientName[it.ID] = it.Name
		}
		for _, id := range ingredientIDs {
			if _, ok := ingredientName[id]; !ok {
				return nil, fmt.Errorf("%w: unknown ingredient %s", ErrInsufficientIngredient, id)
			}
		}
	}

	// 2. Pricing
	tax := subtotal.Mul(taxRate).Round(2)
	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingFloor) {
		shipping = decimal.Zero
	}
	total := subtotal.Add(tax).Add(shipping)

	// 3. ACID transaction: deduct, then persist
	var order model.Order
	txErr := s.repo.InTx(ctx, func(tx *gorm.DB) error {
		for _, line := range resolved {
			if len(line.variant.Recipe) > 0 {
				// Produced to order: consume raw materials, leave unit stock alone
				for _, ri := range line.variant.Recipe {
					needed := ri.Amount.Mul(decimal.NewFromInt(int64(line.quantity)))
					if err := s.stockRepo.DecrementTx(tx, ri.IngredientID, needed); err != nil {
						if errors.Is(err, repository.ErrConditionalUpdate) {
							return fmt.Errorf("%w: %s (needs %s)", ErrInsufficientIngredient,
								line.product.Title, ingredientName[ri.IngredientID])
						}
						return err
					}
				}
				continue
			}

			// Pre-made unit: consume variant stock
			if err := s.productRepo.DecrementVariantStockTx(tx, line.variant.ID, line.quantity); err != nil {
				if errors.Is(err, repository.ErrConditionalUpdate) {
					return fmt.Errorf("%w: %s (%s)", ErrInsufficientStock,
						line.product.Title, line.variant.SKU)
				}
				return err
			}
		}

		order = model.Order{
			UserID:        userID,
			CustomerEmail: req.CustomerEmail,
			Status:        model.OrderStatusPending,
			Subtotal:      subtotal,
			Tax:           tax,
			Shipping:      shipping,
			Total:         total,
			ShippingAddr:  req.ShippingAddress.Address(),
			BillingAddr:   req.BillingAddress.Address(),
		}
		for _, line := range resolved {
			// Snapshot the product without its variant list; the purchased
			// variant is stored alongside in full.
			snap := *line.product
			snap.Variants = nil
			order.Items = append(order.Items, model.OrderItem{
				ProductID: line.product.ID,
				VariantID: line.variant.ID,
				Quantity:  line.quantity,
				Product:   snap,
				Variant:   *line.variant,
			})
		}

		return s.repo.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Async receipt job (best-effort — fire & forget)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			OrderID:       order.ID.String(),
			CustomerEmail: req.CustomerEmail,
		})
	}

	return &dto.OrderResponse{Order: order}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return &dto.OrderResponse{Order: *order}, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) (*dto.OrderListResponse, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderListResponse{Orders: orders}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
