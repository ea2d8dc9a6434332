package dto

import "lilass/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	VariantID string `json:"variantId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type AddressRequest struct {
	FirstName  string `json:"firstName"  validate:"required"`
	LastName   string `json:"lastName"   validate:"required"`
	Company    string `json:"company"`
	Address1   string `json:"address1"   validate:"required"`
	Address2   string `json:"address2"`
	City       string `json:"city"       validate:"required"`
	State      string `json:"state"      validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"    validate:"required"`
	Phone      string `json:"phone"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"           validate:"required,min=1,dive"`
	CustomerEmail   string             `json:"customerEmail"   validate:"required,email"`
	ShippingAddress AddressRequest     `json:"shippingAddress" validate:"required"`
	BillingAddress  AddressRequest     `json:"billingAddress"  validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OrderResponse wraps the persisted order; items embed the full product and
// variant snapshots taken at purchase time.
type OrderResponse struct {
	Order model.Order `json:"order"`
}

type OrderListResponse struct {
	Orders []model.Order `json:"orders"`
}

// Address converts the bound request into the embedded model value.
func (a AddressRequest) Address() model.Address {
	return model.Address{
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Company:    a.Company,
		Address1:   a.Address1,
		Address2:   a.Address2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}
