package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. The set is metadata only: nothing in this codebase
// transitions an order past "pending".
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Address is a postal address embedded in orders as a JSON value.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Company    string `json:"company,omitempty"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order is the persisted outcome of a checkout. It is created once and never
// mutated by the order flow.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        *uuid.UUID      `gorm:"type:uuid;index" json:"userId,omitempty"`
	CustomerEmail string          `gorm:"index;not null" json:"customerEmail"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
	Shipping      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	ShippingAddr  Address         `gorm:"serializer:json" json:"shippingAddress"`
	BillingAddr   Address         `gorm:"serializer:json" json:"billingAddress"`
	PaymentID     *uuid.UUID      `gorm:"type:uuid" json:"paymentId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one purchased line. Product and Variant are full JSON copies
// taken at purchase time — owned by the order, never re-fetched from the
// catalog, so later catalog edits cannot rewrite order history.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	VariantID uuid.UUID `gorm:"type:uuid;not null" json:"variantId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   Product   `gorm:"serializer:json" json:"product"`
	Variant   Variant   `gorm:"serializer:json" json:"variant"`
}
