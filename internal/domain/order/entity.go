package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type ShippingMethod string

const (
	ShippingPickup   ShippingMethod = "pickup"
	ShippingDelivery ShippingMethod = "delivery"
)

type Item struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Qty       int
}

type Shipping struct {
	Method  ShippingMethod
	Fee     decimal.Decimal
	Address string
}

type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SellerID    uuid.UUID
	Items       []Item
	Subtotal    decimal.Decimal
	TotalAmount decimal.Decimal
	Shipping    Shipping
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
