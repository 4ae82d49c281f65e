package order

import (
	"time"

	domainOrder "dailypay-backend/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gte=1,lte=1000"`
}

type ShippingRequest struct {
	Method  string          `json:"method" validate:"required,shipping_method"`
	Fee     decimal.Decimal `json:"fee"`
	Address string          `json:"address" validate:"max=500"`
}

type CreateOrderRequest struct {
	Items    []ItemRequest   `json:"items" validate:"required,min=1,max=100,dive"`
	Shipping ShippingRequest `json:"shipping"`
}

type ItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

type ShippingResponse struct {
	Method  string          `json:"method"`
	Fee     decimal.Decimal `json:"fee"`
	Address string          `json:"address,omitempty"`
}

type OrderResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	SellerID    uuid.UUID        `json:"sellerId"`
	Items       []ItemResponse   `json:"items"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	Shipping    ShippingResponse `json:"shipping"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func ToOrderResponse(o *domainOrder.Order) *OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemResponse{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	return &OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		SellerID:    o.SellerID,
		Items:       items,
		Subtotal:    o.Subtotal,
		TotalAmount: o.TotalAmount,
		Shipping: ShippingResponse{
			Method:  string(o.Shipping.Method),
			Fee:     o.Shipping.Fee,
			Address: o.Shipping.Address,
		},
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func ToOrderResponses(orders []*domainOrder.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}
