package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemModel struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// OrderModel represents the database model for Order
type OrderModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel `gorm:"type:jsonb;serializer:json;not null"`
	Subtotal        decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalAmount     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	ShippingMethod  string           `gorm:"type:varchar(20);not null"`
	ShippingFee     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	ShippingAddress string           `gorm:"type:text"`
	Status          string           `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time        `gorm:"not null;index"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}
