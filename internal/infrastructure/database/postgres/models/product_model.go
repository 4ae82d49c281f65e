package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel represents the database model for Product
type ProductModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seller      *SellerModel    `gorm:"foreignKey:SellerID"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Slug        string          `gorm:"type:varchar(300);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Qty         int             `gorm:"not null"`
	Images      []string        `gorm:"type:jsonb;serializer:json"`
	Category    *string         `gorm:"type:varchar(100);index"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}
