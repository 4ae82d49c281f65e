package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel represents the database model for Transaction
type TransactionModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type                 string          `gorm:"type:varchar(20);not null;index"`
	OrderID              *uuid.UUID      `gorm:"type:uuid;index"`
	UserID               *uuid.UUID      `gorm:"type:uuid"`
	SellerID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAmount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ServiceChargePercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	ServiceChargeAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AmountToSeller       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingMethod       string          `gorm:"type:varchar(20)"`
	ShippingFee          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status               string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt            time.Time       `gorm:"not null;index"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// HistoryModel represents the database model for a seller history entry
type HistoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(50);not null"`
	Details   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (HistoryModel) TableName() string {
	return "seller_history"
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&SellerModel{},
		&ProductModel{},
		&OrderModel{},
		&TransactionModel{},
		&HistoryModel{},
	}
}
