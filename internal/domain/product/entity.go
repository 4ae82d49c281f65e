package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerSummary is the public slice of a seller shown next to a product
type SellerSummary struct {
	ID              uuid.UUID
	Name            string
	ShopName        string
	ShopLogo        string
	ShopDescription string
	Address         string
}

type Product struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Qty         int
	Images      []string
	Category    *string
	Seller      *SellerSummary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
