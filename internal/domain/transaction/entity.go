package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeSale   Type = "sale"
	TypePayout Type = "payout"
)

type Status string

const (
	// sale lifecycle
	StatusPending Status = "pending"
	StatusSettled Status = "settled"

	// payout lifecycle
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusRejected  Status = "rejected"
)

// Transaction is a ledger line for a seller. Sales carry the service charge
// split; payouts carry only Amount.
type Transaction struct {
	ID                   uuid.UUID
	Type                 Type
	OrderID              *uuid.UUID
	UserID               *uuid.UUID
	SellerID             uuid.UUID
	Amount               decimal.Decimal
	TotalAmount          decimal.Decimal
	ServiceChargePercent decimal.Decimal
	ServiceChargeAmount  decimal.Decimal
	AmountToSeller       decimal.Decimal
	ShippingMethod       string
	ShippingFee          decimal.Decimal
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SplitSale computes the service charge and the seller's share of total,
// rounded to cents.
func SplitSale(total, percent decimal.Decimal) (charge, toSeller decimal.Decimal) {
	charge = total.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	toSeller = total.Sub(charge)
	return charge, toSeller
}
