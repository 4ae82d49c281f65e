package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Filter struct {
	SellerID *uuid.UUID
	Type     Type
	Status   Status
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, txID uuid.UUID) (*Transaction, error)
	// List returns newest first.
	List(ctx context.Context, filter Filter) ([]*Transaction, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	SumSales(ctx context.Context, sellerID uuid.UUID) (decimal.Decimal, error)
	// UpdateStatus moves a transaction from one status to another in one guarded update.
	UpdateStatus(ctx context.Context, txID uuid.UUID, from, to Status) error
}
