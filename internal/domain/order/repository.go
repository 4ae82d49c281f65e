package order

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Order, error)
	// ListBySeller returns newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Order, error)
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
}
