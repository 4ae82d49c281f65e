package product

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	CreateBatch(ctx context.Context, products []*Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, productID uuid.UUID) error

	List(ctx context.Context, limit int) ([]*Product, error)
	// Search matches q case-insensitively against name or description.
	Search(ctx context.Context, q string, limit int) ([]*Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Product, error)
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// ReserveStock decrements qty only if enough is on hand.
	ReserveStock(ctx context.Context, productID uuid.UUID, qty int) error
	ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) error
}
