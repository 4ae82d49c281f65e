package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ActionProductCreated   = "product_created"
	ActionProductUpdated   = "product_updated"
	ActionProductDeleted   = "product_deleted"
	ActionProductsImported = "products_imported"
	ActionOrderReceived    = "order_received"
	ActionBankInfoUpdated  = "bank_info_updated"
	ActionPayoutRequested  = "payout_requested"
)

// Entry is one line of a seller's activity trail
type Entry struct {
	ID        uuid.UUID
	SellerID  uuid.UUID
	Action    string
	Details   string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Entry, error)
}
