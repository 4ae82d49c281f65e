package seller

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, seller *Seller) error
	GetByEmail(ctx context.Context, email string) (*Seller, error)
	GetByID(ctx context.Context, sellerID uuid.UUID) (*Seller, error)
	List(ctx context.Context) ([]*Seller, error)

	SetApproved(ctx context.Context, sellerID uuid.UUID, approved bool) error
	SetBanned(ctx context.Context, sellerID uuid.UUID, banned bool) error
	SetSuspended(ctx context.Context, sellerID uuid.UUID, suspended bool) error
	UpdateBankInfo(ctx context.Context, sellerID uuid.UUID, info BankInfo) error

	SetResetToken(ctx context.Context, sellerID uuid.UUID, hashedToken string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, sellerID uuid.UUID) error
	ConsumeResetToken(ctx context.Context, email, hashedToken string, now time.Time, passwordHash string) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
