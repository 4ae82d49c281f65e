package user

import (
	"context"
	"time"

	"dailypay-backend/internal/auth"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)

	SetRole(ctx context.Context, userID uuid.UUID, role auth.Role) error
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error
	SetSuspended(ctx context.Context, userID uuid.UUID, suspended bool) error

	// SetResetToken stores the hashed token and its expiry in one update.
	SetResetToken(ctx context.Context, userID uuid.UUID, hashedToken string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error
	// ConsumeResetToken replaces the password hash and clears the reset pair in a
	// single update guarded by email, token and expiry. A miss returns
	// ErrInvalidOrExpiredToken, so a token can succeed at most once.
	ConsumeResetToken(ctx context.Context, email, hashedToken string, now time.Time, passwordHash string) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
