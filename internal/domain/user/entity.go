package user

import (
	"time"

	"dailypay-backend/internal/auth"

	"github.com/google/uuid"
)

// User is a shopper account
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // stored lowercase and trimmed
	PasswordHash string
	Role         auth.Role
	Banned       bool
	Suspended    bool

	// set and cleared together
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time

	LastActive *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
