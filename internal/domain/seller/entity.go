package seller

import (
	"time"

	"dailypay-backend/internal/auth"

	"github.com/google/uuid"
)

type BankInfo struct {
	AccountName   string
	AccountNumber string
	BankName      string
}

// Seller is a shop account. Credentials and moderation flags mirror user.User.
type Seller struct {
	ID              uuid.UUID
	Name            string
	ShopName        string
	Email           string
	PasswordHash    string
	Role            auth.Role
	Phone           string
	Address         string
	ShopLogo        string
	ShopDescription string
	Approved        bool
	Banned          bool
	Suspended       bool
	BankInfo        *BankInfo

	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time

	LastActive *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
