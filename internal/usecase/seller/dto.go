package seller

import (
	"time"

	"dailypay-backend/internal/domain/history"
	domainSeller "dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name            string `json:"name" validate:"max=100"`
	ShopName        string `json:"shopName" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	Phone           string `json:"phone" validate:"omitempty,phone"`
	Address         string `json:"address" validate:"max=500"`
	ShopLogo        string `json:"shopLogo" validate:"omitempty,max=1000"`
	ShopDescription string `json:"shopDescription" validate:"max=2000"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// ProductRequest carries a create or a partial update. Nil fields are left
// unchanged on update.
type ProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Qty         *int             `json:"qty" validate:"omitempty,gte=0"`
	Images      []string         `json:"images" validate:"omitempty,max=20,dive,max=1000"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
}

type BankInfoRequest struct {
	AccountName   string `json:"accountName" validate:"required,max=255"`
	AccountNumber string `json:"accountNumber" validate:"required,max=64"`
	BankName      string `json:"bankName" validate:"required,max=255"`
}

type PayoutRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type BankInfoResponse struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

type SellerResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	ShopName        string            `json:"shopName"`
	Email           string            `json:"email"`
	Role            string            `json:"role"`
	Phone           string            `json:"phone,omitempty"`
	Address         string            `json:"address,omitempty"`
	ShopLogo        string            `json:"shopLogo,omitempty"`
	ShopDescription string            `json:"shopDescription,omitempty"`
	Approved        bool              `json:"approved"`
	Banned          bool              `json:"banned"`
	Suspended       bool              `json:"suspended"`
	BankInfo        *BankInfoResponse `json:"bankInfo,omitempty"`
	LastActive      *time.Time        `json:"lastActive,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type AuthResponse struct {
	Seller    *SellerResponse `json:"seller"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type TransactionResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Type                 string          `json:"type"`
	OrderID              *uuid.UUID      `json:"orderId,omitempty"`
	UserID               *uuid.UUID      `json:"userId,omitempty"`
	SellerID             uuid.UUID       `json:"sellerId"`
	Amount               decimal.Decimal `json:"amount"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	ServiceChargePercent decimal.Decimal `json:"serviceChargePercent"`
	ServiceChargeAmount  decimal.Decimal `json:"serviceChargeAmount"`
	AmountToSeller       decimal.Decimal `json:"amountToSeller"`
	ShippingMethod       string          `json:"shippingMethod,omitempty"`
	ShippingFee          decimal.Decimal `json:"shippingFee"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

type DashboardResponse struct {
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	PendingPayouts int64           `json:"pendingPayouts"`
}

type HistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped"`
}

func toBankInfoResponse(b *domainSeller.BankInfo) *BankInfoResponse {
	if b == nil {
		return nil
	}
	return &BankInfoResponse{AccountName: b.AccountName, AccountNumber: b.AccountNumber, BankName: b.BankName}
}

func ToSellerResponse(s *domainSeller.Seller) *SellerResponse {
	return &SellerResponse{
		ID:              s.ID,
		Name:            s.Name,
		ShopName:        s.ShopName,
		Email:           s.Email,
		Role:            string(s.Role),
		Phone:           s.Phone,
		Address:         s.Address,
		ShopLogo:        s.ShopLogo,
		ShopDescription: s.ShopDescription,
		Approved:        s.Approved,
		Banned:          s.Banned,
		Suspended:       s.Suspended,
		BankInfo:        toBankInfoResponse(s.BankInfo),
		LastActive:      s.LastActive,
		CreatedAt:       s.CreatedAt,
	}
}

func ToSellerResponses(sellers []*domainSeller.Seller) []*SellerResponse {
	out := make([]*SellerResponse, len(sellers))
	for i, s := range sellers {
		out[i] = ToSellerResponse(s)
	}
	return out
}

func ToTransactionResponse(t *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		Type:                 string(t.Type),
		OrderID:              t.OrderID,
		UserID:               t.UserID,
		SellerID:             t.SellerID,
		Amount:               t.Amount,
		TotalAmount:          t.TotalAmount,
		ServiceChargePercent: t.ServiceChargePercent,
		ServiceChargeAmount:  t.ServiceChargeAmount,
		AmountToSeller:       t.AmountToSeller,
		ShippingMethod:       t.ShippingMethod,
		ShippingFee:          t.ShippingFee,
		Status:               string(t.Status),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func ToTransactionResponses(txs []*transaction.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

func toHistoryResponses(entries []*history.Entry) []*HistoryResponse {
	out := make([]*HistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = &HistoryResponse{ID: e.ID, Action: e.Action, Details: e.Details, CreatedAt: e.CreatedAt}
	}
	return out
}
