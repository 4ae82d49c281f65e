package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/infrastructure/database/postgres/models"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerRepository implements seller.Repository on gorm
type SellerRepository struct {
	db *DB
}

func NewSellerRepository(db *DB) seller.Repository {
	return &SellerRepository{db: db}
}

func (r *SellerRepository) Create(ctx context.Context, s *seller.Seller) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toSellerModel(s)).Error; err != nil {
		if isUniqueViolation(err) {
			return seller.ErrSellerExists
		}
		return fmt.Errorf("failed to create seller: %w", err)
	}

	return nil
}

func (r *SellerRepository) GetByEmail(ctx context.Context, email string) (*seller.Seller, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *SellerRepository) GetByID(ctx context.Context, sellerID uuid.UUID) (*seller.Seller, error) {
	return r.first(ctx, "id = ?", sellerID)
}

func (r *SellerRepository) first(ctx context.Context, query string, arg interface{}) (*seller.Seller, error) {
	var dbModel models.SellerModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, seller.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	return toSellerEntity(&dbModel), nil
}

func (r *SellerRepository) List(ctx context.Context) ([]*seller.Seller, error) {
	var dbModels []models.SellerModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}

	sellers := make([]*seller.Seller, len(dbModels))
	for i := range dbModels {
		sellers[i] = toSellerEntity(&dbModels[i])
	}
	return sellers, nil
}

func (r *SellerRepository) SetApproved(ctx context.Context, sellerID uuid.UUID, approved bool) error {
	return r.expectRow(r.db.setColumn(ctx, &models.SellerModel{}, sellerID, "approved", approved))
}

func (r *SellerRepository) SetBanned(ctx context.Context, sellerID uuid.UUID, banned bool) error {
	return r.expectRow(r.db.setColumn(ctx, &models.SellerModel{}, sellerID, "banned", banned))
}

func (r *SellerRepository) SetSuspended(ctx context.Context, sellerID uuid.UUID, suspended bool) error {
	return r.expectRow(r.db.setColumn(ctx, &models.SellerModel{}, sellerID, "suspended", suspended))
}

func (r *SellerRepository) UpdateBankInfo(ctx context.Context, sellerID uuid.UUID, info seller.BankInfo) error {
	result := r.db.WithContext(ctx).Model(&models.SellerModel{}).
		Where("id = ?", sellerID).
		Updates(map[string]interface{}{
			"bank_account_name":   info.AccountName,
			"bank_account_number": info.AccountNumber,
			"bank_bank_name":      info.BankName,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update bank info: %w", result.Error)
	}
	return r.expectRow(result.RowsAffected, nil)
}

func (r *SellerRepository) SetResetToken(ctx context.Context, sellerID uuid.UUID, hashedToken string, expiresAt time.Time) error {
	return r.expectRow(r.db.setResetToken(ctx, &models.SellerModel{}, sellerID, hashedToken, expiresAt))
}

func (r *SellerRepository) ClearResetToken(ctx context.Context, sellerID uuid.UUID) error {
	return r.expectRow(r.db.clearResetToken(ctx, &models.SellerModel{}, sellerID))
}

func (r *SellerRepository) ConsumeResetToken(ctx context.Context, email, hashedToken string, now time.Time, passwordHash string) error {
	rows, err := r.db.consumeResetToken(ctx, &models.SellerModel{}, email, hashedToken, now, passwordHash)
	if err != nil {
		return err
	}
	if rows == 0 {
		return appErrors.ErrInvalidOrExpiredToken
	}
	return nil
}

func (r *SellerRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.db.clearExpiredResetTokens(ctx, &models.SellerModel{}, now)
}

func (r *SellerRepository) expectRow(rows int64, err error) error {
	if err != nil {
		return err
	}
	if rows == 0 {
		return seller.ErrSellerNotFound
	}
	return nil
}

func toSellerModel(s *seller.Seller) *models.SellerModel {
	m := &models.SellerModel{
		ID:                   s.ID,
		Name:                 s.Name,
		ShopName:             s.ShopName,
		Email:                s.Email,
		PasswordHash:         s.PasswordHash,
		Role:                 string(s.Role),
		Phone:                s.Phone,
		Address:              s.Address,
		ShopLogo:             s.ShopLogo,
		ShopDescription:      s.ShopDescription,
		Approved:             s.Approved,
		Banned:               s.Banned,
		Suspended:            s.Suspended,
		ResetPasswordToken:   s.ResetPasswordToken,
		ResetPasswordExpires: s.ResetPasswordExpires,
		LastActive:           s.LastActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
	if s.BankInfo != nil {
		m.BankInfo = models.BankInfoModel{
			AccountName:   s.BankInfo.AccountName,
			AccountNumber: s.BankInfo.AccountNumber,
			BankName:      s.BankInfo.BankName,
		}
	}
	return m
}

func toSellerEntity(m *models.SellerModel) *seller.Seller {
	s := &seller.Seller{
		ID:                   m.ID,
		Name:                 m.Name,
		ShopName:             m.ShopName,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		Role:                 auth.Role(m.Role),
		Phone:                m.Phone,
		Address:              m.Address,
		ShopLogo:             m.ShopLogo,
		ShopDescription:      m.ShopDescription,
		Approved:             m.Approved,
		Banned:               m.Banned,
		Suspended:            m.Suspended,
		ResetPasswordToken:   m.ResetPasswordToken,
		ResetPasswordExpires: m.ResetPasswordExpires,
		LastActive:           m.LastActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.BankInfo != (models.BankInfoModel{}) {
		s.BankInfo = &seller.BankInfo{
			AccountName:   m.BankInfo.AccountName,
			AccountNumber: m.BankInfo.AccountNumber,
			BankName:      m.BankInfo.BankName,
		}
	}
	return s
}
