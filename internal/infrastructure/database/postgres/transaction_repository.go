package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultListLimit = 200

// TransactionRepository implements transaction.Repository on gorm
type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) transaction.Repository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toTransactionModel(t)).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, txID uuid.UUID) (*transaction.Transaction, error) {
	var dbModel models.TransactionModel
	err := r.db.WithContext(ctx).First(&dbModel, "id = ?", txID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return toTransactionEntity(&dbModel), nil
}

func (r *TransactionRepository) List(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var dbModels []models.TransactionModel
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txs := make([]*transaction.Transaction, len(dbModels))
	for i := range dbModels {
		txs[i] = toTransactionEntity(&dbModels[i])
	}
	return txs, nil
}

func (r *TransactionRepository) Count(ctx context.Context, filter transaction.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) SumSales(ctx context.Context, sellerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("seller_id = ? AND type = ?", sellerID, string(transaction.TypeSale)).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, txID uuid.UUID, from, to transaction.Status) error {
	result := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", txID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return transaction.ErrStatusChanged
	}
	return nil
}

func (r *TransactionRepository) filtered(ctx context.Context, filter transaction.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	return query
}

func toTransactionModel(t *transaction.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
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

func toTransactionEntity(m *models.TransactionModel) *transaction.Transaction {
	return &transaction.Transaction{
		ID:                   m.ID,
		Type:                 transaction.Type(m.Type),
		OrderID:              m.OrderID,
		UserID:               m.UserID,
		SellerID:             m.SellerID,
		Amount:               m.Amount,
		TotalAmount:          m.TotalAmount,
		ServiceChargePercent: m.ServiceChargePercent,
		ServiceChargeAmount:  m.ServiceChargeAmount,
		AmountToSeller:       m.AmountToSeller,
		ShippingMethod:       m.ShippingMethod,
		ShippingFee:          m.ShippingFee,
		Status:               transaction.Status(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
