package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository implements order.Repository on gorm
type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) order.Repository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toOrderModel(o)).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	var dbModel models.OrderModel
	err := r.db.WithContext(ctx).First(&dbModel, "id = ?", orderID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toOrderEntity(&dbModel), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(limit))
}

func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Limit(limit))
}

func (r *OrderRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dbModels []models.OrderModel
	if err := query.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(dbModels))
	for i := range dbModels {
		orders[i] = toOrderEntity(&dbModels[i])
	}
	return orders, nil
}

func toOrderModel(o *order.Order) *models.OrderModel {
	items := make([]models.OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = models.OrderItemModel{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	return &models.OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		SellerID:        o.SellerID,
		Items:           items,
		Subtotal:        o.Subtotal,
		TotalAmount:     o.TotalAmount,
		ShippingMethod:  string(o.Shipping.Method),
		ShippingFee:     o.Shipping.Fee,
		ShippingAddress: o.Shipping.Address,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *models.OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.Item{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	return &order.Order{
		ID:          m.ID,
		UserID:      m.UserID,
		SellerID:    m.SellerID,
		Items:       items,
		Subtotal:    m.Subtotal,
		TotalAmount: m.TotalAmount,
		Shipping: order.Shipping{
			Method:  order.ShippingMethod(m.ShippingMethod),
			Fee:     m.ShippingFee,
			Address: m.ShippingAddress,
		},
		Status:    order.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
