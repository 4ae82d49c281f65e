package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/infrastructure/database/postgres/models"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository implements product.Repository on gorm
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) product.Repository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	stampProduct(p)
	if err := r.db.WithContext(ctx).Create(toProductModel(p)).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateBatch inserts all products in one transaction.
func (r *ProductRepository) CreateBatch(ctx context.Context, products []*product.Product) error {
	if len(products) == 0 {
		return nil
	}

	dbModels := make([]*models.ProductModel, len(products))
	for i, p := range products {
		stampProduct(p)
		dbModels[i] = toProductModel(p)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(dbModels, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to import products: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	var dbModel models.ProductModel
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.ProductModel{ID: p.ID}).
		Select("name", "slug", "description", "price", "qty", "images", "category", "updated_at").
		Updates(toProductModel(p))
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, limit int) ([]*product.Product, error) {
	return r.find(ctx, r.db.WithContext(ctx).Limit(limit))
}

func (r *ProductRepository) Search(ctx context.Context, q string, limit int) ([]*product.Product, error) {
	pattern := "%" + utils.EscapeLike(q) + "%"
	query := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Limit(limit)
	return r.find(ctx, query)
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*product.Product, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Limit(limit))
}

func (r *ProductRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ReserveStock is a single conditional UPDATE, so concurrent orders cannot oversell.
func (r *ProductRepository) ReserveStock(ctx context.Context, productID uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ? AND qty >= ?", productID, qty).
		UpdateColumn("qty", gorm.Expr("qty - ?", qty))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", productID).
		UpdateColumn("qty", gorm.Expr("qty + ?", qty))
	if result.Error != nil {
		return fmt.Errorf("failed to release stock: %w", result.Error)
	}
	return nil
}

func (r *ProductRepository) find(_ context.Context, query *gorm.DB) ([]*product.Product, error) {
	var dbModels []models.ProductModel
	if err := query.Preload("Seller").Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*product.Product, len(dbModels))
	for i := range dbModels {
		products[i] = toProductEntity(&dbModels[i])
	}
	return products, nil
}

func stampProduct(p *product.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

func toProductModel(p *product.Product) *models.ProductModel {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &models.ProductModel{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Qty:         p.Qty,
		Images:      images,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductEntity(m *models.ProductModel) *product.Product {
	p := &product.Product{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Qty:         m.Qty,
		Images:      m.Images,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Seller != nil {
		p.Seller = &product.SellerSummary{
			ID:              m.Seller.ID,
			Name:            m.Seller.Name,
			ShopName:        m.Seller.ShopName,
			ShopLogo:        m.Seller.ShopLogo,
			ShopDescription: m.Seller.ShopDescription,
			Address:         m.Seller.Address,
		}
	}
	return p
}
