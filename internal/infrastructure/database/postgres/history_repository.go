package postgres

import (
	"context"
	"fmt"
	"time"

	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type HistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) history.Repository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, e *history.Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()

	dbModel := &models.HistoryModel{
		ID:        e.ID,
		SellerID:  e.SellerID,
		Action:    e.Action,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*history.Entry, error) {
	var dbModels []models.HistoryModel
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*history.Entry, len(dbModels))
	for i, m := range dbModels {
		entries[i] = &history.Entry{
			ID:        m.ID,
			SellerID:  m.SellerID,
			Action:    m.Action,
			Details:   m.Details,
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, nil
}
