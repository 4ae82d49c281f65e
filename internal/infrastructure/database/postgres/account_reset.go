package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reset-token columns are shared by users and sellers. Every helper writes
// token and expiry in the same UPDATE so they are never observed apart.

func (d *DB) setResetToken(ctx context.Context, model interface{}, id uuid.UUID, hashed string, expiresAt time.Time) (int64, error) {
	result := d.WithContext(ctx).Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_password_token":   hashed,
			"reset_password_expires": expiresAt,
			"updated_at":             time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set reset token: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (d *DB) clearResetToken(ctx context.Context, model interface{}, id uuid.UUID) (int64, error) {
	result := d.WithContext(ctx).Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
			"updated_at":             time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear reset token: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (d *DB) consumeResetToken(ctx context.Context, model interface{}, email, hashed string, now time.Time, passwordHash string) (int64, error) {
	result := d.WithContext(ctx).Model(model).
		Where("email = ? AND reset_password_token = ? AND reset_password_expires > ?", email, hashed, now).
		Updates(map[string]interface{}{
			"password_hash":          passwordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
			"last_active":            now,
			"updated_at":             now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to consume reset token: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (d *DB) clearExpiredResetTokens(ctx context.Context, model interface{}, now time.Time) (int64, error) {
	result := d.WithContext(ctx).Model(model).
		Where("reset_password_expires IS NOT NULL AND reset_password_expires <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (d *DB) setColumn(ctx context.Context, model interface{}, id uuid.UUID, column string, value interface{}) (int64, error) {
	result := d.WithContext(ctx).Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", column, result.Error)
	}
	return result.RowsAffected, nil
}
