package user

import (
	"context"
	"fmt"
	"time"

	"dailypay-backend/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredResetClearer is implemented by the user and seller repositories.
type ExpiredResetClearer interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// NewTokenCleanupJob schedules a sweep that clears lapsed reset-token pairs.
// Expired tokens are already unusable; the sweep only drops stale hashes.
// The caller starts and stops the returned cron.
func NewTokenCleanupJob(ctx context.Context, schedule string, now func() time.Time, repos ...ExpiredResetClearer) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		CleanupExpiredResetTokens(ctx, now(), repos...)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}

	logger.Info("Reset token cleanup job scheduled",
		zap.String("schedule", schedule),
	)
	return c, nil
}

func CleanupExpiredResetTokens(ctx context.Context, now time.Time, repos ...ExpiredResetClearer) int64 {
	var total int64
	for _, repo := range repos {
		n, err := repo.ClearExpiredResetTokens(ctx, now)
		if err != nil {
			logger.Error("Failed to clear expired reset tokens", zap.Error(err))
			continue
		}
		total += n
	}

	logger.Debug("Expired reset tokens cleaned up",
		zap.Int64("cleared", total),
	)
	return total
}
