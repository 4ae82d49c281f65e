package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/domain/user"
	"dailypay-backend/internal/infrastructure/database/postgres/models"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository on gorm
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	dbModel := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (r *UserRepository) SetRole(ctx context.Context, userID uuid.UUID, role auth.Role) error {
	return r.expectRow(r.db.setColumn(ctx, &models.UserModel{}, userID, "role", string(role)))
}

func (r *UserRepository) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	return r.expectRow(r.db.setColumn(ctx, &models.UserModel{}, userID, "banned", banned))
}

func (r *UserRepository) SetSuspended(ctx context.Context, userID uuid.UUID, suspended bool) error {
	return r.expectRow(r.db.setColumn(ctx, &models.UserModel{}, userID, "suspended", suspended))
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, hashedToken string, expiresAt time.Time) error {
	return r.expectRow(r.db.setResetToken(ctx, &models.UserModel{}, userID, hashedToken, expiresAt))
}

func (r *UserRepository) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	return r.expectRow(r.db.clearResetToken(ctx, &models.UserModel{}, userID))
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, email, hashedToken string, now time.Time, passwordHash string) error {
	rows, err := r.db.consumeResetToken(ctx, &models.UserModel{}, email, hashedToken, now, passwordHash)
	if err != nil {
		return err
	}
	if rows == 0 {
		return appErrors.ErrInvalidOrExpiredToken
	}
	return nil
}

func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.db.clearExpiredResetTokens(ctx, &models.UserModel{}, now)
}

func (r *UserRepository) expectRow(rows int64, err error) error {
	if err != nil {
		return err
	}
	if rows == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Role:                 string(u.Role),
		Banned:               u.Banned,
		Suspended:            u.Suspended,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
		LastActive:           u.LastActive,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:                   m.ID,
		Name:                 m.Name,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		Role:                 auth.Role(m.Role),
		Banned:               m.Banned,
		Suspended:            m.Suspended,
		ResetPasswordToken:   m.ResetPasswordToken,
		ResetPasswordExpires: m.ResetPasswordExpires,
		LastActive:           m.LastActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
