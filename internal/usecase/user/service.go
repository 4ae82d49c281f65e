package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	domainUser "dailypay-backend/internal/domain/user"
	"dailypay-backend/internal/logger"
	"dailypay-backend/internal/mailer"
	appErrors "dailypay-backend/pkg/errors"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resetPasswordPath = "/reset-password"

// Service implements the shopper authentication flow
type Service struct {
	userRepo domainUser.Repository
	hasher   *auth.Hasher
	tokens   *auth.TokenIssuer
	resets   *auth.ResetTokens
	mailer   mailer.Mailer
	config   *config.Config
}

func NewService(
	userRepo domainUser.Repository,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
	resets *auth.ResetTokens,
	mail mailer.Mailer,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		resets:   resets,
		mailer:   mail,
		config:   cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizeString(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, domainUser.ErrUserExists
	}
	if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         auth.RoleUser,
	}
	// the unique index still catches a concurrent registration
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return resp, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, appErrors.Validation("Missing credentials", nil)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckStanding(user.Banned, user.Suspended); err != nil {
		logger.Warn("Login attempt for locked account",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_account_locked"),
			zap.Error(err),
		)
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("event", "login_success"),
	)

	return resp, nil
}

// ForgotPassword stores a fresh reset token and emails the plaintext. An
// unknown email succeeds without side effects.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := utils.SanitizeEmail(req.Email)
	if email == "" {
		return appErrors.Validation("Email required", nil)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("event", "password_reset_requested_non_existent_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token, err := s.resets.Generate()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, token.Hashed, token.ExpiresAt); err != nil {
		return err
	}

	msg := mailer.PasswordReset(s.config.App.FrontendURL, resetPasswordPath, user.Name, user.Email, token.Plain)
	msg.From = s.config.SMTP.From
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Error("Failed to send password reset email",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_mail_failed"),
			zap.Error(err),
		)
		if clearErr := s.userRepo.ClearResetToken(context.WithoutCancel(ctx), user.ID); clearErr != nil {
			logger.Error("Failed to clear undelivered reset token",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return appErrors.NewAppError(appErrors.CodeMailDelivery, appErrors.ErrMailDelivery.Message, err)
	}

	logger.Info("Password reset token issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", token.ExpiresAt),
		zap.String("event", "password_reset_token_generated"),
	)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)
	req.Token = strings.TrimSpace(req.Token)
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationError(err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	err = s.userRepo.ConsumeResetToken(ctx, req.Email, auth.HashResetToken(req.Token), s.resets.Now(), hashed)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidOrExpiredToken) {
			logger.Warn("Password reset attempt with invalid token",
				zap.String("event", "password_reset_failed_invalid_token"),
			)
		}
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("email", req.Email),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// PromoteBootstrapAdmin grants the admin role to the account named by
// ADMIN_BOOTSTRAP_EMAIL.
func (s *Service) PromoteBootstrapAdmin(ctx context.Context) (*UserResponse, error) {
	email := s.config.Admin.BootstrapEmail
	if email == "" {
		return nil, appErrors.ErrNotFound
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRole(ctx, user.ID, auth.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = auth.RoleAdmin

	logger.Info("Bootstrap admin promoted",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "bootstrap_admin_promoted"),
	)

	return ToUserResponse(user), nil
}

// SessionTTL is the lifetime of a shopper session token and cookie.
func (s *Service) SessionTTL() time.Duration {
	return s.config.UserSessionTTL()
}

func (s *Service) session(user *domainUser.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role, s.config.UserSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
