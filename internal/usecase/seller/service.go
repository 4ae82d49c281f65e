package seller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	domainSeller "dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/logger"
	"dailypay-backend/internal/mailer"
	appErrors "dailypay-backend/pkg/errors"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	productListLimit = 500
	recordListLimit  = 200
	resetPath        = "/seller/reset-password"
)

// Service implements the seller account and back-office use cases
type Service struct {
	sellerRepo      domainSeller.Repository
	productRepo     product.Repository
	orderRepo       order.Repository
	transactionRepo transaction.Repository
	historyRepo     history.Repository // nil when history is disabled
	hasher          *auth.Hasher
	tokens          *auth.TokenIssuer
	resets          *auth.ResetTokens
	mailer          mailer.Mailer
	config          *config.Config
}

type Repositories struct {
	Sellers      domainSeller.Repository
	Products     product.Repository
	Orders       order.Repository
	Transactions transaction.Repository
	History      history.Repository
}

func NewService(
	repos Repositories,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
	resets *auth.ResetTokens,
	mail mailer.Mailer,
	cfg *config.Config,
) *Service {
	return &Service{
		sellerRepo:      repos.Sellers,
		productRepo:     repos.Products,
		orderRepo:       repos.Orders,
		transactionRepo: repos.Transactions,
		historyRepo:     repos.History,
		hasher:          hasher,
		tokens:          tokens,
		resets:          resets,
		mailer:          mail,
		config:          cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	req.ShopName = utils.SanitizeString(req.ShopName)
	req.Name = utils.SanitizeString(req.Name)
	req.Phone = utils.SanitizePhone(req.Phone)
	req.Address = utils.SanitizeText(req.Address)
	req.ShopDescription = utils.SanitizeText(req.ShopDescription)
	req.ShopLogo = strings.TrimSpace(req.ShopLogo)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	_, err := s.sellerRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		logger.Warn("Seller registration with existing email",
			zap.String("email", req.Email),
			zap.String("event", "seller_registration_failed_duplicate_email"),
		)
		return nil, domainSeller.ErrSellerExists
	}
	if !errors.Is(err, domainSeller.ErrSellerNotFound) {
		return nil, fmt.Errorf("failed to check existing seller: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = req.ShopName
	}
	seller := &domainSeller.Seller{
		Name:            name,
		ShopName:        req.ShopName,
		Email:           req.Email,
		PasswordHash:    hashed,
		Role:            auth.RoleSeller,
		Phone:           req.Phone,
		Address:         req.Address,
		ShopLogo:        req.ShopLogo,
		ShopDescription: req.ShopDescription,
	}
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	resp, err := s.session(seller)
	if err != nil {
		return nil, err
	}

	logger.Info("Seller registered successfully",
		zap.String("seller_id", seller.ID.String()),
		zap.String("shop_name", seller.ShopName),
		zap.String("event", "seller_registered"),
	)

	return resp, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, appErrors.ErrMissingFields
	}

	seller, err := s.sellerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainSeller.ErrSellerNotFound) {
			logger.Warn("Seller login with non-existent email",
				zap.String("event", "seller_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckStanding(seller.Banned, seller.Suspended); err != nil {
		logger.Warn("Seller login for locked account",
			zap.String("seller_id", seller.ID.String()),
			zap.String("event", "seller_login_failed_account_locked"),
		)
		return nil, err
	}

	if !s.hasher.Verify(req.Password, seller.PasswordHash) {
		logger.Warn("Seller login with invalid password",
			zap.String("seller_id", seller.ID.String()),
			zap.String("event", "seller_login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	resp, err := s.session(seller)
	if err != nil {
		return nil, err
	}

	logger.Info("Seller logged in successfully",
		zap.String("seller_id", seller.ID.String()),
		zap.String("event", "seller_login_success"),
	)

	return resp, nil
}

func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := utils.SanitizeEmail(req.Email)
	if email == "" {
		return appErrors.Validation("Email required", nil)
	}

	seller, err := s.sellerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainSeller.ErrSellerNotFound) {
			return nil
		}
		return fmt.Errorf("failed to retrieve seller: %w", err)
	}

	token, err := s.resets.Generate()
	if err != nil {
		return err
	}
	if err := s.sellerRepo.SetResetToken(ctx, seller.ID, token.Hashed, token.ExpiresAt); err != nil {
		return err
	}

	msg := mailer.PasswordReset(s.config.App.FrontendURL, resetPath, seller.Name, seller.Email, token.Plain)
	msg.From = s.config.SMTP.From
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Error("Failed to send seller password reset email",
			zap.String("seller_id", seller.ID.String()),
			zap.Error(err),
		)
		if clearErr := s.sellerRepo.ClearResetToken(context.WithoutCancel(ctx), seller.ID); clearErr != nil {
			logger.Error("Failed to clear undelivered reset token", zap.Error(clearErr))
		}
		return appErrors.NewAppError(appErrors.CodeMailDelivery, appErrors.ErrMailDelivery.Message, err)
	}

	logger.Info("Seller password reset token issued",
		zap.String("seller_id", seller.ID.String()),
		zap.String("event", "seller_password_reset_token_generated"),
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

	if err := s.sellerRepo.ConsumeResetToken(ctx, req.Email, auth.HashResetToken(req.Token), s.resets.Now(), hashed); err != nil {
		return err
	}

	logger.Info("Seller password reset successfully",
		zap.String("event", "seller_password_reset_success"),
	)
	return nil
}

func (s *Service) Me(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	seller, err := s.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return ToSellerResponse(seller), nil
}

func (s *Service) AdminList(ctx context.Context) ([]*SellerResponse, error) {
	sellers, err := s.sellerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToSellerResponses(sellers), nil
}

func (s *Service) Approve(ctx context.Context, sellerID uuid.UUID) error {
	if err := s.sellerRepo.SetApproved(ctx, sellerID, true); err != nil {
		return err
	}
	logger.Info("Seller approved",
		zap.String("seller_id", sellerID.String()),
		zap.String("event", "seller_approved"),
	)
	return nil
}

func (s *Service) session(seller *domainSeller.Seller) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(seller.ID, auth.RoleSeller, s.config.SellerSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		Seller:    ToSellerResponse(seller),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) record(ctx context.Context, sellerID uuid.UUID, action, details string) {
	if s.historyRepo == nil {
		return
	}
	if err := s.historyRepo.Create(ctx, &history.Entry{SellerID: sellerID, Action: action, Details: details}); err != nil {
		logger.Warn("Failed to record seller history",
			zap.String("seller_id", sellerID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
