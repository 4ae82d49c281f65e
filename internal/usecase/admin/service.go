package admin

import (
	"context"
	"strings"

	"dailypay-backend/internal/auth"
	domainSeller "dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	domainUser "dailypay-backend/internal/domain/user"
	"dailypay-backend/internal/logger"
	sellerUsecase "dailypay-backend/internal/usecase/seller"
	userUsecase "dailypay-backend/internal/usecase/user"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const payoutListLimit = 200

// Service holds the moderation operations reachable behind the admin secret
type Service struct {
	userRepo        domainUser.Repository
	sellerRepo      domainSeller.Repository
	transactionRepo transaction.Repository
}

func NewService(userRepo domainUser.Repository, sellerRepo domainSeller.Repository, transactionRepo transaction.Repository) *Service {
	return &Service{
		userRepo:        userRepo,
		sellerRepo:      sellerRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]*userUsecase.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return userUsecase.ToUserResponses(users), nil
}

func (s *Service) SetUserRole(ctx context.Context, userID uuid.UUID, req *SetRoleRequest) (*userUsecase.UserResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	if err := s.userRepo.SetRole(ctx, userID, auth.Role(req.Role)); err != nil {
		return nil, err
	}
	audit("user_role_changed", userID, zap.String("role", req.Role))

	return s.user(ctx, userID)
}

func (s *Service) BanUser(ctx context.Context, userID uuid.UUID, banned bool) (*userUsecase.UserResponse, error) {
	if err := s.userRepo.SetBanned(ctx, userID, banned); err != nil {
		return nil, err
	}
	audit("user_banned", userID, zap.Bool("value", banned))
	return s.user(ctx, userID)
}

func (s *Service) SuspendUser(ctx context.Context, userID uuid.UUID, suspended bool) (*userUsecase.UserResponse, error) {
	if err := s.userRepo.SetSuspended(ctx, userID, suspended); err != nil {
		return nil, err
	}
	audit("user_suspended", userID, zap.Bool("value", suspended))
	return s.user(ctx, userID)
}

func (s *Service) ListSellers(ctx context.Context) ([]*sellerUsecase.SellerResponse, error) {
	sellers, err := s.sellerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sellerUsecase.ToSellerResponses(sellers), nil
}

func (s *Service) ApproveSeller(ctx context.Context, sellerID uuid.UUID) (*sellerUsecase.SellerResponse, error) {
	if err := s.sellerRepo.SetApproved(ctx, sellerID, true); err != nil {
		return nil, err
	}
	audit("seller_approved", sellerID)
	return s.seller(ctx, sellerID)
}

func (s *Service) BanSeller(ctx context.Context, sellerID uuid.UUID, banned bool) (*sellerUsecase.SellerResponse, error) {
	if err := s.sellerRepo.SetBanned(ctx, sellerID, banned); err != nil {
		return nil, err
	}
	audit("seller_banned", sellerID, zap.Bool("value", banned))
	return s.seller(ctx, sellerID)
}

func (s *Service) SuspendSeller(ctx context.Context, sellerID uuid.UUID, suspended bool) (*sellerUsecase.SellerResponse, error) {
	if err := s.sellerRepo.SetSuspended(ctx, sellerID, suspended); err != nil {
		return nil, err
	}
	audit("seller_suspended", sellerID, zap.Bool("value", suspended))
	return s.seller(ctx, sellerID)
}

// ListPayouts returns payout requests newest first, optionally narrowed to one status.
func (s *Service) ListPayouts(ctx context.Context, status string) ([]*sellerUsecase.TransactionResponse, error) {
	filter := transaction.Filter{Type: transaction.TypePayout, Limit: payoutListLimit}
	if status != "" {
		req := &PayoutStatusRequest{Status: strings.ToLower(strings.TrimSpace(status))}
		if err := utils.ValidateStruct(req); err != nil {
			return nil, utils.ValidationError(err)
		}
		filter.Status = transaction.Status(req.Status)
	}

	txs, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return sellerUsecase.ToTransactionResponses(txs), nil
}

func (s *Service) UpdatePayoutStatus(ctx context.Context, txID uuid.UUID, req *PayoutStatusRequest) (*sellerUsecase.TransactionResponse, error) {
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	tx, err := s.transactionRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Type != transaction.TypePayout {
		return nil, transaction.ErrTransactionNotFound
	}

	next := transaction.Status(req.Status)
	if err := transaction.ValidatePayoutTransition(tx.Status, next); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.UpdateStatus(ctx, txID, tx.Status, next); err != nil {
		return nil, err
	}

	audit("payout_status_changed", txID,
		zap.String("from", string(tx.Status)),
		zap.String("to", string(next)),
	)

	updated, err := s.transactionRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	return sellerUsecase.ToTransactionResponse(updated), nil
}

func (s *Service) user(ctx context.Context, userID uuid.UUID) (*userUsecase.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userUsecase.ToUserResponse(u), nil
}

func (s *Service) seller(ctx context.Context, sellerID uuid.UUID) (*sellerUsecase.SellerResponse, error) {
	sl, err := s.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return sellerUsecase.ToSellerResponse(sl), nil
}

func audit(event string, target uuid.UUID, fields ...zap.Field) {
	fields = append(fields,
		zap.String("target_id", target.String()),
		zap.String("event", event),
	)
	logger.Info("Admin action", fields...)
}
