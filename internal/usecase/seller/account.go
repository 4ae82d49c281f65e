package seller

import (
	"context"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/domain/history"
	domainOrder "dailypay-backend/internal/domain/order"
	domainSeller "dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/logger"
	orderUsecase "dailypay-backend/internal/usecase/order"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (s *Service) ListOrders(ctx context.Context, sellerID uuid.UUID) ([]*orderUsecase.OrderResponse, error) {
	orders, err := s.orderRepo.ListBySeller(ctx, sellerID, recordListLimit)
	if err != nil {
		return nil, err
	}
	return orderUsecase.ToOrderResponses(orders), nil
}

func (s *Service) GetOrder(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*orderUsecase.OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(o.SellerID, caller); err != nil {
		return nil, domainOrder.ErrOrderNotFound
	}
	return orderUsecase.ToOrderResponse(o), nil
}

func (s *Service) ListTransactions(ctx context.Context, sellerID uuid.UUID) ([]*TransactionResponse, error) {
	txs, err := s.transactionRepo.List(ctx, transaction.Filter{SellerID: &sellerID, Limit: recordListLimit})
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// Dashboard runs its four aggregates concurrently.
func (s *Service) Dashboard(ctx context.Context, sellerID uuid.UUID) (*DashboardResponse, error) {
	var resp DashboardResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.productRepo.CountBySeller(gctx, sellerID)
		resp.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.orderRepo.CountBySeller(gctx, sellerID)
		resp.TotalOrders = n
		return err
	})
	g.Go(func() error {
		sum, err := s.transactionRepo.SumSales(gctx, sellerID)
		resp.TotalSales = sum
		return err
	})
	g.Go(func() error {
		n, err := s.transactionRepo.Count(gctx, transaction.Filter{
			SellerID: &sellerID,
			Type:     transaction.TypePayout,
			Status:   transaction.StatusRequested,
		})
		resp.PendingPayouts = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) GetBankInfo(ctx context.Context, sellerID uuid.UUID) (*BankInfoResponse, error) {
	seller, err := s.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.BankInfo == nil {
		return &BankInfoResponse{}, nil
	}
	return toBankInfoResponse(seller.BankInfo), nil
}

func (s *Service) UpdateBankInfo(ctx context.Context, sellerID uuid.UUID, req *BankInfoRequest) (*BankInfoResponse, error) {
	req.AccountName = utils.SanitizeString(req.AccountName)
	req.AccountNumber = utils.SanitizeString(req.AccountNumber)
	req.BankName = utils.SanitizeString(req.BankName)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	info := domainSeller.BankInfo{
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
	}
	if err := s.sellerRepo.UpdateBankInfo(ctx, sellerID, info); err != nil {
		return nil, err
	}
	s.record(ctx, sellerID, history.ActionBankInfoUpdated, info.BankName)

	return toBankInfoResponse(&info), nil
}

func (s *Service) RequestPayout(ctx context.Context, sellerID uuid.UUID, req *PayoutRequest) (*TransactionResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, transaction.ErrInvalidAmount
	}

	amount := req.Amount.Round(2)
	tx := &transaction.Transaction{
		ID:          uuid.New(),
		Type:        transaction.TypePayout,
		SellerID:    sellerID,
		Amount:      amount,
		TotalAmount: amount,
		ShippingFee: decimal.Zero,
		Status:      transaction.StatusRequested,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	s.record(ctx, sellerID, history.ActionPayoutRequested, amount.StringFixed(2))

	logger.Info("Payout requested",
		zap.String("seller_id", sellerID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("event", "payout_requested"),
	)
	return ToTransactionResponse(tx), nil
}

// History is empty when the history store is disabled.
func (s *Service) History(ctx context.Context, sellerID uuid.UUID) ([]*HistoryResponse, error) {
	if s.historyRepo == nil {
		return []*HistoryResponse{}, nil
	}
	entries, err := s.historyRepo.ListBySeller(ctx, sellerID, recordListLimit)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(entries), nil
}
