package order

import (
	"context"
	"fmt"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	"dailypay-backend/internal/domain/history"
	domainOrder "dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/logger"
	appErrors "dailypay-backend/pkg/errors"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const listLimit = 200

// Service places and reads shopper orders
type Service struct {
	orderRepo       domainOrder.Repository
	productRepo     product.Repository
	transactionRepo transaction.Repository
	historyRepo     history.Repository // nil when history is disabled
	config          *config.Config
}

func NewService(
	orderRepo domainOrder.Repository,
	productRepo product.Repository,
	transactionRepo transaction.Repository,
	historyRepo history.Repository,
	cfg *config.Config,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		config:          cfg,
	}
}

type reservation struct {
	productID uuid.UUID
	qty       int
}

// Create reserves stock for every line, then writes the order and its sale
// transaction. Reserved stock is handed back if a later step fails.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	req.Shipping.Address = utils.SanitizeText(req.Shipping.Address)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	method := domainOrder.ShippingMethod(req.Shipping.Method)
	fee := decimal.Zero
	if method == domainOrder.ShippingDelivery {
		if req.Shipping.Fee.IsNegative() {
			return nil, appErrors.Validation("Invalid shipping fee", nil)
		}
		if req.Shipping.Address == "" {
			return nil, appErrors.Validation("Delivery address required", nil)
		}
		fee = req.Shipping.Fee.Round(2)
	}

	items, sellerID, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	reserved := make([]reservation, 0, len(items))
	release := func() {
		for _, r := range reserved {
			if err := s.productRepo.ReleaseStock(context.WithoutCancel(ctx), r.productID, r.qty); err != nil {
				logger.Error("Failed to release reserved stock",
					zap.String("product_id", r.productID.String()),
					zap.Int("qty", r.qty),
					zap.Error(err),
				)
			}
		}
	}

	for _, it := range items {
		if err := s.productRepo.ReserveStock(ctx, it.ProductID, it.Qty); err != nil {
			release()
			return nil, err
		}
		reserved = append(reserved, reservation{productID: it.ProductID, qty: it.Qty})
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	total := subtotal.Add(fee)

	order := &domainOrder.Order{
		UserID:      userID,
		SellerID:    sellerID,
		Items:       items,
		Subtotal:    subtotal,
		TotalAmount: total,
		Shipping: domainOrder.Shipping{
			Method:  method,
			Fee:     fee,
			Address: req.Shipping.Address,
		},
		Status: domainOrder.StatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		release()
		return nil, err
	}

	if err := s.recordSale(ctx, order); err != nil {
		// the order stands; the ledger line can be reconciled from it
		logger.Error("Failed to record sale transaction",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	if s.historyRepo != nil {
		entry := &history.Entry{
			SellerID: sellerID,
			Action:   history.ActionOrderReceived,
			Details:  fmt.Sprintf("order %s total %s", order.ID, total.StringFixed(2)),
		}
		if err := s.historyRepo.Create(ctx, entry); err != nil {
			logger.Warn("Failed to record seller history", zap.Error(err))
		}
	}

	logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("total", total.StringFixed(2)),
		zap.String("event", "order_placed"),
	)

	return ToOrderResponse(order), nil
}

func (s *Service) resolveItems(ctx context.Context, lines []ItemRequest) ([]domainOrder.Item, uuid.UUID, error) {
	items := make([]domainOrder.Item, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	var sellerID uuid.UUID

	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			items[i].Qty += line.Qty
			continue
		}

		p, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, uuid.Nil, err
		}
		if sellerID == uuid.Nil {
			sellerID = p.SellerID
		} else if p.SellerID != sellerID {
			return nil, uuid.Nil, domainOrder.ErrMixedSellers
		}

		index[line.ProductID] = len(items)
		items = append(items, domainOrder.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       line.Qty,
		})
	}
	return items, sellerID, nil
}

func (s *Service) recordSale(ctx context.Context, o *domainOrder.Order) error {
	percent := decimal.NewFromFloat(s.config.App.ServiceChargePercent)
	charge, toSeller := transaction.SplitSale(o.TotalAmount, percent)

	orderID := o.ID
	userID := o.UserID
	return s.transactionRepo.Create(ctx, &transaction.Transaction{
		Type:                 transaction.TypeSale,
		OrderID:              &orderID,
		UserID:               &userID,
		SellerID:             o.SellerID,
		Amount:               o.TotalAmount,
		TotalAmount:          o.TotalAmount,
		ServiceChargePercent: percent,
		ServiceChargeAmount:  charge,
		AmountToSeller:       toSeller,
		ShippingMethod:       string(o.Shipping.Method),
		ShippingFee:          o.Shipping.Fee,
		Status:               transaction.StatusPending,
	})
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Get returns an order to its buyer. Admins may read any order.
func (s *Service) Get(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role != auth.RoleAdmin {
		if err := auth.RequireOwner(o.UserID, caller); err != nil {
			return nil, err
		}
	}
	return ToOrderResponse(o), nil
}
