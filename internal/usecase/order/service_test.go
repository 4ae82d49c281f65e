package order

import (
	"context"
	"testing"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	domainOrder "dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/infrastructure/database/memory"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	store  *memory.Store
	seller *seller.Seller
	mug    *product.Product
	plate  *product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	sl := &seller.Seller{Email: "shop@x.com", ShopName: "Shop"}
	require.NoError(t, store.Sellers().Create(ctx, sl))

	mug := &product.Product{SellerID: sl.ID, Name: "Mug", Price: decimal.RequireFromString("10.00"), Qty: 5}
	plate := &product.Product{SellerID: sl.ID, Name: "Plate", Price: decimal.RequireFromString("2.50"), Qty: 1}
	require.NoError(t, store.Products().Create(ctx, mug))
	require.NoError(t, store.Products().Create(ctx, plate))

	cfg := &config.Config{App: config.AppConfig{ServiceChargePercent: 5}}
	svc := NewService(store.Orders(), store.Products(), store.Transactions(), store.History(), cfg)

	return &fixture{svc: svc, store: store, seller: sl, mug: mug, plate: plate}
}

func (f *fixture) qty(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Qty
}

func TestCreate_TotalsStockAndLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := uuid.New()

	resp, err := f.svc.Create(ctx, buyer, &CreateOrderRequest{
		Items: []ItemRequest{{ProductID: f.mug.ID, Qty: 2}, {ProductID: f.plate.ID, Qty: 1}},
		Shipping: ShippingRequest{
			Method:  "delivery",
			Fee:     decimal.RequireFromString("3.50"),
			Address: "1 Main St",
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("22.50")))
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("26.00")))
	assert.Equal(t, f.seller.ID, resp.SellerID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, f.qty(t, f.mug.ID))
	assert.Equal(t, 0, f.qty(t, f.plate.ID))

	txs, err := f.store.Transactions().List(ctx, transaction.Filter{SellerID: &f.seller.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, transaction.TypeSale, txs[0].Type)
	assert.True(t, txs[0].ServiceChargeAmount.Equal(decimal.RequireFromString("1.30")))
	assert.True(t, txs[0].AmountToSeller.Equal(decimal.RequireFromString("24.70")))

	entries, err := f.store.History().ListBySeller(ctx, f.seller.ID, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreate_PickupIgnoresFee(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), uuid.New(), &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 1}},
		Shipping: ShippingRequest{Method: "pickup", Fee: decimal.NewFromInt(99)},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("10")))
}

func TestCreate_InsufficientStockReleasesEarlierLines(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 2}, {ProductID: f.plate.ID, Qty: 2}},
		Shipping: ShippingRequest{Method: "pickup"},
	})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 5, f.qty(t, f.mug.ID))
	assert.Equal(t, 1, f.qty(t, f.plate.ID))
}

func TestCreate_RejectsMixedSellers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &product.Product{SellerID: uuid.New(), Name: "Other", Price: decimal.NewFromInt(1), Qty: 10}
	require.NoError(t, f.store.Products().Create(ctx, other))

	_, err := f.svc.Create(ctx, uuid.New(), &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 1}, {ProductID: other.ID, Qty: 1}},
		Shipping: ShippingRequest{Method: "pickup"},
	})
	assert.ErrorIs(t, err, domainOrder.ErrMixedSellers)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, uuid.New(), &CreateOrderRequest{Shipping: ShippingRequest{Method: "pickup"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.svc.Create(ctx, uuid.New(), &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 1}},
		Shipping: ShippingRequest{Method: "drone"},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.svc.Create(ctx, uuid.New(), &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 1}},
		Shipping: ShippingRequest{Method: "delivery"},
	})
	_, msg := appErrors.HTTPStatus(err)
	assert.Equal(t, "Delivery address required", msg)
}

func TestGet_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := uuid.New()

	placed, err := f.svc.Create(ctx, buyer, &CreateOrderRequest{
		Items:    []ItemRequest{{ProductID: f.mug.ID, Qty: 1}},
		Shipping: ShippingRequest{Method: "pickup"},
	})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, auth.Identity{AccountID: buyer, Role: auth.RoleUser}, placed.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, auth.Identity{AccountID: uuid.New(), Role: auth.RoleUser}, placed.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Get(ctx, auth.Identity{AccountID: uuid.New(), Role: auth.RoleAdmin}, placed.ID)
	assert.NoError(t, err)

	mine, err := f.svc.ListMine(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
