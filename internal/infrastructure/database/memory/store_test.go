package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/domain/user"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_DuplicateEmail(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &user.User{Email: "a@x.com"}))
	assert.ErrorIs(t, users.Create(ctx, &user.User{Email: "a@x.com"}), user.ErrUserExists)
}

func TestUsers_ReturnedRecordsAreCopies(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	u := &user.User{Email: "a@x.com", Name: "A"}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestUsers_ConsumeResetTokenSucceedsOnce(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()
	now := time.Now()

	u := &user.User{Email: "a@x.com", PasswordHash: "old"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, users.SetResetToken(ctx, u.ID, "hashed", now.Add(time.Hour)))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if users.ConsumeResetToken(ctx, "a@x.com", "hashed", now, "new") == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wins)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)
	assert.Nil(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpires)
}

func TestUsers_ConsumeResetTokenExpired(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()
	now := time.Now()

	u := &user.User{Email: "a@x.com", PasswordHash: "old"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, users.SetResetToken(ctx, u.ID, "hashed", now.Add(-time.Second)))

	err := users.ConsumeResetToken(ctx, "a@x.com", "hashed", now, "new")
	assert.ErrorIs(t, err, appErrors.ErrInvalidOrExpiredToken)

	n, err := users.ClearExpiredResetTokens(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSellers_ConsumeResetTokenWrongEmail(t *testing.T) {
	sellers := NewStore().Sellers()
	ctx := context.Background()
	now := time.Now()

	sl := &seller.Seller{Email: "shop@x.com"}
	require.NoError(t, sellers.Create(ctx, sl))
	require.NoError(t, sellers.SetResetToken(ctx, sl.ID, "hashed", now.Add(time.Hour)))

	err := sellers.ConsumeResetToken(ctx, "other@x.com", "hashed", now, "new")
	assert.ErrorIs(t, err, appErrors.ErrInvalidOrExpiredToken)
}

func TestProducts_SellerSummaryAndSearch(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sl := &seller.Seller{Email: "shop@x.com", Name: "Ada", ShopName: "Ada's"}
	require.NoError(t, store.Sellers().Create(ctx, sl))

	products := store.Products()
	require.NoError(t, products.Create(ctx, &product.Product{SellerID: sl.ID, Name: "Red Mug", Price: decimal.NewFromInt(5)}))
	require.NoError(t, products.Create(ctx, &product.Product{SellerID: sl.ID, Name: "Plate", Description: "matches a red mug set"}))
	require.NoError(t, products.Create(ctx, &product.Product{SellerID: sl.ID, Name: "Spoon"}))

	found, err := products.Search(ctx, "RED", 100)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Plate", found[0].Name)
	require.NotNil(t, found[0].Seller)
	assert.Equal(t, "Ada's", found[0].Seller.ShopName)

	limited, err := products.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
	assert.Equal(t, "Spoon", limited[0].Name)
}

func TestProducts_ReserveStock(t *testing.T) {
	products := NewStore().Products()
	ctx := context.Background()

	p := &product.Product{Name: "Mug", Qty: 3}
	require.NoError(t, products.Create(ctx, p))

	require.NoError(t, products.ReserveStock(ctx, p.ID, 2))
	assert.ErrorIs(t, products.ReserveStock(ctx, p.ID, 2), product.ErrInsufficientStock)
	require.NoError(t, products.ReleaseStock(ctx, p.ID, 2))

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Qty)
}

func TestTransactions_FilterSumAndGuardedStatus(t *testing.T) {
	txs := NewStore().Transactions()
	ctx := context.Background()
	sellerID := uuid.New()

	require.NoError(t, txs.Create(ctx, &transaction.Transaction{SellerID: sellerID, Type: transaction.TypeSale, Status: transaction.StatusPending, TotalAmount: decimal.RequireFromString("10.50")}))
	require.NoError(t, txs.Create(ctx, &transaction.Transaction{SellerID: sellerID, Type: transaction.TypeSale, Status: transaction.StatusPending, TotalAmount: decimal.RequireFromString("4.50")}))
	payout := &transaction.Transaction{SellerID: sellerID, Type: transaction.TypePayout, Status: transaction.StatusRequested, Amount: decimal.NewFromInt(7)}
	require.NoError(t, txs.Create(ctx, payout))
	require.NoError(t, txs.Create(ctx, &transaction.Transaction{SellerID: uuid.New(), Type: transaction.TypeSale, TotalAmount: decimal.NewFromInt(99)}))

	sum, err := txs.SumSales(ctx, sellerID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(15)))

	pending, err := txs.Count(ctx, transaction.Filter{SellerID: &sellerID, Status: transaction.StatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, pending)

	listed, err := txs.List(ctx, transaction.Filter{SellerID: &sellerID})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, payout.ID, listed[0].ID)

	require.NoError(t, txs.UpdateStatus(ctx, payout.ID, transaction.StatusRequested, transaction.StatusApproved))
	assert.ErrorIs(t, txs.UpdateStatus(ctx, payout.ID, transaction.StatusRequested, transaction.StatusRejected), transaction.ErrStatusChanged)
}
