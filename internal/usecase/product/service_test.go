package product

import (
	"context"
	"fmt"
	"testing"

	domainProduct "dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/infrastructure/database/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, n int) (*Service, *seller.Seller) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	sl := &seller.Seller{Email: "shop@x.com", Name: "Ada", ShopName: "Ada's", Address: "Lagos"}
	require.NoError(t, store.Sellers().Create(ctx, sl))

	for i := 0; i < n; i++ {
		require.NoError(t, store.Products().Create(ctx, &domainProduct.Product{
			SellerID: sl.ID,
			Name:     fmt.Sprintf("Item %d", i),
			Price:    decimal.NewFromInt(int64(i)),
		}))
	}
	return NewService(store.Products()), sl
}

func TestList_CapsAtLimitWithSellerSummary(t *testing.T) {
	svc, sl := seed(t, listLimit+5)

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, listLimit)
	require.NotNil(t, products[0].Seller)
	assert.Equal(t, sl.ShopName, products[0].Seller.ShopName)
	assert.NotNil(t, products[0].Images)
}

func TestSearch(t *testing.T) {
	svc, _ := seed(t, 12)

	found, err := svc.Search(context.Background(), "  ITEM 1")
	require.NoError(t, err)
	assert.Len(t, found, 3) // Item 1, Item 10, Item 11

	found, err = svc.Search(context.Background(), "<b>nothing</b>")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGet(t *testing.T) {
	svc, _ := seed(t, 1)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainProduct.ErrProductNotFound)
}
