package order

import appErrors "dailypay-backend/pkg/errors"

var (
	ErrOrderNotFound = appErrors.NotFound("Order not found")
	ErrMixedSellers  = appErrors.Validation("All items in an order must come from the same seller", nil)
)
