package product

import appErrors "dailypay-backend/pkg/errors"

var (
	ErrProductNotFound   = appErrors.NotFound("Product not found")
	ErrInsufficientStock = appErrors.Validation("Insufficient stock", nil)
)
