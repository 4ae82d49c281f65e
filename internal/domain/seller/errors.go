package seller

import appErrors "dailypay-backend/pkg/errors"

var (
	ErrSellerNotFound = appErrors.NotFound("Seller not found")
	ErrSellerExists   = appErrors.DuplicateEmail("Seller already exists")
)
