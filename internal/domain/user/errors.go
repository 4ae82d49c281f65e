package user

import appErrors "dailypay-backend/pkg/errors"

var (
	ErrUserNotFound = appErrors.NotFound("User not found")
	ErrUserExists   = appErrors.DuplicateEmail("User exists")
)
