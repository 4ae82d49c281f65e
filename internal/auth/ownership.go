package auth

import (
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
)

// RequireOwner fails with Forbidden unless the caller owns the resource.
func RequireOwner(ownerID uuid.UUID, caller Identity) error {
	if ownerID == uuid.Nil || ownerID != caller.AccountID {
		return appErrors.ErrForbidden
	}
	return nil
}
