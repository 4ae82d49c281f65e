package auth

import appErrors "dailypay-backend/pkg/errors"

// CheckStanding rejects banned and suspended accounts. It runs before any
// password comparison so a locked-out holder learns nothing about the password.
func CheckStanding(banned, suspended bool) error {
	switch {
	case banned:
		return appErrors.ErrAccountBanned
	case suspended:
		return appErrors.ErrAccountSuspended
	}
	return nil
}
