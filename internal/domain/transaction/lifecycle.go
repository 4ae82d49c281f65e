package transaction

import (
	"fmt"

	appErrors "dailypay-backend/pkg/errors"
)

var payoutTransitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPaid, StatusRejected},
	StatusPaid:      {},
	StatusRejected:  {},
}

// ValidatePayoutTransition checks a payout status change.
func ValidatePayoutTransition(current, next Status) error {
	allowed, ok := payoutTransitions[current]
	if !ok {
		return appErrors.Validation(fmt.Sprintf("Unknown payout status: %s", current), nil)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return appErrors.Validation(fmt.Sprintf("Cannot move payout from %s to %s", current, next), nil)
}
