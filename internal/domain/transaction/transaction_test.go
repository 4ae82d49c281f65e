package transaction

import (
	"testing"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitSale(t *testing.T) {
	charge, toSeller := SplitSale(decimal.RequireFromString("199.99"), decimal.NewFromInt(5))

	assert.Equal(t, "10", charge.String())
	assert.Equal(t, "189.99", toSeller.String())
	assert.True(t, charge.Add(toSeller).Equal(decimal.RequireFromString("199.99")))
}

func TestValidatePayoutTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusRequested, StatusApproved, true},
		{StatusRequested, StatusRejected, true},
		{StatusApproved, StatusPaid, true},
		{StatusRequested, StatusPaid, false},
		{StatusPaid, StatusRejected, false},
		{StatusPending, StatusPaid, false},
	}

	for _, tt := range tests {
		err := ValidatePayoutTransition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			assert.ErrorIs(t, err, appErrors.ErrValidation, "%s -> %s", tt.from, tt.to)
		}
	}
}
