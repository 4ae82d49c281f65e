package utils

import (
	"testing"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", SanitizeEmail("  A@X.com "))
	assert.Equal(t, "bob@example.com", SanitizeEmail("<b>Bob@Example.COM</b>"))
}

func TestSanitizeString_KeepsTextAsTyped(t *testing.T) {
	assert.Equal(t, "Fish & Chips", SanitizeString("  Fish & Chips "))
	assert.Equal(t, "O'Brien's <Deli>", SanitizeString("O'Brien's <Deli>\x00"))
	assert.Equal(t, "line one\nline \"two\"", SanitizeText(" line one\nline \"two\"\x07 "))
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "Fish & Chips", SanitizeQuery("  Fish & Chips\x00 ", 0))
	assert.Equal(t, "abc", SanitizeQuery("abcdef", 3))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, EscapeLike("50% off_now"))
}

func TestValidateStruct_CustomRules(t *testing.T) {
	type shipping struct {
		Method string `json:"method" validate:"required,shipping_method"`
	}
	type roleChange struct {
		Role string `json:"role" validate:"required,account_role"`
	}

	require.NoError(t, ValidateStruct(&shipping{Method: "pickup"}))
	err := ValidateStruct(&shipping{Method: "drone"})
	require.Error(t, err)
	assert.Equal(t, "method", FirstInvalidField(err))

	require.NoError(t, ValidateStruct(&roleChange{Role: "admin"}))
	assert.Error(t, ValidateStruct(&roleChange{Role: "root"}))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("A@X.com"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestValidationError(t *testing.T) {
	type login struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	_, msg := appErrors.HTTPStatus(ValidationError(ValidateStruct(&login{Email: "a@x.com"})))
	assert.Equal(t, "Missing fields", msg)

	_, msg = appErrors.HTTPStatus(ValidationError(ValidateStruct(&login{Email: "nope", Password: "pw12345"})))
	assert.Equal(t, "Invalid email", msg)

	err := ValidationError(ValidateStruct(&login{Email: "a@x.com", Password: "pw"}))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, msg = appErrors.HTTPStatus(err)
	assert.Equal(t, "Invalid password: must satisfy min=6", msg)
}
