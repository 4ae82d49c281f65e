package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountBanned      = "ACCOUNT_BANNED"
	CodeAccountSuspended   = "ACCOUNT_SUSPENDED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeAdminMisconfigured = "ADMIN_MISCONFIGURED"
	CodeMailDelivery       = "MAIL_DELIVERY_FAILED"
	CodeRateLimited        = "RATE_LIMITED"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
)

// Sentinels identify an error kind. errors.Is matches any AppError with the same code.
var (
	ErrValidation            = NewAppError(CodeValidation, "Invalid input", nil)
	ErrMissingFields         = NewAppError(CodeValidation, "Missing fields", nil)
	ErrInvalidCredentials    = NewAppError(CodeInvalidCredentials, "Invalid credentials", nil)
	ErrAccountBanned         = NewAppError(CodeAccountBanned, "Account banned permanently", nil)
	ErrAccountSuspended      = NewAppError(CodeAccountSuspended, "Account suspended by admin", nil)
	ErrInvalidOrExpiredToken = NewAppError(CodeInvalidToken, "Invalid or expired token", nil)
	ErrUnauthorized          = NewAppError(CodeUnauthorized, "Not authorized", nil)
	ErrInvalidAdminSecret    = NewAppError(CodeUnauthorized, "Not authorized: Invalid Admin Secret", nil)
	ErrForbidden             = NewAppError(CodeForbidden, "Not allowed", nil)
	ErrNotFound              = NewAppError(CodeNotFound, "Not found", nil)
	ErrAdminMisconfigured    = NewAppError(CodeAdminMisconfigured, "Server configuration error: Admin secret missing.", nil)
	ErrMailDelivery          = NewAppError(CodeMailDelivery, "Unable to send password reset email right now", nil)
	ErrRateLimited           = NewAppError(CodeRateLimited, "Too many requests from this IP, please try again later.", nil)
	ErrPayloadTooLarge       = NewAppError(CodePayloadTooLarge, "Request body too large", nil)
)

var statusByCode = map[string]int{
	CodeValidation:         http.StatusBadRequest,
	CodeDuplicateEmail:     http.StatusBadRequest,
	CodeInvalidCredentials: http.StatusBadRequest,
	CodeAccountBanned:      http.StatusForbidden,
	CodeAccountSuspended:   http.StatusForbidden,
	CodeInvalidToken:       http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeAdminMisconfigured: http.StatusServiceUnavailable,
	CodeMailDelivery:       http.StatusServiceUnavailable,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
}

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, message, nil)
}

func DuplicateEmail(message string) *AppError {
	return NewAppError(CodeDuplicateEmail, message, nil)
}

// HTTPStatus maps err to a response status and a client-safe message.
// Anything that is not an AppError with a known code is a 500.
func HTTPStatus(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return status, appErr.Message
		}
	}

	return http.StatusInternalServerError, "Internal server error"
}
