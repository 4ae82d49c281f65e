package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("account_role", oneOf("user", "seller", "admin"))
	_ = validate.RegisterValidation("shipping_method", oneOf("pickup", "delivery"))
	_ = validate.RegisterValidation("payout_status", oneOf("requested", "approved", "paid", "rejected"))
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FirstInvalidField returns the json name of the first failing field, or "".
func FirstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

// ValidationError converts a ValidateStruct failure into the client-facing
// AppError. A missing required field always reads "Missing fields".
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Validation("Invalid input", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return appErrors.NewAppError(appErrors.CodeValidation, appErrors.ErrMissingFields.Message, err)
	case "email":
		return appErrors.Validation("Invalid email", err)
	case "min", "max", "gt", "gte", "lte":
		return appErrors.Validation(fmt.Sprintf("Invalid %s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()), err)
	default:
		return appErrors.Validation("Invalid "+fe.Field(), err)
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(strings.ToLower(email)))
}

func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}
