package auth

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tousif31/simple-to-do-list/apperror"
)

var validate = validator.New()

// Validate checks v's `validate` struct tags and reports the first failure
// as a ValidationError with a client-facing message such as "Title is required".
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.NewValidationError("Invalid request", err)
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "email":
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	case "max":
		msg = fmt.Sprintf("%s is too long", fe.Field())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperror.NewValidationError(msg, err)
}
