// Package validation binds request data and validates it.
//
// It uses the `validator` library to enforce rules defined in struct
// tags and turns validation failures into field errors the client can
// understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds the request into payload and validates it.
// Both failures become a 400 *errs.HTTPError.
//
// payload must be a pointer so Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if err := payload.Validate(); err != nil {
		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errs.NewBadRequestError("Validation failed", nil, fieldErrors(validationErrors))
		}

		return errs.NewBadRequestError(err.Error(), nil, nil)
	}

	return nil
}

// bindErrorMessage takes the message echo attaches to binding errors
// (malformed JSON, type mismatches), falling back to a generic one.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func fieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	out := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "datetime":
			msg = "must be a date in YYYY-MM-DD format"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		out = append(out, errs.FieldError{Field: field, Error: msg})
	}

	return out
}
