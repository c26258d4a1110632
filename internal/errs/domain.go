package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed payload field.
// Nothing is written to the database when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewRequiredFieldError builds the "<field> is required" validation error.
func NewRequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
}

// NewInvalidValueError builds the "Invalid value for <field>" validation error.
func NewInvalidValueError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Invalid value for %s", field)}
}

// DuplicateRecordError reports a unique-constraint violation on insert.
type DuplicateRecordError struct {
	Entity     string
	Constraint string
	Err        error
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("A record with this ID already exists in %s", e.Entity)
}

func (e *DuplicateRecordError) Unwrap() error {
	return e.Err
}

// QueryExecutionError reports any other database failure.
//
// Operation is a short label of what was attempted ("insert", "fetch",
// "report") and Target names the entity, table or report involved.
type QueryExecutionError struct {
	Operation string
	Target    string
	Err       error
}

func (e *QueryExecutionError) Error() string {
	if e.Operation == "insert" {
		return fmt.Sprintf("Failed to add to %s: %s", e.Target, cause(e.Err))
	}
	return cause(e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// cause returns the innermost message so driver errors are reported without
// the wrapping context added on the way up.
func cause(err error) string {
	if err == nil {
		return "unknown error"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// ToHTTPError converts a domain error into its HTTP shape.
// It returns nil when err belongs to none of the known kinds.
func ToHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewBadRequestError(validationErr.Message, nil, nil)
	}

	var duplicateErr *DuplicateRecordError
	if errors.As(err, &duplicateErr) {
		return NewConflictError(duplicateErr.Error(), nil)
	}

	var queryErr *QueryExecutionError
	if errors.As(err, &queryErr) {
		return NewInternalServerError(queryErr.Error())
	}

	return nil
}
