package sqlerr

import (
	"errors"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCode reports the Code of err.
//
// Both an already converted *Error and a raw *pgconn.PgError anywhere in the
// chain are recognized; everything else is Other.
func ErrCode(err error) Code {
	if sqlErr := Classify(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// Classify returns the normalized form of the first driver error found in
// err's chain, or nil when there is none.
func Classify(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

// ConvertPgError converts a raw *pgconn.PgError into our Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts any error into an application-level error.
//
// The repositories classify driver errors themselves, so only the errs
// taxonomy is resolved here; anything else is a generic 500.
func HandleError(err error) error {
	if httpErr := errs.ToHTTPError(err); httpErr != nil {
		return httpErr
	}
	return errs.NewInternalServerError("")
}
