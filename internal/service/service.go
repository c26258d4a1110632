// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives payloads from the handler, applies the inventory field
// specs and report windows, and calls repository methods to interact
// with the data.
package service

import (
	"errors"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/deppfellow/store-inventory/internal/metrics"
)

// outcome maps an error onto a metrics outcome label.
func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return metrics.OutcomeInvalid
	}

	var duplicateErr *errs.DuplicateRecordError
	if errors.As(err, &duplicateErr) {
		return metrics.OutcomeDuplicate
	}

	return metrics.OutcomeError
}
