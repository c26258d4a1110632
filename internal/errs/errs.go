// Package errs defines custom error types and utilities.
//
// Two families live here:
//   - HTTPError, the shape every failure takes on its way to the client.
//   - The domain taxonomy (ValidationError, DuplicateRecordError,
//     QueryExecutionError) returned by the repository and service layers
//     and converted into HTTPError by ToHTTPError.
package errs
