// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is works against the sentinel
//
// Domain-specific errors that carry business context (insufficient loyalty
// balance, minimum order not met, ...) live next to their domain packages
// and follow the same sentinel/struct/unwrap shape.
package errs
