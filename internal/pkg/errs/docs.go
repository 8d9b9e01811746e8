// Package errs provides the standardized error types shared across the
// application layers.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Beyond the generic validation errors (required, invalid, out of range,
// not found), the package defines the failures specific to the order routing
// core: invalid lifecycle transitions carrying the attempted from/to pair,
// per-order transition conflicts lost to a concurrent writer, and remote-call
// failures split into timeouts and unavailability so callers can tell
// retryable infrastructure faults from terminal business errors.
package errs
