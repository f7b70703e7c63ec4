// Package errs provides standardized error types for the seller console core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for input validation and lookups:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the domain taxonomy surfaced to callers of the core:
//   - InvalidTransitionError: the requested status is not reachable from the current one
//   - ConflictError: the caller holds a stale version (refetch and retry)
//   - RecipientUnresolvableError: notification fan-out could not find a user account
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works
package errs
