// Package errs provides standardized error types for the orderflow
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the codebase.
//
// The package defines one error type per failure class in the command
// surface's taxonomy:
//   - ValueIsRequiredError: a required value is missing (validation)
//   - ValueIsInvalidError: a value is malformed (validation)
//   - ValueIsOutOfRangeError: a value is outside its bounds (validation)
//   - ObjectNotFoundError: an order, item, or record is unknown
//   - InvalidTransitionError: a command is not valid for the current status
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrObjectNotFound), a struct with the failure's details, constructor
// functions with and without a cause, an Error() method for formatting, and
// an Unwrap() method so errors.Is classifies against the sentinel.
//
// All failures are local to the command that caused them: a rejected command
// leaves the authoritative order, its projections, and its timeline
// untouched.
package errs
