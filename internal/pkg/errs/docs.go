// Package errs provides the typed errors shared by the domain, the use cases
// and the adapters of the transportation service.
//
// Each error type follows the same pattern:
//   - a sentinel error (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Callers such as the HTTP adapter classify failures with errors.Is against
// the sentinels (ErrObjectNotFound maps to 404, ErrValueIsInvalid and
// ErrValueIsRequired map to 400) instead of matching on messages.
package errs
