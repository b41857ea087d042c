// errors.go defines sentinel errors for validation failures.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrNameTooLong     = errors.New("name too long")
	ErrContentTooLarge = errors.New("content too large")
)
