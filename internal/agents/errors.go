package agents

import (
	"errors"
	"fmt"
)

// Input validation failures. None of them are retriable.
var (
	ErrUnknownTone      = errors.New("unknown tone")
	ErrUnknownPlatform  = errors.New("unknown platform")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrNoData           = errors.New("no engagement data")
)

// ValidationError carries the offending input alongside one of the sentinel errors
type ValidationError struct {
	Err   error
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownTone) ||
		errors.Is(err, ErrUnknownPlatform) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrNoData)
}
