package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel is returned when a record write references a model that
	// was never registered.
	ErrUnknownModel = errors.New("unknown model")

	ErrModelNotFound  = errors.New("model not found")
	ErrEntityNotFound = errors.New("entity not found")

	// ErrIncompatibleModel is returned when a re-registration removes or retypes
	// members instead of only adding them.
	ErrIncompatibleModel = errors.New("incompatible model re-registration")
)

// DecodeError reports malformed event data or receipts.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErrorf(format string, args ...any) error {
	return &DecodeError{Err: fmt.Errorf(format, args...)}
}

// NewDecodeError wraps err as a DecodeError.
func NewDecodeError(format string, args ...any) error {
	return decodeErrorf(format, args...)
}
