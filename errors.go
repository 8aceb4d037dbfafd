package linq

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is the sentinel wrapped by every [InvalidOperationError].
// Callers that do not care which operator failed can match it directly with
// errors.Is.
var ErrEmptySequence = errors.New("sequence contains no elements")

// InvalidOperationError reports an operator that was applied to a sequence
// on which it is undefined. The only such condition in this package is an
// empty input to First, Last, Min, Max, or Average.
type InvalidOperationError struct {
	// Op names the operator that failed, such as "First" or "Average".
	Op string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("linq: %s: %v", e.Op, ErrEmptySequence)
}

// Unwrap makes errors.Is(err, ErrEmptySequence) hold for every
// InvalidOperationError.
func (e *InvalidOperationError) Unwrap() error {
	return ErrEmptySequence
}

// IsInvalidOperation reports whether err is, or wraps, an
// [InvalidOperationError].
func IsInvalidOperation(err error) bool {
	var ioErr *InvalidOperationError
	return errors.As(err, &ioErr)
}

func errEmpty(op string) error {
	return &InvalidOperationError{Op: op}
}
