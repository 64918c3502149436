package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension is matched by every DimensionError.
	ErrDimension = errors.New("dimension mismatch")
	// ErrInvalidSpec reports out-of-range design or plan inputs.
	ErrInvalidSpec = errors.New("invalid input")
	// ErrInvalidRange reports an unusable sweep range or variable.
	ErrInvalidRange = errors.New("invalid sweep range")
)

// DimensionError reports a monthly series whose length is not 12.
type DimensionError struct {
	Field string
	Got   int
	Want  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: got %d values, want %d", e.Field, e.Got, e.Want)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimension
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...)
}
