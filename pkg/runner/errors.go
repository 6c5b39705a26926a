package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch is returned when the simulator output differs from the reference
	ErrMismatch = errors.New("output does not match reference")
)

// MismatchError carries the rendered diff of a failed comparison
type MismatchError struct {
	ID        int
	Reference string
	Diff      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("test %d: %v '%s'", e.ID, ErrMismatch, e.Reference)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}
