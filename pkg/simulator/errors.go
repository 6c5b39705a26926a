package simulator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvocation is returned when the simulator could not be run or failed
	ErrInvocation = errors.New("simulator invocation failed")
)

// InvocationError is returned when the simulator exits with a nonzero status.
// Stderr holds the simulator's standard error, trimmed.
type InvocationError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *InvocationError) Error() string {
	message := fmt.Sprintf("%v: '%s' exited with status %d", ErrInvocation, strings.Join(e.Args, " "), e.ExitCode)

	if e.Stderr != "" {
		message += ": " + e.Stderr
	}

	return message
}

func (e *InvocationError) Unwrap() error {
	return ErrInvocation
}
