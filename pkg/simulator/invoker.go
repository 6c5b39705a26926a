// Package simulator runs the instruction set simulator under test as a child process.
//
// The simulator is a black box consumed through its command line:
//
//	<simulator> [--execute] [--show-ip] [--show-estimates] [--dump-memory <path>] <object>
//
// Exit status 0 means the result text is on standard output. Any other status is a
// hard failure, with standard error as the failure detail.
package simulator

import (
	"bytes"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Manu343726/simcheck/pkg/logging"
	"github.com/Manu343726/simcheck/pkg/utils"
)

// DefaultBinary is the simulator executable used when none is configured
const DefaultBinary = "./sim8086.bin"

// Invoker runs the simulator binary
type Invoker struct {
	// Binary is the path to the simulator executable
	Binary string

	// Prefix arguments are passed before the profile flags. Useful to run the simulator
	// through a wrapper (an interpreter, a test helper process, etc)
	Prefix []string

	// Env, if not nil, is appended to the inherited environment of the child process
	Env []string

	logger *slog.Logger
}

// NewInvoker returns an invoker for the given simulator binary. A nil logger discards logs.
func NewInvoker(binary string, logger *slog.Logger) *Invoker {
	if binary == "" {
		binary = DefaultBinary
	}

	if logger == nil {
		logger = logging.Discard()
	}

	return &Invoker{
		Binary: binary,
		logger: logger,
	}
}

// Args returns the full argument list (without the binary) used to run objectPath
// with the given profile
func (i *Invoker) Args(objectPath string, profile Profile) []string {
	args := make([]string, 0, len(i.Prefix)+5)
	args = append(args, i.Prefix...)
	args = append(args, profile.Flags()...)
	return append(args, objectPath)
}

// Run runs the simulator on objectPath and returns its standard output, trimmed
func (i *Invoker) Run(objectPath string, profile Profile) (string, error) {
	args := i.Args(objectPath, profile)
	argv := append([]string{i.Binary}, args...)

	i.logger.Debug("invoking simulator", "argv", strings.Join(argv, " "), "profile", profile.String())

	cmd := exec.Command(i.Binary, args...)
	if i.Env != nil {
		cmd.Env = append(cmd.Environ(), i.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			invocationErr := &InvocationError{
				Args:     argv,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
			i.logger.Debug("simulator failed", "exit_code", invocationErr.ExitCode, "stderr", invocationErr.Stderr)
			return "", invocationErr
		}

		return "", utils.MakeError(ErrInvocation, "could not run '%s': %v", strings.Join(argv, " "), err)
	}

	i.logger.Debug("simulator finished", "stdout_bytes", stdout.Len())

	return strings.TrimSpace(stdout.String()), nil
}
