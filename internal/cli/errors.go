package cli

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps err so HandleError exits without printing it again.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// ExitCode maps err to a process exit status. A shell that exited with a
// status passes it on; everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// HandleError prints err unless it was already reported and returns the exit code.
func HandleError(w io.Writer, tool string, err error) int {
	var reported *reportedError
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &reported), errors.As(err, &exitErr):
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintf(w, "Run '%s --help' for usage information.\n", tool)
	}
	return ExitCode(err)
}
