package cli

import (
	"fmt"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitReject = 2
)

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case reject.CodeOf(err) != "":
		return ExitReject
	default:
		return ExitError
	}
}

// FormatError renders err for the terminal. Rejects print their code first
// so scripts can match on it.
func FormatError(err error) string {
	r, ok := reject.As(err)
	if !ok {
		return "Error: " + err.Error()
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Code, r.Message, r.Detail)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}
