package claude

import "fmt"

// NotFoundError means the claude binary is not installed or not in PATH.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "'claude' command not found. Please ensure Claude Code is installed."
}

// CommandError means the claude subprocess exited non-zero (or could not
// run at all, in which case ExitCode is -1).
type CommandError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("claude command failed with exit code %d", e.ExitCode)
}

// ParseError means claude's stdout was not the expected JSON object.
type ParseError struct {
	RawOutput string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse claude output as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
