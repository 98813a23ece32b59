// Package claude invokes the Claude Code CLI headlessly and parses its
// JSON output.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
)

// Result is the JSON object Claude prints on stdout in --output-format json
// mode. Raw holds the unmodified bytes for display.
type Result struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Text      string `json:"result"`
	IsError   bool   `json:"is_error"`
	Raw       []byte `json:"-"`
}

// Invoker runs one headless assistant invocation. It is the substitution
// point for tests: implementations must not be retried or interpreted here,
// failures are surfaced to the caller as typed errors.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (*Result, error)
}

// Swappable in tests to avoid spawning real processes.
var (
	lookPath       = exec.LookPath
	commandContext = exec.CommandContext
)

// CLI invokes the real claude binary in a working directory.
type CLI struct {
	Dir string
}

// Available reports whether the claude command exists in PATH.
func Available() bool {
	_, err := lookPath("claude")
	return err == nil
}

// Invoke runs claude non-interactively with the given prompt and parses the
// single JSON object it prints on stdout.
func (c *CLI) Invoke(ctx context.Context, prompt string) (*Result, error) {
	if !Available() {
		return nil, &NotFoundError{}
	}

	// --dangerously-skip-permissions is required for non-interactive use;
	// the allowed tool set is restricted to match.
	cmd := commandContext(ctx, "claude",
		"-p", prompt,
		"--output-format", "json",
		"--allowedTools", "Bash,Read,Edit",
		"--dangerously-skip-permissions",
	)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &NotFoundError{}
		}
		return nil, &CommandError{ExitCode: -1, Stderr: err.Error()}
	}

	return Parse(stdout.Bytes())
}

// Parse decodes claude's stdout into a Result.
func Parse(out []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, &ParseError{RawOutput: string(out), Err: err}
	}
	res.Raw = out
	return &res, nil
}
