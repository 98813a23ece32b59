// Package checks executes configured check commands and reports results.
package checks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/vibeworks/vibe/internal/config"
)

// Result holds the outcome of one check step execution.
type Result struct {
	Step       config.CheckStep `json:"step"`
	Passed     bool             `json:"passed"`
	ExitCode   int              `json:"exit_code"`
	DurationMs int              `json:"duration_ms"`
	Stdout     string           `json:"stdout,omitempty"`
	Stderr     string           `json:"stderr,omitempty"`
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string) (stdout string, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner by shelling out.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, command string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("exec: %w", err)
		}
	}
	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}

// Runner executes check steps sequentially in a working directory.
type Runner struct {
	cmd CommandRunner
}

// NewRunner creates a Runner with the given command runner.
func NewRunner(cmd CommandRunner) *Runner {
	return &Runner{cmd: cmd}
}

// RunAll executes every step in order and returns one Result per step,
// in the same order. It never stops early: all steps run once per pass.
// A command that cannot be launched at all becomes a failed Result whose
// Stderr carries the launch error.
func (r *Runner) RunAll(ctx context.Context, dir string, steps []config.CheckStep) []Result {
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		results = append(results, r.runOne(ctx, dir, step))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, dir string, step config.CheckStep) Result {
	start := time.Now()
	stdout, stderr, exitCode, err := r.cmd.Run(ctx, dir, step.Command)
	durationMs := int(time.Since(start).Milliseconds())

	if err != nil {
		return Result{
			Step:       step,
			Passed:     false,
			ExitCode:   -1,
			DurationMs: durationMs,
			Stdout:     stdout,
			Stderr:     err.Error(),
		}
	}

	return Result{
		Step:       step,
		Passed:     exitCode == 0,
		ExitCode:   exitCode,
		DurationMs: durationMs,
		Stdout:     stdout,
		Stderr:     stderr,
	}
}

// Failed filters a pass's results down to the failing ones, preserving order.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// FailureOutput picks the most useful captured output for a failed result:
// stderr if present, then stdout, then a placeholder.
func FailureOutput(r Result) string {
	if strings.TrimSpace(r.Stderr) != "" {
		return r.Stderr
	}
	if strings.TrimSpace(r.Stdout) != "" {
		return r.Stdout
	}
	return "No output"
}
