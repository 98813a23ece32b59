// Package supervisor orchestrates one supervised run: invoke the assistant
// with a prompt, then run the project's configured checks, re-invoking the
// assistant with fix instructions while checks fail and the retry budget
// allows.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vibeworks/vibe/internal/checks"
	"github.com/vibeworks/vibe/internal/claude"
	"github.com/vibeworks/vibe/internal/config"
	"github.com/vibeworks/vibe/internal/history"
	"github.com/vibeworks/vibe/internal/ui"
)

// ErrChecksFailed is the terminal outcome when configured checks are still
// failing after the retry budget is spent. It is a reported failure, not a
// crash.
var ErrChecksFailed = errors.New("configured checks did not pass")

// Supervisor composes the assistant invoker and the check runner for a
// single project root.
type Supervisor struct {
	root    string
	invoker claude.Invoker
	runner  *checks.Runner
	history *history.Store // optional
}

// New creates a Supervisor operating in the given project root.
func New(root string, invoker claude.Invoker, runner *checks.Runner) *Supervisor {
	return &Supervisor{
		root:    root,
		invoker: invoker,
		runner:  runner,
	}
}

// SetHistory attaches a run-history store. History write failures are
// warnings, never fatal to the run.
func (s *Supervisor) SetHistory(h *history.Store) {
	s.history = h
}

// RunFile processes a single prompt file: load project config, read the
// prompt, invoke the assistant, then run the configured checks with retry.
func (s *Supervisor) RunFile(ctx context.Context, promptFile string) error {
	// Config is loaded before anything else so a malformed file aborts the
	// run before any subprocess is started.
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	prompt, err := readPrompt(promptFile)
	if err != nil {
		return err
	}

	if _, err := s.invoke(ctx, prompt, promptFile); err != nil {
		return err
	}

	return s.runConfiguredChecks(ctx, cfg)
}

// loadConfig loads the project configuration and reports what was found.
func (s *Supervisor) loadConfig() (*config.ProjectConfig, error) {
	cfg, found, err := config.Load(s.root)
	if err != nil {
		return nil, err
	}
	if !found {
		ui.Infof("No project configuration found (%s), skipping checks", config.RelPath)
	} else if cfg.Checks != nil {
		ui.Infof("Loaded project configuration with %d check(s)", len(cfg.Checks.Steps))
	}
	return cfg, nil
}

// readPrompt reads and validates the prompt file contents.
func readPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading prompt file: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("prompt file %s is empty", path)
	}
	return content, nil
}

// invoke runs one assistant invocation and displays the parsed result.
// Source identifies what produced the prompt for the history record.
func (s *Supervisor) invoke(ctx context.Context, prompt, source string) (*claude.Result, error) {
	ui.Infof("Running Claude with prompt:\n-------\n%s\n-------", prompt)

	start := time.Now()
	res, err := s.invoker.Invoke(ctx, prompt)
	durationMs := int(time.Since(start).Milliseconds())

	if err != nil {
		s.logAssistantCall(source, "", true, durationMs)
		var cmdErr *claude.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
			ui.Errorf("Error output: %s", cmdErr.Stderr)
		}
		var parseErr *claude.ParseError
		if errors.As(err, &parseErr) {
			ui.Errorf("Raw output: %s", parseErr.RawOutput)
		}
		return nil, err
	}

	ui.Infof("---- Claude output ----")
	ui.JSON(res.Raw)
	if res.SessionID != "" {
		ui.Infof("Session ID: %s", res.SessionID)
	}
	if res.Text != "" {
		ui.Infof("%s", res.Text)
	}

	s.logAssistantCall(source, res.SessionID, res.IsError, durationMs)
	return res, nil
}

func (s *Supervisor) logAssistantCall(source, sessionID string, isError bool, durationMs int) {
	if s.history == nil {
		return
	}
	if err := s.history.LogAssistantCall(source, sessionID, isError, durationMs); err != nil {
		ui.Warningf("record assistant call: %v", err)
	}
}

// runConfiguredChecks runs the check suite with retry and reports the final
// status. Returns ErrChecksFailed when checks are still failing at the end.
func (s *Supervisor) runConfiguredChecks(ctx context.Context, cfg *config.ProjectConfig) error {
	if cfg.Checks == nil {
		return nil
	}
	if len(cfg.Checks.Steps) == 0 {
		ui.Infof("No checks configured")
		return nil
	}

	ui.Infof("Running configured checks...")
	results := s.runWithRetry(ctx, cfg.Checks)

	failed := checks.Failed(results)
	if passed := len(results) - len(failed); passed > 0 {
		ui.Infof("Passed checks: %d/%d", passed, len(results))
	}
	if len(failed) > 0 {
		ui.Warningf("Failed checks: %d/%d", len(failed), len(results))
		for _, r := range failed {
			ui.Errorf("  - %s", r.Step.Name)
			ui.Errorf("    %s", strings.TrimSpace(checks.FailureOutput(r)))
		}
		return ErrChecksFailed
	}
	return nil
}

// runWithRetry runs all steps, and while any fail, asks the assistant to fix
// them and re-runs the whole suite. The retry counter is global across the
// run; at most cfg.MaxRetries fix invocations happen after the initial pass.
func (s *Supervisor) runWithRetry(ctx context.Context, cfg *config.ChecksConfig) []checks.Result {
	retry := 0
	for {
		if retry > 0 {
			ui.Infof("Retry attempt %d/%d", retry, cfg.MaxRetries)
		}

		results := s.runPass(ctx, cfg.Steps, retry)
		failed := checks.Failed(results)
		if len(failed) == 0 {
			ui.Successf("All checks passed!")
			return results
		}
		if retry >= cfg.MaxRetries {
			ui.Warningf("Reached maximum retries (%d). Some checks still failing.", cfg.MaxRetries)
			return results
		}

		ui.Infof("Calling Claude to fix failing checks...")
		if _, err := s.invoke(ctx, BuildFixPrompt(failed), "fix"); err != nil {
			ui.Errorf("Error: %v", err)
			ui.Warningf("Claude fix execution failed, continuing with current results")
			return results
		}
		ui.Infof("Claude fix execution completed, re-running checks...")
		retry++
	}
}

// runPass executes every configured step once and reports each outcome.
func (s *Supervisor) runPass(ctx context.Context, steps []config.CheckStep, round int) []checks.Result {
	results := s.runner.RunAll(ctx, s.root, steps)
	for _, r := range results {
		if r.Passed {
			ui.Infof("Check '%s' passed", r.Step.Name)
		} else {
			ui.Errorf("Check '%s' failed with exit code %d", r.Step.Name, r.ExitCode)
		}
		if s.history != nil {
			if err := s.history.LogCheckRun(r.Step.Name, r.Step.Command, r.Passed, r.ExitCode, round, r.DurationMs); err != nil {
				ui.Warningf("record check run: %v", err)
			}
		}
	}
	return results
}

// BuildFixPrompt synthesizes a deterministic fix prompt from failed check
// results, in their original order: each failed command, then each captured
// output labeled by step name.
func BuildFixPrompt(failed []checks.Result) string {
	bullets := make([]string, 0, len(failed))
	outputs := make([]string, 0, len(failed))
	for _, f := range failed {
		bullets = append(bullets, fmt.Sprintf("- `%s`", f.Step.Command))
		outputs = append(outputs, fmt.Sprintf("%s:\n%s", f.Step.Name, checks.FailureOutput(f)))
	}
	return fmt.Sprintf(
		"The following checks failed:\n%s\n\nError outputs:\n%s\n\nPlease run these commands and fix all found issues.",
		strings.Join(bullets, "\n"),
		strings.Join(outputs, "\n"),
	)
}
