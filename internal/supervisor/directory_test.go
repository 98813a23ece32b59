package supervisor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vibeworks/vibe/internal/checks"
	"github.com/vibeworks/vibe/internal/state"
)

func TestRunDirectory_ProcessesFilesInOrder(t *testing.T) {
	captureUI(t)
	root := t.TempDir()
	dir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePromptFile(t, dir, "02-second.md", "second prompt")
	writePromptFile(t, dir, "01-first.txt", "first prompt")
	writePromptFile(t, dir, "notes.json", "ignored")

	inv := &fakeInvoker{}
	sup := New(root, inv, checks.NewRunner(&checks.ExecRunner{}))

	if err := sup.RunDirectory(context.Background(), dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.prompts) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(inv.prompts))
	}
	if inv.prompts[0] != "first prompt" || inv.prompts[1] != "second prompt" {
		t.Errorf("files not processed in filename order: %v", inv.prompts)
	}

	completed, err := state.NewStore(root).Completed(dir)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if !completed["01-first.txt"] || !completed["02-second.md"] {
		t.Errorf("expected both files marked complete, got %v", completed)
	}
}

func TestRunDirectory_EmptyDirectoryIsNotAnError(t *testing.T) {
	buf := captureUI(t)
	root := t.TempDir()
	dir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	inv := &fakeInvoker{}
	sup := New(root, inv, checks.NewRunner(&checks.ExecRunner{}))

	if err := sup.RunDirectory(context.Background(), dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.prompts) != 0 {
		t.Errorf("expected no invocations, got %d", len(inv.prompts))
	}
	if !strings.Contains(buf.String(), "No .txt or .md files found") {
		t.Errorf("expected warning about empty directory:\n%s", buf.String())
	}
}

func TestRunDirectory_StopsAtFirstFailure(t *testing.T) {
	captureUI(t)
	root := t.TempDir()
	dir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePromptFile(t, dir, "01-a.md", "prompt a")
	writePromptFile(t, dir, "02-b.md", "prompt b")
	writeProjectConfig(t, root, `
checks:
  steps:
    - name: lint
      command: exit 1
  max_retries: 0
`)

	inv := &fakeInvoker{}
	cmdCalls := 0
	sup := New(root, inv, checks.NewRunner(failingCmd(&cmdCalls)))

	err := sup.RunDirectory(context.Background(), dir)
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("expected ErrChecksFailed, got %v", err)
	}
	// Only the first file was attempted.
	if len(inv.prompts) != 1 {
		t.Errorf("expected 1 invocation, got %d", len(inv.prompts))
	}

	completed, _ := state.NewStore(root).Completed(dir)
	if len(completed) != 0 {
		t.Errorf("failed file must not be marked complete, got %v", completed)
	}
}

func TestRunDirectory_ResumesSkippingCompleted(t *testing.T) {
	captureUI(t)
	root := t.TempDir()
	dir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePromptFile(t, dir, "01-a.md", "prompt a")
	writePromptFile(t, dir, "02-b.md", "prompt b")

	if err := state.NewStore(root).MarkComplete(dir, "01-a.md"); err != nil {
		t.Fatal(err)
	}

	inv := &fakeInvoker{}
	sup := New(root, inv, checks.NewRunner(&checks.ExecRunner{}))

	if err := sup.RunDirectory(context.Background(), dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.prompts) != 1 {
		t.Fatalf("expected 1 invocation for the remaining file, got %d", len(inv.prompts))
	}
	if inv.prompts[0] != "prompt b" {
		t.Errorf("expected remaining prompt b, got %q", inv.prompts[0])
	}
}

func TestRunDirectory_AllCompletedAlready(t *testing.T) {
	buf := captureUI(t)
	root := t.TempDir()
	dir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePromptFile(t, dir, "01-a.md", "prompt a")

	if err := state.NewStore(root).MarkComplete(dir, "01-a.md"); err != nil {
		t.Fatal(err)
	}

	inv := &fakeInvoker{}
	sup := New(root, inv, checks.NewRunner(&checks.ExecRunner{}))

	if err := sup.RunDirectory(context.Background(), dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.prompts) != 0 {
		t.Errorf("expected no invocations, got %d", len(inv.prompts))
	}
	if !strings.Contains(buf.String(), "All prompt files in this directory have been completed.") {
		t.Errorf("expected completion notice:\n%s", buf.String())
	}
}
