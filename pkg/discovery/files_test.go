package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandArgsFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jsonl")
	touch(t, a)

	files, err := ExpandArgs([]string{a})
	if err != nil {
		t.Fatalf("ExpandArgs() error = %v", err)
	}
	if diff := cmp.Diff([]string{a}, files); diff != "" {
		t.Errorf("ExpandArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandArgsDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.jsonl"))
	touch(t, filepath.Join(dir, "a.jsonl"))
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := ExpandArgs([]string{dir})
	if err != nil {
		t.Fatalf("ExpandArgs() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jsonl"),
		filepath.Join(dir, "b.jsonl"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("ExpandArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandArgsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jsonl")
	touch(t, a)

	// A missing argument is skipped, the rest still resolve.
	files, err := ExpandArgs([]string{"/nonexistent/run.jsonl", a})
	if err != nil {
		t.Fatalf("ExpandArgs() error = %v", err)
	}
	if diff := cmp.Diff([]string{a}, files); diff != "" {
		t.Errorf("ExpandArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandArgsNothingFound(t *testing.T) {
	if _, err := ExpandArgs([]string{t.TempDir()}); err == nil {
		t.Error("ExpandArgs() expected error when no arguments resolve")
	}
	if _, err := ExpandArgs([]string{"/nonexistent/run.jsonl"}); err == nil {
		t.Error("ExpandArgs() expected error when no arguments resolve")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/logs/run.jsonl"); got != filepath.Join(home, "logs/run.jsonl") {
		t.Errorf("ExpandPath(~/logs/run.jsonl) = %q", got)
	}
	if got := ExpandPath("/abs/run.jsonl"); got != "/abs/run.jsonl" {
		t.Errorf("ExpandPath(/abs/run.jsonl) = %q", got)
	}
}
