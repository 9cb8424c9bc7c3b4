package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestReportsWrites(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(dir, WithDebounce(20*time.Millisecond))
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "practiceLogs.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitChange(t, w)
}

func TestBurstIsCoalesced(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(dir, WithDebounce(100*time.Millisecond))
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	path := filepath.Join(dir, "userSettings.json")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"dailyGoal":30}`), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	waitChange(t, w)
	select {
	case <-w.Changes():
		t.Fatalf("expected a single notification for one burst")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFilterIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(dir,
		WithDebounce(20*time.Millisecond),
		WithFilter(func(name string) bool { return strings.HasSuffix(name, ".json") }),
	)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-w.Changes():
		t.Fatalf("unexpected change for filtered file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStartTwiceAndMissingDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(t.TempDir())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Start(ctx); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if err := New(filepath.Join(t.TempDir(), "missing")).Start(ctx); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
