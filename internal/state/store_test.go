package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := s.Get(ctx, "practiceLogs"); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}
	if err := s.Put(ctx, "practiceLogs", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "practiceLogs", []byte("v2")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get(ctx, "practiceLogs")
	if err != nil || !ok || string(got) != "v2" {
		t.Fatalf("expected v2, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	exerciseStore(t, m)
	_ = m.Close()
	if err := m.Put(context.Background(), "k", nil); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseStore(t, f)
	if _, err := os.Stat(filepath.Join(dir, "practiceLogs.json")); err != nil {
		t.Fatalf("expected blob file: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
	if err := f.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatalf("expected invalid key to be rejected")
	}
}
