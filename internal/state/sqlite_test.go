package state

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestSQLiteGetMissingKey(t *testing.T) {
	store := newTestSQLite(t)
	_, ok, err := store.Get(context.Background(), KeyPracticeLogs)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected missing key")
	}
}

func TestSQLitePutOverwrites(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()
	if err := store.Put(ctx, KeyUserSettings, []byte(`{"dailyGoal":30,"weeklyGoal":180}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, KeyUserSettings, []byte(`{"dailyGoal":45,"weeklyGoal":180}`)); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, ok, err := store.Get(ctx, KeyUserSettings)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"dailyGoal":45,"weeklyGoal":180}` {
		t.Fatalf("unexpected value %s", got)
	}
	ts, err := store.UpdatedAt(ctx, KeyUserSettings)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if ts.IsZero() {
		t.Fatalf("expected updated timestamp")
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()
	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := store.Put(ctx, KeyPracticeLogs, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, _, err := store.Get(ctx, KeyPracticeLogs); err != ErrClosed {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if err := reopened.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema again: %v", err)
	}
	got, ok, err := reopened.Get(ctx, KeyPracticeLogs)
	if err != nil || !ok || string(got) != `[]` {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}
