package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"acordiario/internal/csvcodec"
	"acordiario/internal/state"
)

func clockAt(year int, month time.Month, day int) Clock {
	return func() time.Time { return time.Date(year, month, day, 18, 30, 0, 0, time.Local) }
}

func newTestApp(t *testing.T, clock Clock) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Backend = BackendMemory
	a, err := New(context.Background(), cfg, WithClock(clock))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{DataDir: "/tmp/x"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.UI.StyleVariant != "modern_arcade" {
		t.Fatalf("expected defaults to be filled, got %+v", cfg)
	}
}

func TestConfigValidateRejectsUnknownValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/x"
	cfg.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected backend error")
	}
	cfg = DefaultConfig()
	cfg.DataDir = "/tmp/x"
	cfg.UI.StyleVariant = "neon"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected style error")
	}
}

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "backend: file\nui:\n  style_variant: cozy_clean\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendFile || cfg.UI.StyleVariant != "cozy_clean" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.UI.ASCIIOnly {
		t.Fatalf("expected ascii_only to keep its default")
	}
}

func TestDashboardUsesPlanAndLogs(t *testing.T) {
	// Saturday right after the seed logs, before the first plan week.
	a := newTestApp(t, clockAt(2025, time.June, 21))
	d := a.Dashboard()
	if d.Task.Category != "Canto" || d.Task.Focus != "Free practice of Canto." {
		t.Fatalf("unexpected task %+v", d.Task)
	}
	if d.Icon != "🎤" {
		t.Fatalf("unexpected icon %q", d.Icon)
	}
	if d.Streak != 3 {
		t.Fatalf("expected streak anchored on yesterday, got %d", d.Streak)
	}
	if d.Summary.Sessions != 3 || d.Summary.TotalMinutes != 100 {
		t.Fatalf("unexpected summary %+v", d.Summary)
	}
	if d.Goals.Daily.Progress != 0 || d.Goals.Weekly.Progress != 100 {
		t.Fatalf("unexpected goals %+v", d.Goals)
	}
}

func TestLogSessionDefaultsToTodaysTask(t *testing.T) {
	a := newTestApp(t, clockAt(2025, time.June, 28))
	log, err := a.LogSession(context.Background(), SessionInput{Seconds: 89})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if log.Date != "2025-06-28" || log.Duration != 1 {
		t.Fatalf("unexpected date/duration %+v", log)
	}
	if log.Category != "Canto" || log.Focus != "Respiración y vocalización" {
		t.Fatalf("expected planned task, got %+v", log)
	}

	other, err := a.LogSession(context.Background(), SessionInput{Seconds: 1500, Category: "Guitarra", Notes: "rasgueo"})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if other.Duration != 25 || other.Focus != "" {
		t.Fatalf("expected no planned focus for another category, got %+v", other)
	}
	if d := a.Dashboard(); d.Goals.Daily.Progress != 26 || d.Streak != 1 {
		t.Fatalf("unexpected dashboard after sessions %+v", d.Goals.Daily)
	}
}

func TestLogSessionRejectsEmptyDuration(t *testing.T) {
	a := newTestApp(t, clockAt(2025, time.June, 28))
	if _, err := a.LogSession(context.Background(), SessionInput{}); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("expected empty session error, got %v", err)
	}
}

func TestExportImportFiles(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, clockAt(2025, time.June, 21))
	path := filepath.Join(t.TempDir(), csvcodec.DefaultFileName)
	written, err := a.ExportFile(path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(b), strings.Join(csvcodec.Header, ",")+"\n") {
		t.Fatalf("unexpected export header: %q", string(b))
	}

	n, err := a.ImportFile(ctx, written, csvcodec.Merge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 || a.Logs().Len() != 6 {
		t.Fatalf("expected merged import, n=%d len=%d", n, a.Logs().Len())
	}
	if _, err := a.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.csv"), csvcodec.Merge); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestSQLiteBackendPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.LogPath = filepath.Join(cfg.DataDir, "logs", "acordiario.jsonl")

	a, err := New(ctx, cfg, WithClock(clockAt(2025, time.June, 28)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.LogSession(ctx, SessionInput{Seconds: 600}); err != nil {
		t.Fatalf("log session: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen app: %v", err)
	}
	defer func() { _ = b.Close() }()
	if b.Logs().Len() != 4 {
		t.Fatalf("expected persisted session, got %d logs", b.Logs().Len())
	}
	if _, err := os.Stat(cfg.LogPath); err != nil {
		t.Fatalf("expected telemetry log file: %v", err)
	}
}

func TestInjectedStoreIsUsed(t *testing.T) {
	kv := state.NewMemory()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	a, err := New(context.Background(), cfg, WithStore(kv), WithClock(clockAt(2025, time.June, 28)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = a.Close() }()
	if _, err := a.LogSession(context.Background(), SessionInput{Seconds: 60}); err != nil {
		t.Fatalf("log session: %v", err)
	}
	if _, ok, _ := kv.Get(context.Background(), state.KeyPracticeLogs); !ok {
		t.Fatalf("expected write-through to injected store")
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "state.db")); !os.IsNotExist(err) {
		t.Fatalf("expected no sqlite file when a store is injected")
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	kv := state.NewMemory()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	viewer, err := New(ctx, cfg, WithStore(kv), WithClock(clockAt(2025, time.June, 28)))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	writer, err := New(ctx, cfg, WithStore(kv), WithClock(clockAt(2025, time.June, 28)))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := writer.LogSession(ctx, SessionInput{Seconds: 1200}); err != nil {
		t.Fatalf("log session: %v", err)
	}
	if viewer.Logs().Len() != 3 {
		t.Fatalf("viewer should not see the write before reload")
	}
	viewer.Reload(ctx)
	if viewer.Logs().Len() != 4 || viewer.Dashboard().Goals.Daily.Progress != 20 {
		t.Fatalf("expected reload to pick up the new session")
	}
}
