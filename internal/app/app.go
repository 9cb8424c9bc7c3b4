package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"acordiario/internal/csvcodec"
	"acordiario/internal/logstore"
	"acordiario/internal/metrics"
	"acordiario/internal/plan"
	"acordiario/internal/practice"
	"acordiario/internal/state"
	"acordiario/internal/telemetry"
)

var ErrEmptySession = errors.New("session has no duration")

type App struct {
	cfg Config

	logger *telemetry.JSONLogger
	extra  telemetry.Logger
	diag   telemetry.Fanout
	kv     Store
	plan   plan.StudyPlan
	logs   *logstore.LogStore
	now    Clock
}

type Option func(*App)

// WithClock fixes the time source, mainly for tests.
func WithClock(c Clock) Option {
	return func(a *App) {
		if c != nil {
			a.now = c
		}
	}
}

// WithDiagnostics adds a sink next to the JSON log file, such as a console
// logger.
func WithDiagnostics(l telemetry.Logger) Option {
	return func(a *App) { a.extra = l }
}

// WithStore injects a backend instead of opening the configured one.
func WithStore(kv Store) Option {
	return func(a *App) { a.kv = kv }
}

func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.diag = telemetry.Fanout{logger, a.extra}

	p, err := plan.NewLoader().Load(cfg.PlanPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	a.plan = p

	if a.kv == nil {
		kv, err := openBackend(ctx, cfg)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		a.kv = kv
	}

	a.logs = logstore.New(ctx, a.kv, logstore.WithLogger(a.diag))
	a.diag.Info("app.start", map[string]any{
		"backend":  cfg.Backend,
		"data_dir": cfg.DataDir,
		"plan":     p.Name,
		"logs":     a.logs.Len(),
	})
	return a, nil
}

func openBackend(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return state.NewMemory(), nil
	case BackendFile:
		return state.NewFileStore(cfg.DataDir)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
		store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	}
}

func (a *App) Close() error {
	var err error
	if a.kv != nil {
		err = a.kv.Close()
	}
	if a.logger != nil {
		a.logger.Info("app.stop", nil)
		if cerr := a.logger.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reload rereads logs and settings from the backend, picking up writes made
// by other processes.
func (a *App) Reload(ctx context.Context) {
	a.logs = logstore.New(ctx, a.kv, logstore.WithLogger(a.diag))
	a.diag.Info("app.reload", map[string]any{"logs": a.logs.Len()})
}

func (a *App) Config() Config { return a.cfg }
func (a *App) Plan() plan.StudyPlan { return a.plan }
func (a *App) Logs() *logstore.LogStore { return a.logs }
func (a *App) Logger() telemetry.Logger { return a.diag }

// Today is the current calendar day in the local zone.
func (a *App) Today() time.Time { return a.now() }

func (a *App) TodayTask() plan.Task {
	return a.plan.ResolveToday(a.now())
}

func (a *App) Dashboard() Dashboard {
	return buildDashboard(a.logs, a.plan, a.now())
}

func buildDashboard(g Goals, p plan.StudyPlan, today time.Time) Dashboard {
	logs := g.Logs()
	settings := g.Settings()
	task := p.ResolveToday(today)
	return Dashboard{
		Today:    today,
		Task:     task,
		Icon:     p.Icon(task.Category),
		Streak:   metrics.CalculateStreak(logs, today),
		Goals:    metrics.GoalProgress(logs, settings, today),
		Summary:  metrics.Summarize(logs, p.Categories),
		Settings: settings,
	}
}

// LogSession records a finished session. Seconds are rounded to whole
// minutes with a floor of one; the planned task fills in what the caller left
// empty.
func (a *App) LogSession(ctx context.Context, in SessionInput) (practice.PracticeLog, error) {
	if in.Seconds <= 0 {
		return practice.PracticeLog{}, ErrEmptySession
	}
	today := a.now()
	task := a.plan.ResolveToday(today)

	log := practice.PracticeLog{
		Date:     in.Date,
		Duration: practice.MinutesFromSeconds(in.Seconds),
		Category: in.Category,
		Focus:    in.Focus,
		Notes:    in.Notes,
	}
	if log.Date == "" {
		log.Date = practice.DateOf(today)
	}
	if log.Category == "" {
		log.Category = task.Category
	}
	if log.Focus == "" && log.Category == task.Category {
		log.Focus = task.Focus
	}
	return a.logs.AddLog(ctx, log)
}

func (a *App) History() []metrics.HistoryEntry {
	return metrics.History(a.logs.Logs())
}

func (a *App) Calendar(year int, month time.Month) []metrics.DayTotal {
	return metrics.MonthCalendar(a.logs.Logs(), year, month)
}

// ExportFile writes the CSV export to path, or to the default file name in
// the working directory when path is empty. It returns the path written.
func (a *App) ExportFile(path string) (string, error) {
	if path == "" {
		path = csvcodec.DefaultFileName
	}
	if err := os.WriteFile(path, []byte(a.logs.Export()), 0o644); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	a.diag.Info("export.written", map[string]any{"path": path, "logs": a.logs.Len()})
	return path, nil
}

func (a *App) ImportFile(ctx context.Context, path string, policy csvcodec.ImportPolicy) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	return a.logs.Import(ctx, string(b), policy)
}
