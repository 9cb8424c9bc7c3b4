// Package logstore owns the practice-log collection and the user's goals.
// Every mutation is written through to a state.Store before it becomes
// visible; a failed write leaves memory and storage unchanged.
package logstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"acordiario/internal/csvcodec"
	"acordiario/internal/practice"
	"acordiario/internal/state"
)

var (
	ErrIndexOutOfRange = errors.New("log index out of range")
	ErrNotFound        = errors.New("log not found")
)

type LogStore struct {
	mu       sync.RWMutex
	kv       state.Store
	logger   Logger
	newID    func() string
	logs     []practice.PracticeLog
	settings practice.UserSettings
}

// New loads logs and settings from kv. Missing, unreadable or malformed data
// falls back to the seed logs and default settings; New never fails.
func New(ctx context.Context, kv state.Store, opts ...Option) *LogStore {
	s := &LogStore{kv: kv, logger: nopLogger{}, newID: defaultID}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *LogStore) load(ctx context.Context) {
	logs, ok := s.readLogs(ctx)
	seeded := !ok
	if seeded {
		logs = practice.SeedLogs()
	}
	assigned := 0
	for i := range logs {
		if logs[i].ID == "" {
			logs[i].ID = s.newID()
			assigned++
		}
	}
	s.logs = logs

	settings, ok := s.readSettings(ctx)
	if !ok {
		settings = practice.DefaultSettings()
	}
	s.settings = settings

	// Seeds are not written back, matching a fresh install that has never
	// saved anything. Legacy entries that just got IDs are.
	if !seeded && assigned > 0 {
		if err := s.writeLogs(ctx, logs); err != nil {
			s.logger.Warn("logstore.backfill_ids_failed", map[string]any{"error": err})
		} else {
			s.logger.Info("logstore.backfill_ids", map[string]any{"count": assigned})
		}
	}
}

func (s *LogStore) readLogs(ctx context.Context) ([]practice.PracticeLog, bool) {
	b, ok, err := s.kv.Get(ctx, state.KeyPracticeLogs)
	if err != nil {
		s.logger.Warn("logstore.read_failed", map[string]any{"key": state.KeyPracticeLogs, "error": err})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var logs []practice.PracticeLog
	if err := json.Unmarshal(b, &logs); err != nil || logs == nil {
		s.logger.Warn("logstore.malformed", map[string]any{"key": state.KeyPracticeLogs, "error": err})
		return nil, false
	}
	return logs, true
}

func (s *LogStore) readSettings(ctx context.Context) (practice.UserSettings, bool) {
	b, ok, err := s.kv.Get(ctx, state.KeyUserSettings)
	if err != nil {
		s.logger.Warn("logstore.read_failed", map[string]any{"key": state.KeyUserSettings, "error": err})
		return practice.UserSettings{}, false
	}
	if !ok {
		return practice.UserSettings{}, false
	}
	// Keys missing from the blob keep their defaults.
	settings := practice.DefaultSettings()
	if err := json.Unmarshal(b, &settings); err != nil {
		s.logger.Warn("logstore.malformed", map[string]any{"key": state.KeyUserSettings, "error": err})
		return practice.UserSettings{}, false
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warn("logstore.malformed", map[string]any{"key": state.KeyUserSettings, "error": err})
		return practice.UserSettings{}, false
	}
	return settings, true
}

func (s *LogStore) writeLogs(ctx context.Context, logs []practice.PracticeLog) error {
	b, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}
	if err := s.kv.Put(ctx, state.KeyPracticeLogs, b); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}

func (s *LogStore) writeSettings(ctx context.Context, settings practice.UserSettings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Put(ctx, state.KeyUserSettings, b); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// commitLogs persists next and only then installs it. Callers hold s.mu.
func (s *LogStore) commitLogs(ctx context.Context, next []practice.PracticeLog) error {
	if err := s.writeLogs(ctx, next); err != nil {
		s.logger.Error("logstore.write_failed", map[string]any{"key": state.KeyPracticeLogs, "error": err})
		return err
	}
	s.logs = next
	return nil
}

// Logs returns a copy of the collection in insertion order.
func (s *LogStore) Logs() []practice.PracticeLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]practice.PracticeLog(nil), s.logs...)
}

func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

func (s *LogStore) Settings() practice.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Get returns the log at index.
func (s *LogStore) Get(index int) (practice.PracticeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(index); err != nil {
		return practice.PracticeLog{}, err
	}
	return s.logs[index], nil
}

// IndexOf returns the current index of the log with id, or -1.
func (s *LogStore) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id)
}

func (s *LogStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, l := range s.logs {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *LogStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.logs) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.logs))
	}
	return nil
}

// AddLog appends log and returns it with its new ID. Duplicate dates are
// allowed.
func (s *LogStore) AddLog(ctx context.Context, log practice.PracticeLog) (practice.PracticeLog, error) {
	if err := log.Validate(); err != nil {
		return practice.PracticeLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = s.newID()
	next := make([]practice.PracticeLog, len(s.logs), len(s.logs)+1)
	copy(next, s.logs)
	next = append(next, log)
	if err := s.commitLogs(ctx, next); err != nil {
		return practice.PracticeLog{}, err
	}
	s.logger.Info("log.added", map[string]any{"id": log.ID, "date": log.Date, "minutes": log.Duration})
	return log, nil
}

// UpdateLog replaces the log at index. The slot keeps its ID.
func (s *LogStore) UpdateLog(ctx context.Context, index int, log practice.PracticeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	return s.replaceAt(ctx, index, log)
}

// UpdateLogByID replaces the log with the given ID.
func (s *LogStore) UpdateLogByID(ctx context.Context, id string, log practice.PracticeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.replaceAt(ctx, index, log)
}

func (s *LogStore) replaceAt(ctx context.Context, index int, log practice.PracticeLog) error {
	log.ID = s.logs[index].ID
	next := append([]practice.PracticeLog(nil), s.logs...)
	next[index] = log
	if err := s.commitLogs(ctx, next); err != nil {
		return err
	}
	s.logger.Info("log.updated", map[string]any{"id": log.ID, "index": index})
	return nil
}

// DeleteLog removes the log at index; later logs shift down by one.
func (s *LogStore) DeleteLog(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	return s.removeAt(ctx, index)
}

// DeleteLogByID removes the log with the given ID.
func (s *LogStore) DeleteLogByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.removeAt(ctx, index)
}

func (s *LogStore) removeAt(ctx context.Context, index int) error {
	id := s.logs[index].ID
	next := make([]practice.PracticeLog, 0, len(s.logs)-1)
	next = append(next, s.logs[:index]...)
	next = append(next, s.logs[index+1:]...)
	if err := s.commitLogs(ctx, next); err != nil {
		return err
	}
	s.logger.Info("log.deleted", map[string]any{"id": id, "index": index})
	return nil
}

// UpdateSettings merges the set fields of patch into the current settings.
func (s *LogStore) UpdateSettings(ctx context.Context, patch practice.SettingsPatch) (practice.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.settings)
	if err := next.Validate(); err != nil {
		return s.settings, err
	}
	if err := s.writeSettings(ctx, next); err != nil {
		s.logger.Error("logstore.write_failed", map[string]any{"key": state.KeyUserSettings, "error": err})
		return s.settings, err
	}
	s.settings = next
	s.logger.Info("settings.updated", map[string]any{"daily_goal": next.DailyGoal, "weekly_goal": next.WeeklyGoal})
	return next, nil
}

// Import decodes CSV text and applies it with policy. A validation error
// leaves the collection untouched. It returns the number of imported rows.
func (s *LogStore) Import(ctx context.Context, text string, policy csvcodec.ImportPolicy) (int, error) {
	parsed, err := csvcodec.Decode(text)
	if err != nil {
		s.logger.Warn("import.rejected", map[string]any{"error": err})
		return 0, err
	}
	for i := range parsed {
		parsed[i].ID = s.newID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next []practice.PracticeLog
	switch policy {
	case csvcodec.Replace:
		next = parsed
	default:
		next = make([]practice.PracticeLog, 0, len(s.logs)+len(parsed))
		next = append(next, s.logs...)
		next = append(next, parsed...)
	}
	if err := s.commitLogs(ctx, next); err != nil {
		return 0, err
	}
	s.logger.Info("import.applied", map[string]any{"rows": len(parsed), "policy": policy.String()})
	return len(parsed), nil
}

// Export renders the current collection as CSV.
func (s *LogStore) Export() string {
	return csvcodec.Encode(s.Logs())
}
