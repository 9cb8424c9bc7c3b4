package logstore

import "github.com/google/uuid"

// Option configures a LogStore.
type Option func(*LogStore)

// WithLogger sets the diagnostics sink.
func WithLogger(l Logger) Option {
	return func(s *LogStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides how new log IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *LogStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func defaultID() string { return uuid.NewString() }
