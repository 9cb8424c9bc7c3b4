package app

import (
	"context"
	"time"

	"acordiario/internal/practice"
)

// Store is the key-value backend the log store writes through to.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Clock reports the current local time.
type Clock func() time.Time

// Goals is the read side of the log store the dashboard needs.
type Goals interface {
	Logs() []practice.PracticeLog
	Settings() practice.UserSettings
}
