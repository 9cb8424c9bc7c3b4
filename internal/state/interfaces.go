package state

import (
	"context"
	"errors"
)

// Keys used by the practice log store.
const (
	KeyPracticeLogs = "practiceLogs"
	KeyUserSettings = "userSettings"
)

var ErrClosed = errors.New("state store is closed")

// Store is a blocking key-value store of serialized blobs. Get reports
// ok=false for a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
