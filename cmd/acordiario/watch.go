package main

import (
	"context"
	"errors"
	"strings"

	"acordiario/internal/app"
	"acordiario/internal/watch"
)

// storageFile reports whether name is written by the sqlite or file backend.
func storageFile(name string) bool {
	return strings.HasPrefix(name, "state.db") || strings.HasSuffix(name, ".json")
}

// watchDashboard redraws the dashboard after every settled change to the data
// directory until ctx is cancelled.
func (c *cli) watchDashboard(ctx context.Context) error {
	if c.cfg.Backend == app.BackendMemory {
		return errors.New("--watch needs the sqlite or file backend")
	}
	logger := c.app.Logger()
	w := watch.New(c.cfg.DataDir,
		watch.WithFilter(storageFile),
		watch.WithOnError(func(err error) {
			logger.Warn("watch.error", map[string]any{"error": err})
		}),
	)
	if err := w.Start(ctx); err != nil {
		return err
	}
	if err := c.printDashboard(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			c.app.Reload(ctx)
			c.println("")
			if err := c.printDashboard(); err != nil {
				return err
			}
		}
	}
}
