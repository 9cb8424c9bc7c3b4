package telemetry

import (
	"io"
	"sort"

	clog "github.com/charmbracelet/log"
)

// Logger is the diagnostics surface shared by the JSON and console sinks.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ConsoleLogger prints human-readable lines, warnings and up unless verbose.
type ConsoleLogger struct {
	l *clog.Logger
}

func NewConsoleLogger(w io.Writer, verbose bool) *ConsoleLogger {
	l := clog.NewWithOptions(w, clog.Options{Prefix: "acordiario", Level: clog.WarnLevel})
	if verbose {
		l.SetLevel(clog.DebugLevel)
	}
	return &ConsoleLogger{l: l}
}

func (c *ConsoleLogger) Info(msg string, fields map[string]any) {
	c.l.Info(msg, keyvals(fields)...)
}

func (c *ConsoleLogger) Warn(msg string, fields map[string]any) {
	c.l.Warn(msg, keyvals(fields)...)
}

func (c *ConsoleLogger) Error(msg string, fields map[string]any) {
	c.l.Error(msg, keyvals(fields)...)
}

// keyvals flattens fields in key order so output is stable.
func keyvals(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

// Fanout sends every entry to each non-nil logger in order.
type Fanout []Logger

func (f Fanout) Info(msg string, fields map[string]any) {
	for _, l := range f {
		if l != nil {
			l.Info(msg, fields)
		}
	}
}

func (f Fanout) Warn(msg string, fields map[string]any) {
	for _, l := range f {
		if l != nil {
			l.Warn(msg, fields)
		}
	}
}

func (f Fanout) Error(msg string, fields map[string]any) {
	for _, l := range f {
		if l != nil {
			l.Error(msg, fields)
		}
	}
}
