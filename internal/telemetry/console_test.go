package telemetry

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsoleLoggerHidesInfoUnlessVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	NewConsoleLogger(&quiet, false).Info("log.added", map[string]any{"index": 3})
	NewConsoleLogger(&loud, true).Info("log.added", map[string]any{"index": 3})

	if quiet.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "log.added") || !strings.Contains(loud.String(), "index=3") {
		t.Fatalf("expected verbose info line, got %q", loud.String())
	}
}

func TestConsoleLoggerOrdersFields(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, false).Warn("logstore.malformed", map[string]any{
		"key":   "practiceLogs",
		"error": errors.New("unexpected end of JSON input"),
	})
	out := buf.String()
	if !strings.Contains(out, "acordiario") {
		t.Fatalf("expected prefix, got %q", out)
	}
	if strings.Index(out, "error=") > strings.Index(out, "key=") {
		t.Fatalf("expected fields sorted by key, got %q", out)
	}
}

type recordingLogger struct{ msgs []string }

func (r *recordingLogger) Info(msg string, _ map[string]any)  { r.msgs = append(r.msgs, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, _ map[string]any)  { r.msgs = append(r.msgs, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, _ map[string]any) { r.msgs = append(r.msgs, "error:"+msg) }

func TestFanoutSkipsNil(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	f := Fanout{a, nil, b}
	f.Info("one", nil)
	f.Warn("two", nil)
	f.Error("three", nil)
	for _, r := range []*recordingLogger{a, b} {
		if strings.Join(r.msgs, ",") != "info:one,warn:two,error:three" {
			t.Fatalf("unexpected messages %v", r.msgs)
		}
	}
}
