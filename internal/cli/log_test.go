package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantOut bool
	}{
		{"info passes at info", log.InfoLevel, false, true},
		{"debug dropped at info", log.InfoLevel, true, false},
		{"debug passes with verbose", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)
			if tt.debug {
				l.Debug("placed room", "template", "hub")
			} else {
				l.Info("placed room", "template", "hub")
			}
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.wantOut, buf.String())
			}
		})
	}
}

func TestProgressDoneLogsRunFields(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Generated 5 rooms", "steps", 4, "resets", 0)

	out := buf.String()
	for _, want := range []string{"Generated 5 rooms", "steps=4", "resets=0", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("attached logger not returned")
	}
}
