package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("laid out") }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("sorted siblings") }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("sorted siblings") }, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %s: wrote output = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestStopwatchDone(t *testing.T) {
	var buf bytes.Buffer
	startStopwatch(newLogger(&buf, log.InfoLevel)).done("Rendered", "leaves", 4)

	out := buf.String()
	for _, want := range []string{"Rendered", "leaves=4", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.DebugLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestConfigureLogger(t *testing.T) {
	tests := []struct {
		format  string
		verbose bool
		want    string
	}{
		{"text", false, "laid out"},
		{"json", false, `"msg":"laid out"`},
		{"logfmt", true, `msg="laid out"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			c.logFormat, c.verbose = tt.format, tt.verbose
			if err := c.configureLogger(); err != nil {
				t.Fatalf("configureLogger() error: %v", err)
			}
			c.Logger.Info("laid out")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
			if got := c.Logger.GetLevel() == log.DebugLevel; got != tt.verbose {
				t.Errorf("debug level = %v, want %v", got, tt.verbose)
			}
		})
	}
}

func TestConfigureLoggerUnknownFormat(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.logFormat = "xml"
	if err := c.configureLogger(); err == nil {
		t.Error("configureLogger() accepted an unknown format")
	}
}
