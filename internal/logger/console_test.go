package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logFunc   string
		shouldLog bool
	}{
		{name: "info logger passes info", logLevel: "info", logFunc: "info", shouldLog: true},
		{name: "info logger passes warn", logLevel: "info", logFunc: "warn", shouldLog: true},
		{name: "info logger passes error", logLevel: "info", logFunc: "error", shouldLog: true},
		{name: "info logger drops debug", logLevel: "info", logFunc: "debug", shouldLog: false},
		{name: "info logger drops trace", logLevel: "info", logFunc: "trace", shouldLog: false},
		{name: "warn logger drops info", logLevel: "warn", logFunc: "info", shouldLog: false},
		{name: "error logger drops warn", logLevel: "error", logFunc: "warn", shouldLog: false},
		{name: "trace logger passes everything", logLevel: "trace", logFunc: "trace", shouldLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.logLevel)

			switch tt.logFunc {
			case "trace":
				cl.LogTrace("message")
			case "debug":
				cl.LogDebug("message")
			case "info":
				cl.LogInfo("message")
			case "warn":
				cl.LogWarn("message")
			case "error":
				cl.LogError("message")
			}

			got := buf.Len() > 0
			if got != tt.shouldLog {
				t.Errorf("logged = %v, want %v (output: %q)", got, tt.shouldLog, buf.String())
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogWarn("3 rows skipped")

	output := buf.String()
	if !strings.Contains(output, "[WARN] 3 rows skipped") {
		t.Errorf("unexpected output: %q", output)
	}
	// Buffer writers never get ANSI colors.
	if strings.Contains(output, "\x1b[") {
		t.Errorf("expected plain output for non-terminal writer, got %q", output)
	}
	// Timestamp prefix like [12:34:56].
	if !strings.HasPrefix(output, "[") || len(output) < 11 {
		t.Errorf("missing timestamp prefix: %q", output)
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.LogInfo("discarded")
	cl.LogError("discarded")
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"info", "info"},
		{"WARN", "warn"},
		{" Error ", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()
	// All methods discard silently.
	n.LogTrace("x")
	n.LogDebug("x")
	n.LogInfo("x")
	n.LogWarn("x")
	n.LogError("x")
}
