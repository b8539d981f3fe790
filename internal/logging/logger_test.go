package logging

import (
	"bytes"
	"strings"
	"testing"
)

// captureLogOutput is a test helper to capture log output at the given level
func captureLogOutput(level string, fn func()) string {
	var buf bytes.Buffer

	SetLevel(level)
	SetOutput(&buf)
	defer RestoreOutput("INFO")

	fn()

	return strings.TrimSpace(buf.String())
}

// TestLogLevels tests that logging functions work at different levels
func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func()
		expected string
	}{
		{
			name:     "Info level",
			logFunc:  func() { Info("test info message") },
			expected: "test info message",
		},
		{
			name:     "Warn level",
			logFunc:  func() { Warn("test warn message") },
			expected: "test warn message",
		},
		{
			name:     "Error level",
			logFunc:  func() { Error("test error message") },
			expected: "test error message",
		},
		{
			name:     "Debug level",
			logFunc:  func() { Debug("test debug message") },
			expected: "test debug message",
		},
		{
			name:     "Success level",
			logFunc:  func() { Success("document accepted") },
			expected: "SUCCESS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput("DEBUG", tt.logFunc)

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain '%s', got '%s'", tt.expected, output)
			}
		})
	}
}

// TestSetLevel tests that log level filtering works correctly
func TestSetLevel(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		logFunc      func()
		shouldOutput bool
	}{
		{
			name:         "Info logged at INFO level",
			level:        "INFO",
			logFunc:      func() { Info("info message") },
			shouldOutput: true,
		},
		{
			name:         "Debug filtered at INFO level",
			level:        "INFO",
			logFunc:      func() { Debug("debug message") },
			shouldOutput: false,
		},
		{
			name:         "Error logged at WARN level",
			level:        "WARN",
			logFunc:      func() { Error("error message") },
			shouldOutput: true,
		},
		{
			name:         "Success filtered at ERROR level",
			level:        "ERROR",
			logFunc:      func() { Success("success message") },
			shouldOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.level, tt.logFunc)

			if tt.shouldOutput && output == "" {
				t.Error("Expected output but got none")
			}
			if !tt.shouldOutput && output != "" {
				t.Errorf("Expected no output but got: %s", output)
			}
		})
	}
}

// TestLevelWriter tests that writer lines are routed with prefix
func TestLevelWriter(t *testing.T) {
	output := captureLogOutput("DEBUG", func() {
		w := NewLevelWriter("warn", "gin")
		n, err := w.Write([]byte("first line\n\nsecond line\n"))
		if err != nil {
			t.Errorf("Write() error = %v", err)
		}
		if n != len("first line\n\nsecond line\n") {
			t.Errorf("Write() = %d, want full length", n)
		}
	})

	for _, want := range []string{"gin: first line", "gin: second line"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain '%s', got '%s'", want, output)
		}
	}
}

// TestValidateLogLevel tests the canonical level set
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) = %v, want nil", level, err)
		}
	}
	for _, level := range []string{"", "debug", "TRACE"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) = nil, want error", level)
		}
	}
}

// TestRestyLogger tests that Resty messages land at the matching level
func TestRestyLogger(t *testing.T) {
	var l RestyLogger

	tests := []struct {
		name     string
		level    string
		logFunc  func()
		expected string
		hidden   bool
	}{
		{name: "error", level: "INFO", logFunc: func() { l.Errorf("request %d failed", 7) }, expected: "request 7 failed"},
		{name: "warn", level: "INFO", logFunc: func() { l.Warnf("retrying %s", "POST") }, expected: "retrying POST"},
		{name: "debug shown", level: "DEBUG", logFunc: func() { l.Debugf("attempt %d", 2) }, expected: "attempt 2"},
		{name: "debug hidden", level: "INFO", logFunc: func() { l.Debugf("attempt %d", 3) }, expected: "attempt 3", hidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.level, tt.logFunc)
			if got := strings.Contains(output, tt.expected); got == tt.hidden {
				t.Errorf("output %q contains %q = %v, want %v", output, tt.expected, got, !tt.hidden)
			}
		})
	}
}
