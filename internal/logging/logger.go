// Package logging provides structured, colorful logging utilities for the crpt
// submission client and gateway, keeping one log format across the CLI, the
// daemon and the third-party libraries they embed (Resty, Gin, the standard
// library logger).
//
// LOGGING FEATURES:
//   - Color-coded levels: DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), SUCCESS (green)
//   - Unix conventions: INFO/SUCCESS to stdout, WARN/ERROR/DEBUG to stderr
//   - Flexible output: configurable level, log file redirection and CLI suppression
//   - Integration writers: LevelWriter routes io.Writer based libraries through the same loggers
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex

	// Logger for INFO/SUCCESS messages (stdout by default)
	stdoutLogger = newLogger(os.Stdout)

	// Logger for WARN/ERROR/DEBUG messages (stderr by default)
	stderrLogger = newLogger(os.Stderr)

	// Level applied to loggers recreated by SetOutput/RestoreOutput
	currentLevel = log.InfoLevel

	// Track if logging has been explicitly configured by CLI tools
	cliConfigured = false
)

// newLogger creates a timestamped logger with the package color scheme.
func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(setupCustomStyles())
	return l
}

// setupCustomStyles creates custom color styling for log levels. Colors are
// chosen to stay readable on both light and dark terminals.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()

	// DEBUG: light purple
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	// INFO: light blue
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	// WARN: light yellow
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	// ERROR: light red/pink
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

func outLogger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return stdoutLogger
}

func errLogger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return stderrLogger
}

// Info logs informational messages such as accepted submissions.
// Uses stdout following Unix conventions (or log file when specified).
func Info(format string, v ...any) {
	outLogger().Info(fmt.Sprintf(format, v...))
}

// Warn logs warning messages for non-critical issues requiring attention.
func Warn(format string, v ...any) {
	errLogger().Warn(fmt.Sprintf(format, v...))
}

// Error logs failures such as transport errors during a submission.
// Uses stderr following Unix conventions (or log file when specified).
func Error(format string, v ...any) {
	errLogger().Error(fmt.Sprintf(format, v...))
}

// Debug logs detailed debugging information for development and troubleshooting.
func Debug(format string, v ...any) {
	errLogger().Debug(fmt.Sprintf(format, v...))
}

// Success logs successful operations in green using INFO level with custom styling.
// Implements a SUCCESS label that respects INFO level filtering.
func Success(format string, v ...any) {
	l := outLogger()
	if l.GetLevel() > log.InfoLevel {
		return
	}

	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281")) // Light green

	// Derive from the current logger so a redirected output is respected
	tmp := l.With()
	tmp.SetStyles(styles)
	tmp.Info(fmt.Sprintf(format, v...))
}

// parseLevel maps the canonical level strings onto charmbracelet levels.
// Unknown strings fall back to INFO.
func parseLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel configures the minimum logging level (DEBUG, INFO, WARN, ERROR) for
// both loggers. Unknown values fall back to INFO.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = parseLevel(level)
	stdoutLogger.SetLevel(currentLevel)
	stderrLogger.SetLevel(currentLevel)
}

// SetOutput sends all logs to w, overriding the stdout/stderr separation.
// Passing nil suppresses every level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		return
	}

	stdoutLogger = newLogger(w)
	stderrLogger = newLogger(w)
	stdoutLogger.SetLevel(currentLevel)
	stderrLogger.SetLevel(currentLevel)
}

// SuppressOutput disables INFO/WARN/DEBUG logs while keeping ERROR logs visible.
// Used by crptctl so command output is not interleaved with log noise.
func SuppressOutput() {
	mu.Lock()
	defer mu.Unlock()

	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput restores Unix conventions at the given level: INFO/SUCCESS go
// to stdout, WARN/ERROR/DEBUG go to stderr.
func RestoreOutput(level string) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = parseLevel(level)
	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	stdoutLogger.SetLevel(currentLevel)
	stderrLogger.SetLevel(currentLevel)
	cliConfigured = true
}

// IsConfiguredByCLI returns true if logging has been explicitly configured by CLI tools.
func IsConfiguredByCLI() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cliConfigured
}

// ============================================================================
// GENERIC LOG INTEGRATION - General purpose writers for third-party libraries
// ============================================================================

// LevelWriter forwards log lines to a specific log level with optional prefix.
// Gin's DefaultWriter and the standard library logger are routed through it.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at the specified level with prefix.
// Valid levels: DEBUG, INFO, WARN, ERROR
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write splits input into lines and logs each non-empty line at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}

// RedirectStandardLog redirects Go's standard library logger output to the provided writer.
// Passing nil discards standard log output.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		stdlog.SetOutput(io.Discard)
		return
	}
	stdlog.SetOutput(w)
}
