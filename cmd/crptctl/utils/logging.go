// Package utils provides utility functions for the crptctl CLI.
// This file contains logging setup.
package utils

import (
	"os"

	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/internal/logging"
)

// SetupLogging configures CLI logging behavior based on environment and config.
// DEBUG=true enables debug output, --verbose shows logs at the configured level,
// otherwise only errors are logged so command output stays clean.
func SetupLogging() {
	switch {
	case os.Getenv("DEBUG") == "true":
		logging.RestoreOutput("DEBUG")
	case config.Global.Verbose:
		level := config.Global.LogLevel
		if level == config.DefaultLogLevel {
			level = "INFO"
		}
		logging.RestoreOutput(level)
	default:
		// Configure our application logging level first
		logging.SetLevel(config.Global.LogLevel)
		// Suppress debug/info logs by default (only show errors)
		logging.SuppressOutput()
	}
}
