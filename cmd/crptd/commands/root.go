// Package commands provides the CLI command structure for the crpt daemon.
//
// The daemon is a single root command: flags, CRPT_* environment variables and
// an optional config file configure it, PreRunE validates everything before
// any listener is opened and RunE hands over to the daemon package.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concave-dev/crpt/cmd/crptd/config"
	"github.com/concave-dev/crpt/cmd/crptd/daemon"
	"github.com/concave-dev/crpt/cmd/crptd/utils"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Use fmt.Fprintf instead of logging, the log file is going away
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the crpt daemon
var RootCmd = &cobra.Command{
	Use:   "crptd",
	Short: "Rate limited HTTP gateway for the CRPT document registry",
	Long: `crpt daemon (crptd) accepts documents over HTTP and submits them to the
CRPT registry document creation endpoint without ever exceeding the configured
request limit.

Documents wait in a bounded queue; when it is full new requests get 429 instead
of blocking. Each request returns the registry outcome of its document.`,
	Version:      version.CrptdVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start the gateway with the registry defaults (3 per second)
  crptd

  # Listen on all interfaces and forward signatures in X-Signature
  crptd --bind=0.0.0.0:8090 --signature-header=X-Signature

  # Two gateways sharing one registry limit through redis
  crptd --bind=0.0.0.0:8090 --redis-addr=redis:6379
  crptd --bind=0.0.0.0:8091 --redis-addr=redis:6379

  # Configure from a file and environment
  CRPT_REQUEST_LIMIT=10 crptd --config=/etc/crpt/crptd.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.CrptdVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure logging level immediately after flags are parsed to prevent
		// INFO logs during config initialization when ERROR level is requested
		logging.SetLevel(config.Global.LogLevel)

		// Resolve environment variables and config file
		if err := config.InitializeConfig(cmd.Flags()); err != nil {
			return err
		}

		// Setup log file redirection if a log file was configured
		if config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			// Redirect all logging to the file
			logging.SetOutput(logFileHandle)
		}

		// Re-apply logging level to pick up environment or config file overrides
		logging.SetLevel(config.Global.LogLevel)

		// Validate configuration and ensure log file cleanup on validation failure
		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		logging.SetLevel(config.Global.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure log file cleanup on exit
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
