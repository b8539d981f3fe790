// Package commands provides the command tree for crptctl.
//
// COMMAND STRUCTURE:
//   - submit: Submit documents to the registry through the throttled client
//   - sample: Print the demonstration document
//   - status: Show health and queue statistics of a running crptd gateway
//
// Commands only declare structure and flags; RunE handlers are assigned by the
// main package so commands stay free of registry and API client code.
package commands

import (
	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "crptctl",
	Short: "CLI tool for submitting documents to the CRPT registry",
	Long: `crpt CLI (crptctl) submits documents to the CRPT registry document
creation endpoint while never exceeding the configured request limit.

Every submission goes through one exclusive throttle: calls never overlap and
call starts are spaced by at least window / request-limit.`,
	SilenceUsage: true,
	Example: `  # Submit the sample document once at 3 per second
  crptctl submit

  # Submit a document file ten times from four goroutines
  crptctl submit --file doc.json --count 10 --concurrency 4

  # Allow 10 submissions per minute against a test endpoint
  crptctl --endpoint=http://127.0.0.1:9000/create --request-limit=10 --window=1m submit

  # Print the sample document
  crptctl sample

  # Show gateway queue statistics
  crptctl --gateway=127.0.0.1:8090 status

  # Output in JSON format
  crptctl -o json submit --count 3`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(submitCmd)
	RootCmd.AddCommand(sampleCmd)
	RootCmd.AddCommand(statusCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, g *config.GlobalConfig) {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&g.Endpoint, "endpoint", config.DefaultEndpoint,
		"Registry document creation URL")
	flags.DurationVar(&g.Window, "window", config.DefaultWindow,
		"Submission window the request limit applies to")
	flags.IntVar(&g.RequestLimit, "request-limit", config.DefaultRequestLimit,
		"Maximum submissions per window (must be positive)")
	flags.DurationVar(&g.Timeout, "timeout", config.DefaultTimeout,
		"Timeout of a single registry request")
	flags.StringVar(&g.Signature, "signature", "",
		"Signature sent with each document")
	flags.StringVar(&g.SignatureHeader, "signature-header", "",
		"Request header carrying the signature (empty: signature is not sent)")
	flags.IntVar(&g.Retries, "retries", 0,
		"Extra attempts on transport errors, inside the same throttle slot")
	flags.StringVar(&g.RedisAddr, "redis-addr", "",
		"Redis address for spacing submissions across processes (empty: disabled)")
	flags.StringVar(&g.RedisKey, "redis-key", "",
		"Redis key of the shared limiter")
	flags.StringVar(&g.GatewayAddr, "gateway", config.DefaultGatewayAddr,
		"crptd gateway address")
	flags.StringVar(&g.ConfigFile, "config", "",
		"Config file (yaml, json, toml) with flag values")
	flags.StringVar(&g.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false,
		"Show verbose output")
	flags.StringVarP(&g.Output, "output", "o", "table",
		"Output format: table, json")
}
