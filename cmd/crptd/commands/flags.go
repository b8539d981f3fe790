// Package commands contains Cobra CLI command definitions for crptd.
package commands

import (
	"github.com/concave-dev/crpt/cmd/crptd/config"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	d := config.Defaults()

	// Gateway flags
	cmd.Flags().StringVar(&config.Global.BindAddr, "bind", d.BindAddr,
		"Address and port for the HTTP gateway (e.g., 0.0.0.0:8090)")

	// Registry client flags
	cmd.Flags().StringVar(&config.Global.Endpoint, "endpoint", d.Endpoint,
		"Registry document creation URL")
	cmd.Flags().DurationVar(&config.Global.Window, "window", d.Window,
		"Submission window the request limit applies to")
	cmd.Flags().IntVar(&config.Global.RequestLimit, "request-limit", d.RequestLimit,
		"Maximum registry submissions per window (must be positive)")
	cmd.Flags().DurationVar(&config.Global.Timeout, "timeout", d.Timeout,
		"Timeout of a single registry request")
	cmd.Flags().StringVar(&config.Global.SignatureHeader, "signature-header", "",
		"Registry request header carrying the X-Document-Signature value\n"+
			"Empty: signatures are accepted but not forwarded")
	cmd.Flags().IntVar(&config.Global.Retries, "retries", 0,
		"Extra attempts on transport errors, inside the same throttle slot")

	// Shared limiter flags
	cmd.Flags().StringVar(&config.Global.RedisAddr, "redis-addr", "",
		"Redis address for spacing submissions across crptd instances (empty: disabled)")
	cmd.Flags().StringVar(&config.Global.RedisKey, "redis-key", "",
		"Redis key of the shared limiter")

	// Queue and ingress flags
	cmd.Flags().IntVar(&config.Global.QueueSize, "queue-size", d.QueueSize,
		"Documents waiting for submission before requests are rejected with 429")
	cmd.Flags().IntVar(&config.Global.Workers, "workers", d.Workers,
		"Goroutines feeding the registry submitter")
	cmd.Flags().Float64Var(&config.Global.IngressRPS, "ingress-rps", d.IngressRPS,
		"Per-client document requests per second")
	cmd.Flags().IntVar(&config.Global.IngressBurst, "ingress-burst", d.IngressBurst,
		"Per-client document request burst")
	cmd.Flags().StringSliceVar(&config.Global.TrustedProxies, "trusted-proxies", nil,
		"Proxy IPs or CIDRs whose X-Forwarded-For header identifies the client\n"+
			"Empty: clients are identified by their connection address")
	cmd.Flags().DurationVar(&config.Global.ResultTimeout, "result-timeout", d.ResultTimeout,
		"How long a document request waits for its registry outcome")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", d.LogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Write logs to this file instead of stdout/stderr")
	cmd.Flags().StringVar(&config.Global.ConfigFile, "config", "",
		"Config file (yaml, json, toml) with flag values")
}
