// Package config provides configuration management for the crptctl CLI.
package config

import (
	"time"

	appconfig "github.com/concave-dev/crpt/internal/config"
	"github.com/concave-dev/crpt/internal/version"
)

const (
	DefaultGatewayAddr = "127.0.0.1:8090" // Default crptd gateway address (routable)
	DefaultLogLevel    = "ERROR"          // CLI output stays clean unless asked
)

// Version returns the current crptctl CLI version from the centralized version package
var Version = version.CrptctlVersion

// GlobalConfig holds the flags shared by every crptctl command
type GlobalConfig struct {
	Endpoint        string        // Registry document creation URL
	Window          time.Duration // Submission window the request limit applies to
	RequestLimit    int           // Submissions allowed per window
	Timeout         time.Duration // Bound on a single registry POST
	Signature       string        // Signature sent with each document
	SignatureHeader string        // Header carrying the signature, empty drops it
	Retries         int           // Extra attempts on transport errors
	RedisAddr       string        // Shared limiter address, empty disables it
	RedisKey        string        // Shared limiter key
	GatewayAddr     string        // crptd gateway address for status
	ConfigFile      string        // Optional config file read by viper
	LogLevel        string        // Log level for CLI operations
	Verbose         bool          // Show verbose output
	Output          string        // Output format: table, json
}

// Global holds the global CLI configuration
var Global GlobalConfig

// Submit holds the submit command configuration
var Submit struct {
	File        string // Document JSON file, empty submits the sample document
	Count       int    // Number of submissions
	Concurrency int    // Goroutines submitting in parallel
}

// Sample holds the sample command configuration
var Sample struct {
	Products int // Number of products in the sample document
}

// Defaults mirrored by the flag definitions
var (
	DefaultEndpoint     = appconfig.DefaultEndpoint
	DefaultWindow       = appconfig.DefaultWindow
	DefaultRequestLimit = appconfig.DefaultRequestLimit
	DefaultTimeout      = appconfig.DefaultTimeout
)
