// Package config provides configuration management for the crpt daemon.
//
// Values come from command line flags, CRPT_* environment variables (a .env
// file in the working directory is loaded first) and an optional --config file.
// Explicitly set flags win, then environment, then the config file, then flag
// defaults.
package config

import (
	"time"

	"github.com/concave-dev/crpt/internal/api"
	"github.com/concave-dev/crpt/internal/api/dispatch"
	configDefaults "github.com/concave-dev/crpt/internal/config"
	"github.com/spf13/pflag"
)

const (
	DefaultBind         = configDefaults.DefaultBindAddr     // Default gateway address
	DefaultEndpoint     = configDefaults.DefaultEndpoint     // Default registry endpoint
	DefaultWindow       = configDefaults.DefaultWindow       // Default submission window
	DefaultRequestLimit = configDefaults.DefaultRequestLimit // Default submissions per window
	DefaultTimeout      = configDefaults.DefaultTimeout      // Default registry request timeout
	DefaultLogLevel     = configDefaults.DefaultLogLevel     // Default log level
)

// Config holds all daemon configuration values
type Config struct {
	BindAddr string // Gateway listen address

	// Registry client
	Endpoint        string        // Registry document creation URL
	Window          time.Duration // Submission window the request limit applies to
	RequestLimit    int           // Submissions allowed per window
	Timeout         time.Duration // Bound on a single registry POST
	SignatureHeader string        // Header carrying document signatures, empty drops them
	Retries         int           // Extra attempts on transport errors

	// Shared limiter across crptd instances
	RedisAddr string // Empty disables the shared limiter
	RedisKey  string

	// Gateway queue and ingress
	QueueSize      int           // Documents waiting for a worker
	Workers        int           // Goroutines feeding the submitter
	IngressRPS     float64       // Per-client requests per second
	IngressBurst   int           // Per-client burst
	TrustedProxies []string      // Proxies allowed to set X-Forwarded-For
	ResultTimeout  time.Duration // How long a request waits for its registry outcome

	LogLevel   string // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string // Redirect logs to this file when set
	ConfigFile string // Optional config file
}

// Global configuration instance
var Global Config

// Defaults returns the configuration applied when no flag, environment
// variable or config file overrides a value
func Defaults() Config {
	apiDefaults := api.DefaultConfig()
	queueDefaults := dispatch.DefaultConfig()

	return Config{
		BindAddr:      DefaultBind,
		Endpoint:      DefaultEndpoint,
		Window:        DefaultWindow,
		RequestLimit:  DefaultRequestLimit,
		Timeout:       DefaultTimeout,
		QueueSize:     queueDefaults.QueueSize,
		Workers:       queueDefaults.Workers,
		IngressRPS:    apiDefaults.IngressRPS,
		IngressBurst:  apiDefaults.IngressBurst,
		ResultTimeout: apiDefaults.ResultTimeout,
		LogLevel:      DefaultLogLevel,
	}
}

// InitializeConfig loads .env and resolves every flag in flags against the
// environment and the config file into Global
func InitializeConfig(flags *pflag.FlagSet) error {
	if err := configDefaults.LoadDotEnv(); err != nil {
		return err
	}

	v, err := configDefaults.NewViper(flags, Global.ConfigFile)
	if err != nil {
		return err
	}

	Global.BindAddr = v.GetString("bind")
	Global.Endpoint = v.GetString("endpoint")
	Global.Window = v.GetDuration("window")
	Global.RequestLimit = v.GetInt("request-limit")
	Global.Timeout = v.GetDuration("timeout")
	Global.SignatureHeader = v.GetString("signature-header")
	Global.Retries = v.GetInt("retries")
	Global.RedisAddr = v.GetString("redis-addr")
	Global.RedisKey = v.GetString("redis-key")
	Global.QueueSize = v.GetInt("queue-size")
	Global.Workers = v.GetInt("workers")
	Global.IngressRPS = v.GetFloat64("ingress-rps")
	Global.IngressBurst = v.GetInt("ingress-burst")
	Global.TrustedProxies = v.GetStringSlice("trusted-proxies")
	Global.ResultTimeout = v.GetDuration("result-timeout")
	Global.LogLevel = v.GetString("log-level")
	Global.LogFile = v.GetString("log-file")
	return nil
}
