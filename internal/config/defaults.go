// Package config provides default configuration values shared by crptctl and
// crptd, plus the environment/config-file layer that binds them to cobra flags.
package config

import "time"

const (
	// DefaultEndpoint is the registry document creation endpoint
	DefaultEndpoint = "https://ismp.crpt.ru/api/v3/lk/documents/create"

	// DefaultWindow is the submission window the request limit applies to
	DefaultWindow = time.Second

	// DefaultRequestLimit is the number of submissions allowed per window
	DefaultRequestLimit = 3

	// DefaultTimeout bounds a single POST to the registry
	DefaultTimeout = 30 * time.Second

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// DefaultBindAddr is the gateway listen address. Loopback keeps the
	// unauthenticated gateway off external interfaces unless asked.
	DefaultBindAddr = "127.0.0.1:8090"

	// EnvPrefix prefixes every environment variable, e.g. CRPT_ENDPOINT
	EnvPrefix = "CRPT"
)
