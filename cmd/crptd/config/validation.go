package config

import (
	"fmt"
	"os"

	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/concave-dev/crpt/internal/validate"
)

// ValidateConfig validates and normalizes the daemon configuration before
// any service starts
func ValidateConfig() error {
	// DEBUG environment variable override for development
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	netAddr, err := validate.ParseBindAddress(Global.BindAddr)
	if err != nil {
		return fmt.Errorf("invalid bind address: %w", err)
	}

	// Daemon requires non-zero ports (port 0 would let OS choose)
	if err := validate.ValidatePortRange(netAddr.Port); err != nil {
		return fmt.Errorf("daemon requires specific port (not 0): %w", err)
	}
	Global.BindAddr = netAddr.String()

	if err := BuildSubmitterConfig().Validate(); err != nil {
		return err
	}

	if err := BuildDispatchConfig().Validate(); err != nil {
		return err
	}

	if Global.IngressRPS <= 0 {
		return fmt.Errorf("ingress-rps must be positive, got %v", Global.IngressRPS)
	}
	if err := validate.ValidatePositiveInt(Global.IngressBurst, "ingress-burst"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(Global.ResultTimeout, "result-timeout"); err != nil {
		return err
	}
	for _, proxy := range Global.TrustedProxies {
		if err := validate.ValidateField(proxy, "required,cidr|ip"); err != nil {
			return fmt.Errorf("invalid trusted proxy '%s': %w", proxy, err)
		}
	}

	if Global.RedisAddr != "" {
		if err := validate.ValidateField(Global.RedisAddr, "hostname_port"); err != nil {
			return fmt.Errorf("invalid redis address '%s': %w", Global.RedisAddr, err)
		}
	}

	return nil
}

// BuildSubmitterConfig converts daemon config to the registry submitter config
func BuildSubmitterConfig() *crpt.Config {
	cfg := crpt.DefaultConfig()

	cfg.Endpoint = Global.Endpoint
	cfg.Rate = throttle.Rate{Window: Global.Window, Limit: Global.RequestLimit}
	cfg.Timeout = Global.Timeout
	cfg.SignatureHeader = Global.SignatureHeader
	cfg.RetryCount = Global.Retries

	return cfg
}

// BuildDispatchConfig converts daemon config to the gateway queue config
func BuildDispatchConfig() *dispatch.Config {
	return &dispatch.Config{
		QueueSize: Global.QueueSize,
		Workers:   Global.Workers,
	}
}
