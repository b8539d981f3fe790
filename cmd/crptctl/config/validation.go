package config

import (
	"fmt"

	appconfig "github.com/concave-dev/crpt/internal/config"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/concave-dev/crpt/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags merges environment and config file values into the
// global flags, then validates them before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := ResolveGlobalFlags(cmd); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	if err := ValidateRegistryFlags(); err != nil {
		return err
	}

	if err := ValidateGatewayAddress(); err != nil {
		return err
	}

	return nil
}

// ResolveGlobalFlags applies .env, CRPT_* environment variables and the
// --config file to every global flag the user did not set explicitly
func ResolveGlobalFlags(cmd *cobra.Command) error {
	if err := appconfig.LoadDotEnv(); err != nil {
		return err
	}

	v, err := appconfig.NewViper(cmd.Flags(), Global.ConfigFile)
	if err != nil {
		return err
	}

	Global.Endpoint = v.GetString("endpoint")
	Global.Window = v.GetDuration("window")
	Global.RequestLimit = v.GetInt("request-limit")
	Global.Timeout = v.GetDuration("timeout")
	Global.Signature = v.GetString("signature")
	Global.SignatureHeader = v.GetString("signature-header")
	Global.Retries = v.GetInt("retries")
	Global.RedisAddr = v.GetString("redis-addr")
	Global.RedisKey = v.GetString("redis-key")
	Global.GatewayAddr = v.GetString("gateway")
	Global.LogLevel = v.GetString("log-level")
	Global.Output = v.GetString("output")
	return nil
}

// ValidateRegistryFlags validates endpoint, rate, timeout and retries
func ValidateRegistryFlags() error {
	if err := validate.ValidateEndpointURL(Global.Endpoint); err != nil {
		logging.Error("Invalid endpoint '%s': %v", Global.Endpoint, err)
		return fmt.Errorf("invalid endpoint - expected an http(s) URL")
	}

	if _, err := throttle.NewRate(Global.Window, Global.RequestLimit); err != nil {
		return err
	}

	if err := validate.ValidatePositiveTimeout(Global.Timeout, "timeout"); err != nil {
		return err
	}

	if Global.Retries < 0 {
		return fmt.Errorf("retries must be non-negative, got %d", Global.Retries)
	}

	if Global.RedisAddr != "" {
		if err := validate.ValidateField(Global.RedisAddr, "hostname_port"); err != nil {
			return fmt.Errorf("invalid redis address - expected format: host:port (e.g., 127.0.0.1:6379)")
		}
	}
	return nil
}

// ValidateGatewayAddress validates the --gateway flag
func ValidateGatewayAddress() error {
	netAddr, err := validate.ParseBindAddress(Global.GatewayAddr)
	if err != nil {
		logging.Error("Invalid gateway address '%s': %v", Global.GatewayAddr, err)
		return fmt.Errorf("invalid gateway address - expected format: host:port (e.g., 127.0.0.1:8090)")
	}

	// Reject unroutable 0.0.0.0 target for client connections
	if netAddr.Host == "0.0.0.0" {
		logging.Error("Unroutable gateway address '0.0.0.0:%d' - cannot connect to 0.0.0.0", netAddr.Port)
		return fmt.Errorf("unroutable gateway address - use 127.0.0.1 or a specific IP address")
	}

	// Client must connect to specific port (not 0)
	if err := validate.ValidatePortRange(netAddr.Port); err != nil {
		logging.Error("Invalid gateway port %d: %v", netAddr.Port, err)
		return fmt.Errorf("gateway port must be between 1-65535")
	}

	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}

// ValidateSubmitFlags validates the submit command flags
func ValidateSubmitFlags() error {
	if err := validate.ValidatePositiveInt(Submit.Count, "count"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveInt(Submit.Concurrency, "concurrency"); err != nil {
		return err
	}
	return nil
}
