package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/spf13/pflag"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "wildcard bind", mutate: func(c *Config) { c.BindAddr = "0.0.0.0:8090" }},
		{name: "port zero", mutate: func(c *Config) { c.BindAddr = "127.0.0.1:0" }, wantErr: true},
		{name: "hostname bind", mutate: func(c *Config) { c.BindAddr = "gateway:8090" }, wantErr: true},
		{name: "zero request limit", mutate: func(c *Config) { c.RequestLimit = 0 }, wantErr: true},
		{name: "negative window", mutate: func(c *Config) { c.Window = -time.Second }, wantErr: true},
		{name: "bad endpoint", mutate: func(c *Config) { c.Endpoint = "not a url" }, wantErr: true},
		{name: "zero queue", mutate: func(c *Config) { c.QueueSize = 0 }, wantErr: true},
		{name: "too many workers", mutate: func(c *Config) { c.Workers = 64 }, wantErr: true},
		{name: "zero ingress rps", mutate: func(c *Config) { c.IngressRPS = 0 }, wantErr: true},
		{name: "zero ingress burst", mutate: func(c *Config) { c.IngressBurst = 0 }, wantErr: true},
		{name: "zero result timeout", mutate: func(c *Config) { c.ResultTimeout = 0 }, wantErr: true},
		{name: "trusted proxies", mutate: func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"} }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.TrustedProxies = []string{"proxy.local"} }, wantErr: true},
		{name: "sub millisecond spacing", mutate: func(c *Config) { c.RequestLimit = 2000 }, wantErr: true},
		{name: "redis", mutate: func(c *Config) { c.RedisAddr = "redis:6379" }},
		{name: "bad redis", mutate: func(c *Config) { c.RedisAddr = "redis" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "TRACE" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", "")
			prev := Global
			defer func() { Global = prev }()

			Global = Defaults()
			tt.mutate(&Global)

			err := ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_ZeroLimitIsConfigurationError(t *testing.T) {
	prev := Global
	defer func() { Global = prev }()

	Global = Defaults()
	Global.RequestLimit = 0

	var cfgErr *throttle.ConfigurationError
	if err := ValidateConfig(); !errors.As(err, &cfgErr) {
		t.Errorf("ValidateConfig() error = %v, want *throttle.ConfigurationError", err)
	}
}

func TestValidateConfig_DebugOverride(t *testing.T) {
	prev := Global
	defer func() { Global = prev }()

	t.Setenv("DEBUG", "true")
	Global = Defaults()

	if err := ValidateConfig(); err != nil {
		t.Fatalf("ValidateConfig() error = %v", err)
	}
	if Global.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", Global.LogLevel)
	}
}

// newFlags mirrors the subset of daemon flags the resolution tests need
func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	d := Defaults()
	fs := pflag.NewFlagSet("crptd", pflag.ContinueOnError)
	fs.String("bind", d.BindAddr, "")
	fs.String("endpoint", d.Endpoint, "")
	fs.Duration("window", d.Window, "")
	fs.Int("request-limit", d.RequestLimit, "")
	fs.Duration("timeout", d.Timeout, "")
	fs.String("signature-header", "", "")
	fs.Int("retries", 0, "")
	fs.String("redis-addr", "", "")
	fs.String("redis-key", "", "")
	fs.Int("queue-size", d.QueueSize, "")
	fs.Int("workers", d.Workers, "")
	fs.Float64("ingress-rps", d.IngressRPS, "")
	fs.Int("ingress-burst", d.IngressBurst, "")
	fs.StringSlice("trusted-proxies", nil, "")
	fs.Duration("result-timeout", d.ResultTimeout, "")
	fs.String("log-level", d.LogLevel, "")
	fs.String("log-file", "", "")
	return fs
}

func TestInitializeConfig_Precedence(t *testing.T) {
	prev := Global
	defer func() { Global = prev }()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "crptd.yaml")
	if err := os.WriteFile(cfgFile, []byte("request-limit: 7\nworkers: 2\nqueue-size: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CRPT_WORKERS", "3")

	fs := newFlags(t)
	if err := fs.Parse([]string{"--queue-size=16"}); err != nil {
		t.Fatal(err)
	}

	Global = Config{ConfigFile: cfgFile}
	if err := InitializeConfig(fs); err != nil {
		t.Fatalf("InitializeConfig() error = %v", err)
	}

	if Global.RequestLimit != 7 {
		t.Errorf("RequestLimit = %d, want 7 from config file", Global.RequestLimit)
	}
	if Global.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from environment", Global.Workers)
	}
	if Global.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want 16 from flag", Global.QueueSize)
	}
	if Global.Window != time.Second {
		t.Errorf("Window = %v, want flag default 1s", Global.Window)
	}
}
