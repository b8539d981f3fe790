// Package api provides the crptd HTTP gateway. It accepts documents over HTTP,
// queues them in the dispatcher and reports each registry outcome back to the
// caller, alongside health, queue and Prometheus endpoints.
package api

import (
	"fmt"
	"time"

	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/config"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/concave-dev/crpt/internal/validate"
	"github.com/prometheus/client_golang/prometheus"
)

// GateStatser exposes the throttle gate snapshot, implemented by crpt.Submitter.
type GateStatser interface {
	Stats() throttle.Stats
}

// Config holds everything the gateway server needs. Dispatcher, Gate and
// Registry are owned by the caller; the server only uses them.
type Config struct {
	BindAddr string // "host:port" to listen on

	// Per-client ingress limit on document submissions
	IngressRPS   float64
	IngressBurst int

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty keys the ingress limit on the connection's remote address.
	TrustedProxies []string

	// ResultTimeout bounds how long a request waits for its registry outcome
	ResultTimeout time.Duration

	Dispatcher *dispatch.Dispatcher
	Gate       GateStatser
	Registry   *prometheus.Registry
}

// DefaultConfig returns loopback binding with a generous per-client limit. The
// registry limit itself is enforced by the submitter, not here.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:      config.DefaultBindAddr,
		IngressRPS:    20,
		IngressBurst:  40,
		ResultTimeout: 2 * time.Minute,
	}
}

// Validate checks the listen address, limits and collaborators.
func (c *Config) Validate() error {
	if _, err := validate.ParseBindAddress(c.BindAddr); err != nil {
		return fmt.Errorf("bind address validation failed: %w", err)
	}
	if c.IngressRPS <= 0 {
		return fmt.Errorf("ingress rps must be positive, got %v", c.IngressRPS)
	}
	if err := validate.ValidatePositiveInt(c.IngressBurst, "ingress burst"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.ResultTimeout, "result timeout"); err != nil {
		return err
	}
	for _, proxy := range c.TrustedProxies {
		if err := validate.ValidateField(proxy, "required,cidr|ip"); err != nil {
			return fmt.Errorf("invalid trusted proxy '%s': %w", proxy, err)
		}
	}
	if c.Dispatcher == nil {
		return fmt.Errorf("dispatcher cannot be nil")
	}
	if c.Gate == nil {
		return fmt.Errorf("gate cannot be nil")
	}
	if c.Registry == nil {
		return fmt.Errorf("metrics registry cannot be nil")
	}
	return nil
}
