package crpt

import (
	"fmt"
	"time"

	"github.com/concave-dev/crpt/internal/config"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/concave-dev/crpt/internal/validate"
)

// Config holds the settings of a Submitter.
type Config struct {
	Endpoint string        // Registry document creation URL
	Rate     throttle.Rate // Request limit per submission window
	Timeout  time.Duration // Bound on a single POST

	// SignatureHeader names the request header carrying the caller's signature.
	// Empty means signatures are accepted but not sent.
	SignatureHeader string

	// RetryCount is the number of extra attempts on transport errors. All
	// attempts happen inside the same throttle slot. Zero sends exactly one POST.
	RetryCount int

	UserAgent string
}

// DefaultConfig returns the registry endpoint limited to 3 submissions per second.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: config.DefaultEndpoint,
		Rate: throttle.Rate{
			Window: config.DefaultWindow,
			Limit:  config.DefaultRequestLimit,
		},
		Timeout: config.DefaultTimeout,
	}
}

// Validate checks the endpoint, rate, timeout and retry settings. A bad rate is
// reported as *throttle.ConfigurationError.
func (c *Config) Validate() error {
	if err := validate.ValidateEndpointURL(c.Endpoint); err != nil {
		return err
	}
	if err := c.Rate.Validate(); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.Timeout, "timeout"); err != nil {
		return err
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must be non-negative, got %d", c.RetryCount)
	}
	return nil
}
