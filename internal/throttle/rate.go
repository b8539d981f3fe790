// Package throttle serializes registry calls and spaces them to respect the
// configured request limit.
//
// THROTTLING MODEL:
// A Gate owns one exclusive slot. A caller holds the slot for the whole call
// and, once the call returns, keeps holding it until the minimum interval has
// elapsed since the call started. Calls therefore never overlap and successive
// call starts are at least Rate.MinInterval apart, whatever the number of
// callers. The wait uses a timer on the monotonic clock, not a spin loop.
//
// An optional Limiter (see RedisLimiter) adds spacing shared between processes.
package throttle

import (
	"fmt"
	"time"
)

// ConfigurationError reports a throttle setting that cannot produce a usable
// interval, such as a zero request limit.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid throttle configuration: %s %s", e.Field, e.Reason)
}

// Rate is a request limit per submission window, e.g. 3 per second.
type Rate struct {
	Window time.Duration
	Limit  int
}

// NewRate validates and returns a Rate.
func NewRate(window time.Duration, limit int) (Rate, error) {
	r := Rate{Window: window, Limit: limit}
	if err := r.Validate(); err != nil {
		return Rate{}, err
	}
	return r, nil
}

// Validate returns a *ConfigurationError for a non-positive window or limit,
// or when the spacing truncates to zero.
func (r Rate) Validate() error {
	if r.Limit <= 0 {
		return &ConfigurationError{Field: "request limit", Reason: fmt.Sprintf("must be positive, got %d", r.Limit)}
	}
	if r.Window <= 0 {
		return &ConfigurationError{Field: "window", Reason: fmt.Sprintf("must be positive, got %v", r.Window)}
	}
	if r.MinInterval() == 0 {
		return &ConfigurationError{
			Field:  "request limit",
			Reason: fmt.Sprintf("%d per %v spaces calls less than 1ms apart", r.Limit, r.Window),
		}
	}
	return nil
}

// MinInterval is the spacing between call starts: the window in whole
// milliseconds divided by the limit, truncated to whole milliseconds. 3 per
// second gives 333ms.
func (r Rate) MinInterval() time.Duration {
	if r.Limit <= 0 {
		return 0
	}
	return time.Duration(r.Window.Milliseconds()/int64(r.Limit)) * time.Millisecond
}

func (r Rate) String() string {
	return fmt.Sprintf("%d per %v", r.Limit, r.Window)
}
