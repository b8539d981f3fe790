// Package dispatch provides the gateway's bounded document queue. Requests are
// accepted while the queue has room and rejected with backpressure once it is
// full, instead of blocking indefinitely on the throttle gate.
package dispatch

import (
	"fmt"
)

// Config holds the queue capacity and worker count.
type Config struct {
	QueueSize int `json:"queue_size" mapstructure:"queue_size"` // Maximum documents waiting for a worker
	Workers   int `json:"workers" mapstructure:"workers"`       // Goroutines feeding the submitter
}

// DefaultConfig returns a Config sized for a 3 per second registry limit: a
// full queue drains in under a minute.
func DefaultConfig() *Config {
	return &Config{
		QueueSize: 128,
		Workers:   1,
	}
}

// Validate checks capacity and worker bounds.
func (c *Config) Validate() error {
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}
	if c.QueueSize > 100000 {
		return fmt.Errorf("queue size too large (max 100000), got %d", c.QueueSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	// The gate admits one call at a time, extra workers would only queue on it
	if c.Workers > 16 {
		return fmt.Errorf("workers too large (max 16), got %d", c.Workers)
	}
	return nil
}
