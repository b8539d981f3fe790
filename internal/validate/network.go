// Package validate provides configuration and input validation utilities for the
// crpt client and gateway, built on the go-playground/validator library.
//
// VALIDATION FEATURES:
//   - Bind addresses: "host:port" parsing with IP and port range checks
//   - Endpoints: absolute http(s) URLs for the document registry
//   - Structs: tag based validation of documents and configuration
//
// Used by crptctl flag validation, crptd configuration and the gateway's
// document intake.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// NetworkAddress represents a validated "host:port" bind address.
type NetworkAddress struct {
	Host string `validate:"required,ip"`
	Port int    `validate:"min=0,max=65535"`
}

// String returns the network address in standard "host:port" format.
func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseBindAddress parses and validates a "host:port" address string used for
// the gateway listener. Port 0 is accepted so tests can bind an ephemeral port.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateEndpointURL checks that endpoint is an absolute http or https URL
// with a host. The registry endpoint and any test server URL go through here.
func ValidateEndpointURL(endpoint string) error {
	if err := validate.Var(endpoint, "required,url"); err != nil {
		return fmt.Errorf("invalid endpoint '%s': %w", endpoint, err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint '%s': %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint '%s' has no host", endpoint)
	}
	return nil
}

// ValidateField validates a single value against validator tags.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}

// ValidateStruct validates a struct against its `validate` tags.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
