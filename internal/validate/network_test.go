package validate

import (
	"testing"
	"time"
)

// Test cases for ParseBindAddress function
func TestParseBindAddress(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedIP   string
		expectedPort int
	}{
		{
			name:         "valid IPv4 address",
			input:        "192.168.1.1:8080",
			expectedIP:   "192.168.1.1",
			expectedPort: 8080,
		},
		{
			name:         "valid any address",
			input:        "0.0.0.0:9000",
			expectedIP:   "0.0.0.0",
			expectedPort: 9000,
		},
		{
			name:         "ephemeral port",
			input:        "127.0.0.1:0",
			expectedIP:   "127.0.0.1",
			expectedPort: 0,
		},
		{
			name:        "empty address",
			input:       "",
			expectError: true,
		},
		{
			name:        "missing port",
			input:       "192.168.1.1",
			expectError: true,
		},
		{
			name:        "hostname instead of IP",
			input:       "localhost:8080",
			expectError: true,
		},
		{
			name:        "port out of range",
			input:       "127.0.0.1:70000",
			expectError: true,
		},
		{
			name:        "non numeric port",
			input:       "127.0.0.1:http",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseBindAddress(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseBindAddress(%q) expected error, got %v", tt.input, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBindAddress(%q) unexpected error: %v", tt.input, err)
			}
			if addr.Host != tt.expectedIP || addr.Port != tt.expectedPort {
				t.Errorf("ParseBindAddress(%q) = %s:%d, want %s:%d",
					tt.input, addr.Host, addr.Port, tt.expectedIP, tt.expectedPort)
			}
			if addr.String() != tt.input {
				t.Errorf("String() = %q, want %q", addr.String(), tt.input)
			}
		})
	}
}

// TestValidateEndpointURL tests registry endpoint validation
func TestValidateEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint    string
		expectError bool
	}{
		{"https://ismp.crpt.ru/api/v3/lk/documents/create", false},
		{"http://127.0.0.1:8080/create", false},
		{"", true},
		{"ismp.crpt.ru/api", true},
		{"ftp://example.com/create", true},
	}

	for _, tt := range tests {
		err := ValidateEndpointURL(tt.endpoint)
		if (err != nil) != tt.expectError {
			t.Errorf("ValidateEndpointURL(%q) error = %v, expectError %v", tt.endpoint, err, tt.expectError)
		}
	}
}

// TestConfigHelpers tests the small config validation helpers
func TestConfigHelpers(t *testing.T) {
	if err := ValidatePortRange(0); err == nil {
		t.Error("ValidatePortRange(0) = nil, want error")
	}
	if err := ValidatePortRange(8080); err != nil {
		t.Errorf("ValidatePortRange(8080) = %v", err)
	}
	if err := ValidateRequiredString("", "endpoint"); err == nil || err.Error() != "endpoint cannot be empty" {
		t.Errorf("ValidateRequiredString() = %v", err)
	}
	if err := ValidatePositiveTimeout(0, "timeout"); err == nil {
		t.Error("ValidatePositiveTimeout(0) = nil, want error")
	}
	if err := ValidatePositiveTimeout(time.Second, "timeout"); err != nil {
		t.Errorf("ValidatePositiveTimeout(1s) = %v", err)
	}
	if err := ValidatePositiveInt(0, "limit"); err == nil {
		t.Error("ValidatePositiveInt(0) = nil, want error")
	}
	if err := ValidatePositiveInt(3, "limit"); err != nil {
		t.Errorf("ValidatePositiveInt(3) = %v", err)
	}
}
