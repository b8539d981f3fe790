package validate

import (
	"fmt"
	"time"
)

// ValidatePortRange validates that a port number is within 1-65535.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
// Used for HTTP client timeouts and throttle windows.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// ValidatePositiveInt validates that n is at least 1.
func ValidatePositiveInt(n int, name string) error {
	if err := ValidateField(n, "min=1"); err != nil {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
