package logging

import "fmt"

// ValidLogLevels defines the canonical set of supported log levels shared by
// crptctl flags, crptd configuration and the CRPT_LOG_LEVEL environment variable.
// Level strings are case-sensitive and uppercase.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel reports whether level is one of ValidLogLevels.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel returns an error naming the rejected level when it is not supported.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
