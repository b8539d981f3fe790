// Package netutil classifies network errors by type instead of by message, so
// the gateway and the CLI can give specific hints for common failures.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError reports whether err is a bind failure because the
// address is already taken.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError reports whether err is a dial failure because
// nothing listens on the target address.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
