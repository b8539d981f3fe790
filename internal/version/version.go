// Package version provides centralized version information for the crpt
// binaries. crptctl and crptd are versioned independently so the CLI can evolve
// separately from the gateway daemon.
// All versions follow semantic versioning (semver) conventions.

package version

// CrptdVersion holds the current crptd gateway version.
// Format: major.minor.patch[-prerelease][+build]
const CrptdVersion = "0.1.0-dev"

// CrptctlVersion holds the current crptctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const CrptctlVersion = "0.1.0-dev"
