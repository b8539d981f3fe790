// Package handlers provides command handler functions for crptctl.
//
// The package is organized as follows:
// - submit.go: Throttled registry submissions (submit)
// - sample.go: Sample document output (sample)
// - status.go: Gateway health and queue inspection (status)
//
// All handlers follow the cobra RunE signature, log through the logging package
// and leave formatting to the display package.
package handlers
