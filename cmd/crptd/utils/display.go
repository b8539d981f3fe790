// Package utils contains utility functions for the crpt daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the crpt ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░
 ░█▀▀░█▀▄░█▀█░▀█▀░
 ░█░░░█▀▄░█▀▀░░█░░
 ░▀▀▀░▀░▀░▀░░░░▀░░
 ░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n crptd v%s - Rate Limited Registry Gateway\n", version)
	fmt.Println()
}
