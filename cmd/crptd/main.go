// Package main implements the crpt daemon (crptd), an HTTP gateway that
// submits documents to the CRPT registry within its request limit.
package main

import (
	"os"

	"github.com/concave-dev/crpt/cmd/crptd/commands"
)

func init() {
	commands.SetupCommands()
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
