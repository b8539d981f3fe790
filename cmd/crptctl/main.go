// Package main provides the entry point for the crpt CLI tool (crptctl).
//
// crptctl submits registry documents through the same throttled client the
// crptd gateway uses, prints the sample document and inspects a running
// gateway.
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Flag configuration for global and command-specific options
// 3. Handler assignment linking commands to their handlers
// 4. Environment, config file and flag validation before each command
package main

import (
	"os"

	"github.com/concave-dev/crpt/cmd/crptctl/commands"
	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/cmd/crptctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()
	commands.SetupGlobalFlags(rootCmd, &config.Global)
	commands.SetupSubmitFlags(commands.GetSubmitCommand())
	commands.SetupSampleFlags(commands.GetSampleCommand())

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	commands.GetSubmitCommand().RunE = handlers.HandleSubmit
	commands.GetSampleCommand().RunE = handlers.HandleSample
	commands.GetStatusCommand().RunE = handlers.HandleStatus
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
