package commands

import (
	"github.com/spf13/cobra"
)

// Status command (gateway information)
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show crptd gateway health and queue statistics",
	Long: `Show the health of a running crptd gateway together with its document
queue depth and throttle gate statistics.`,
	Example: `  # Show status of the local gateway
  crptctl status

  # Show status of a remote gateway in JSON
  crptctl --gateway=10.0.0.5:8090 -o json status`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package
}

// GetStatusCommand returns the status command for handler assignment
func GetStatusCommand() *cobra.Command {
	return statusCmd
}
