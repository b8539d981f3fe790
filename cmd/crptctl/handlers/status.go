package handlers

import (
	"fmt"
	"os"

	"github.com/concave-dev/crpt/cmd/crptctl/client"
	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/cmd/crptctl/display"
	"github.com/concave-dev/crpt/cmd/crptctl/utils"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/netutil"
	"github.com/spf13/cobra"
)

// HandleStatus shows the health and queue statistics of a crptd gateway
func HandleStatus(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Fetching gateway status from %s", config.Global.GatewayAddr)

	c := client.NewGatewayClient(config.Global.GatewayAddr, config.Global.Timeout)

	health, err := c.GetHealth()
	if err != nil {
		logging.Error("Failed to get gateway health: %v", err)
		if netutil.IsConnectionRefusedError(err) {
			logging.Error("TIP: Check that crptd is running and listening on %s", config.Global.GatewayAddr)
		}
		return fmt.Errorf("gateway %s unreachable: %w", config.Global.GatewayAddr, err)
	}

	queue, err := c.GetQueue()
	if err != nil {
		logging.Error("Failed to get gateway queue: %v", err)
		return err
	}

	display.DisplayStatus(os.Stdout, health, queue)
	return nil
}
