package commands

import (
	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/spf13/cobra"
)

// Sample command
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the sample document",
	Long: `Print the demonstration document as it would be sent to the registry.
All dates are today in the registry's yyyy-MM-d format.`,
	Example: `  # Print the sample document
  crptctl sample

  # Sample with three products, saved for later submission
  crptctl sample --products 3 > doc.json`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package
}

// SetupSampleFlags configures flags for the sample command
func SetupSampleFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&config.Sample.Products, "products", 1,
		"Number of products in the sample document")
}

// GetSampleCommand returns the sample command for handler assignment
func GetSampleCommand() *cobra.Command {
	return sampleCmd
}
