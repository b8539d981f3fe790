package commands

import (
	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/spf13/cobra"
)

// Submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit documents to the registry",
	Long: `Submit a document to the registry document creation endpoint.

Without --file the sample document dated today is submitted. With --count and
--concurrency the same document is submitted several times from parallel
goroutines; the throttle serializes them and spaces their starts.`,
	Example: `  # Submit the sample document once
  crptctl submit

  # Submit a document file
  crptctl submit --file doc.json --signature "$(cat doc.sig)" --signature-header X-Signature

  # Four submissions from two goroutines
  crptctl submit --count 4 --concurrency 2`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package
}

// SetupSubmitFlags configures flags for the submit command
func SetupSubmitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&config.Submit.File, "file", "f", "",
		"Document JSON file (default: sample document)")
	cmd.Flags().IntVarP(&config.Submit.Count, "count", "n", 1,
		"Number of submissions")
	cmd.Flags().IntVarP(&config.Submit.Concurrency, "concurrency", "c", 1,
		"Goroutines submitting in parallel")
}

// GetSubmitCommand returns the submit command for handler assignment
func GetSubmitCommand() *cobra.Command {
	return submitCmd
}
