package handlers

import (
	"os"
	"time"

	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/cmd/crptctl/display"
	"github.com/concave-dev/crpt/cmd/crptctl/utils"
	"github.com/concave-dev/crpt/internal/document"
	"github.com/concave-dev/crpt/internal/validate"
	"github.com/spf13/cobra"
)

// HandleSample prints the sample document dated today
func HandleSample(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if err := validate.ValidatePositiveInt(config.Sample.Products, "products"); err != nil {
		return err
	}

	display.DisplayDocument(os.Stdout, document.SampleWithProducts(time.Now(), config.Sample.Products))
	return nil
}
