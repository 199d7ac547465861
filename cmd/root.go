package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image-selector",
		Short: "Claim images from a shared spreadsheet-backed catalog",
		Long: `Image Selector lets workers browse a shared catalog of images held in a
Google Sheet, filter them by domain and type, and claim exactly one for a
task. Images with broken or unusable assets can be reported bad, which
permanently retires them from the pool.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
