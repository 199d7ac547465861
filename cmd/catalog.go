package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/config"
	"github.com/lehigh-university-libraries/image-selector/internal/sheets"
)

func newCatalogCmd() *cobra.Command {
	var configPath string
	var domains []string
	var types []string
	var showAll bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog records from the spreadsheet",
		Long: `Fetches the current catalog and prints the available records, one per
line. Useful for checking pool health without opening the web UI.`,
		Example: `  # List available images
  image-selector catalog

  # List everything, including claimed and bad records
  image-selector catalog --all

  # Filter by tags
  image-selector catalog --domain retail --type product`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := sheets.NewClient(cfg)
			reader := catalog.NewReader(client)
			cat, err := reader.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			records := cat.Available
			if showAll {
				records = cat.All
			}
			records = catalog.FilterRecords(records, domains, types)

			out := cmd.OutOrStdout()
			for _, rec := range records {
				line := fmt.Sprintf("%s\t%s\t%s", rec.ImageID, rec.Status, rec.ImageURL)
				if len(rec.Domains) > 0 {
					line += "\t[" + strings.Join(rec.Domains, " ") + "]"
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "%d matching (%d available, %d total)\n", len(records), len(cat.Available), len(cat.All))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to selector.yaml")
	cmd.Flags().StringSliceVar(&domains, "domain", nil, "Only records with one of these domain tags")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Only records with one of these image type tags")
	cmd.Flags().BoolVar(&showAll, "all", false, "Include claimed and bad records")

	return cmd
}
