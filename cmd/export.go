package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/config"
	"github.com/lehigh-university-libraries/image-selector/internal/export"
	"github.com/lehigh-university-libraries/image-selector/internal/sheets"
)

func newExportCmd() *cobra.Command {
	var configPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a catalog snapshot for offline analysis",
		Long: `Fetches the full catalog and writes it to a Parquet or JSONL file,
chosen by the output extension. The snapshot includes claimed and bad
records, so it can drive claim-throughput and pool-health reporting.`,
		Example: `  # Parquet snapshot
  image-selector export --out snapshot.parquet

  # JSONL snapshot
  image-selector export --out snapshot.jsonl`,
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

			return export.WriteSnapshot(outPath, cat.All, cfg.TagDelimiter)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to selector.yaml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "snapshot.parquet", "Output file (.parquet or .jsonl)")

	return cmd
}
