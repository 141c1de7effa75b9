package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mshelton/booklog/internal/catalog"
	"github.com/mshelton/booklog/internal/config"
	"github.com/mshelton/booklog/internal/export"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalogue to a parquet or JSONL file",
		Example: `  booklog export --output catalogue.parquet
  booklog export --output catalogue.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			records := store.Records()
			if err := export.Write(records, output); err != nil {
				return err
			}
			fmt.Printf("Exported %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "catalogue.parquet", "Output file (.parquet or .jsonl)")
	return cmd
}
