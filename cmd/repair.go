package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mshelton/booklog/internal/catalog"
	"github.com/mshelton/booklog/internal/config"
)

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Strip stray carriage returns from ReadingStatus values",
		Long: `Repairs master_table rows whose ReadingStatus ends in a stray trailing
carriage return, an artifact of an earlier CSV import. Safe to re-run: rows
without the artifact are left untouched.`,
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

			repaired, err := store.RepairReadingStatus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Repaired %d rows\n", repaired)
			return nil
		},
	}
}
