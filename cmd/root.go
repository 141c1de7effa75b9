package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booklog",
		Short: "Camera-to-catalogue book logging pipeline",
		Long: `Booklog catalogues physical books from title page photos.

It captures an image from a networked camera, extracts bibliographic fields
with a vision-capable LLM, infers a subject classification from the existing
catalogue, collects a reading status from the operator, and persists the
record into the master table.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCaptureCmd())
	cmd.AddCommand(newRepairCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
