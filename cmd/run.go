package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mshelton/booklog/internal/camera"
	"github.com/mshelton/booklog/internal/catalog"
	"github.com/mshelton/booklog/internal/config"
	"github.com/mshelton/booklog/internal/oracle"
	"github.com/mshelton/booklog/internal/workflow"
)

// overrides carries the flag values common to the run and capture commands.
type overrides struct {
	cameraURL string
	provider  string
	model     string
	location  string
}

func (o overrides) apply(cfg *config.Config) {
	if o.cameraURL != "" {
		cfg.Camera.URL = o.cameraURL
	}
	if o.provider != "" {
		cfg.LLM.Provider = o.provider
	}
	if o.model != "" {
		cfg.LLM.Model = o.model
	}
	if o.location != "" {
		cfg.Location = o.location
	}
}

func addWorkflowFlags(cmd *cobra.Command, o *overrides) {
	cmd.Flags().StringVar(&o.cameraURL, "camera-url", "", "IP webcam base URL (default from CAMERA_URL)")
	cmd.Flags().StringVar(&o.provider, "provider", "", "LLM provider: openai, ollama, or gemini")
	cmd.Flags().StringVar(&o.model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().StringVarP(&o.location, "location", "l", "", "Shelf location recorded with each book")
}

// newOrchestrator wires the workflow from configuration plus flag overrides.
// The returned store must be closed by the caller.
func newOrchestrator(o overrides) (*workflow.Orchestrator, *catalog.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	o.apply(&cfg)

	orc, err := oracle.New(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	cam := camera.New(cfg.Camera)
	return workflow.New(cam, orc, store, cfg.Location, os.Stdin, os.Stdout), store, nil
}

func newRunCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive cataloguing loop",
		Long: `Runs the interactive operator loop against the configured camera,
LLM provider, and database. Commands inside the loop: capture, test, quit.`,
		Example: `  # Interactive mode against a phone running IP Webcam
  booklog run --camera-url http://192.168.1.50:8080 --location "Study, shelf 3"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, store, err := newOrchestrator(o)
			if err != nil {
				return err
			}
			defer store.Close()

			return orch.Interactive(cmd.Context())
		},
	}

	addWorkflowFlags(cmd, &o)
	return cmd
}

func newCaptureCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Run a single capture-to-persist workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, store, err := newOrchestrator(o)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := orch.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Catalogued book with id %d\n", rec.ID)
			return nil
		},
	}

	addWorkflowFlags(cmd, &o)
	return cmd
}
