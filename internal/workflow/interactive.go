package workflow

import (
	"context"
	"fmt"
	"strings"
)

// Interactive runs the operator command loop: capture, test, quit. Errors
// from individual runs are reported and the loop continues; only quit or end
// of input leaves it.
func (o *Orchestrator) Interactive(ctx context.Context) error {
	fmt.Fprintln(o.out, "Starting interactive book processing mode...")
	fmt.Fprintln(o.out, "Commands:")
	fmt.Fprintln(o.out, "  'capture' - Capture and process a book")
	fmt.Fprintln(o.out, "  'test' - Test camera connection")
	fmt.Fprintln(o.out, "  'quit' - Exit the program")
	fmt.Fprintln(o.out, strings.Repeat("-", 50))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(o.out, "\nEnter command (capture/test/quit): ")
		line, err := o.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(o.out, "\nExiting...")
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "capture":
			fmt.Fprintln(o.out, "\nPosition a book title page in front of the camera...")
			fmt.Fprint(o.out, "Press Enter when ready to capture...")
			if _, err := o.in.ReadString('\n'); err != nil {
				fmt.Fprintln(o.out, "\nExiting...")
				return nil
			}
			if _, err := o.Run(ctx); err != nil {
				fmt.Fprintf(o.out, "Workflow aborted: %v\n", err)
			}

		case "test":
			fmt.Fprintln(o.out, "\nTesting camera connection...")
			path, err := o.camera.Capture(ctx)
			if err != nil {
				fmt.Fprintf(o.out, "Connection failed: %v\n", err)
				continue
			}
			fmt.Fprintf(o.out, "Connection successful! Image saved to: %s\n", path)
			o.camera.Cleanup(path)

		case "quit":
			fmt.Fprintln(o.out, "\nExiting...")
			return nil

		default:
			fmt.Fprintln(o.out, "Invalid command. Please enter 'capture', 'test', or 'quit'.")
		}

		if err != nil {
			fmt.Fprintln(o.out, "\nExiting...")
			return nil
		}
	}
}
