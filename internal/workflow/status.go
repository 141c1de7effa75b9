package workflow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mshelton/booklog/internal/book"
)

// readStatus prompts the operator for a reading status. Invalid input is
// re-prompted indefinitely; an unrecoverable input-stream error falls back to
// Not Started.
func (o *Orchestrator) readStatus() string {
	fmt.Fprintln(o.out, "\nSelect reading status:")
	fmt.Fprintln(o.out, "  C - Complete")
	fmt.Fprintln(o.out, "  P - Partially Complete")
	fmt.Fprintln(o.out, "  N - Not Started")

	for {
		fmt.Fprint(o.out, "Enter C, P, or N: ")
		line, err := o.in.ReadString('\n')
		if err != nil && line == "" {
			slog.Warn("Failed to read status input, defaulting", "status", book.StatusNotStarted, "err", err)
			return book.StatusNotStarted
		}

		key := strings.ToLower(strings.TrimSpace(line))
		if status, ok := book.StatusForKey(key); ok {
			fmt.Fprintf(o.out, "Selected: %s\n", status)
			return status
		}
		fmt.Fprintf(o.out, "Invalid input %q. Please enter C, P, or N.\n", key)

		// A read error with partial data still counts as end of input.
		if err != nil {
			slog.Warn("Input stream ended, defaulting", "status", book.StatusNotStarted)
			return book.StatusNotStarted
		}
	}
}
