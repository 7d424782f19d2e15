package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TargetSummary is one row of the end-of-run summary.
type TargetSummary struct {
	Hostname string
	Calls    int
}

// PrintSummary writes the per-target call counts and the output location to
// the terminal after a successful run. The run id ties the terminal output to
// the debug log; it never appears in the document itself.
func PrintSummary(w io.Writer, runID string, targets []TargetSummary, outputPath string, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Host", "API Calls"})
	for _, ts := range targets {
		t.AppendRow(table.Row{ts.Hostname, ts.Calls})
	}
	t.Render()
	fmt.Fprintf(w, "Report written to %s in %s (run %s)\n", outputPath, elapsed.Round(time.Millisecond), runID)
}
