// Package cli holds the terminal-facing helpers around a report run:
// credential prompting, the output filename template, and the end-of-run
// summary table. Nothing here touches the report document itself.
package cli
