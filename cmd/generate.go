package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"storedoc/internal/cli"
	"storedoc/internal/config"
	"storedoc/internal/doc"
	"storedoc/internal/report"
	"storedoc/internal/target"
	"storedoc/pkg/logging"
)

// runGenerate is the whole report run: load and compile the outline, resolve
// targets, render the tree into the output file, print the summary.
//
// The outline is compiled before any connection is made, so a bad outline
// (unknown formatter, malformed wildcard, method without formatter) fails
// with nothing written and no session opened.
func runGenerate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	runID := uuid.NewString()

	log := logging.New(generateOpts.debug, cmd.ErrOrStderr())
	log = log.With("run", runID)

	outline, err := config.LoadOutline(generateOpts.outlinePath)
	if err != nil {
		return err
	}
	root, err := report.Compile(outline)
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(generateOpts.profilePath)
	if err != nil {
		return err
	}
	if generateOpts.insecure {
		profile.Insecure = true
	}

	profile.Username, profile.Password, err = cli.PromptCredentials(profile.Username, profile.Password)
	if err != nil {
		return err
	}

	var spin *spinner.Spinner
	if !generateOpts.debug {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Writer = cmd.ErrOrStderr()
		spin.Suffix = " Generating report..."
		spin.Start()
		defer spin.Stop()
	}

	set, err := target.Resolve(ctx, logging.ForSubsystem(log, "target"), profile)
	if err != nil {
		return err
	}
	defer func() {
		if err := set.Logout(ctx); err != nil {
			log.Warn("logout failed", "error", err)
		}
	}()

	outputPath := generateOpts.output
	if outputPath == "" {
		hostnames := make([]string, len(set.Targets))
		for i, t := range set.Targets {
			hostnames[i] = t.Hostname
		}
		outputPath, err = cli.OutputPath(profile.OutputTemplate, hostnames, started)
		if err != nil {
			return err
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	exec := report.NewExecutor(logging.ForSubsystem(log, "executor"), profile.FetchLimit)
	interp := report.NewInterpreter(logging.ForSubsystem(log, "interpreter"), exec, set.Targets)
	if err := interp.Render(ctx, root, 0, doc.NewWriter(out)); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outputPath, err)
	}

	if spin != nil {
		spin.Stop()
	}
	summaries := make([]cli.TargetSummary, len(set.Targets))
	for i, t := range set.Targets {
		summaries[i] = cli.TargetSummary{Hostname: t.Hostname, Calls: set.Clients[i].Calls()}
	}
	cli.PrintSummary(cmd.OutOrStdout(), runID, summaries, outputPath, time.Since(started))
	return nil
}
