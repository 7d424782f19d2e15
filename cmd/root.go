package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Exit codes. Scripts that drive report generation key off these.
const (
	// ExitCodeSuccess indicates the report was generated.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a configuration, I/O or API failure.
	ExitCodeError = 1
	// ExitCodeUsage indicates bad command-line arguments.
	ExitCodeUsage = 2
)

// usageError marks argument-parsing failures so Execute can map them to the
// dedicated exit code.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var generateOpts struct {
	outlinePath string
	profilePath string
	output      string
	debug       bool
	insecure    bool
}

// rootCmd generates the report; there is no separate subcommand for the main
// action, mirroring how the tool is invoked in the field.
var rootCmd = &cobra.Command{
	Use:   "storedoc",
	Short: "Generate a storage appliance implementation report",
	Long: `storedoc walks a declarative outline of report sections, queries the
appliance REST API (and the cluster partner, if one is configured) for each
section that requests data, and writes a single Markdown report.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

// SetVersion sets the version for the root command. Called from main with the
// build-time value.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI and exits the process with the appropriate code.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "storedoc version %s\n" .Version}}`)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(ExitCodeUsage)
		}
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&generateOpts.outlinePath, "config", "c", "outline.json", "path to the report outline")
	rootCmd.Flags().StringVar(&generateOpts.profilePath, "profile", defaultProfilePath(), "path to the connection profile")
	rootCmd.Flags().StringVarP(&generateOpts.output, "output", "o", "", "output file (overrides the profile's filename template)")
	rootCmd.Flags().BoolVar(&generateOpts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&generateOpts.insecure, "insecure", false, "skip TLS certificate verification")

	rootCmd.AddCommand(newVersionCmd())
}

func defaultProfilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "profile.yaml"
	}
	return filepath.Join(homeDir, ".config", "storedoc", "profile.yaml")
}
