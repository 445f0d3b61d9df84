package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fixture/internal/suite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
	Config   string

	// Suites are the compiled-in test suites the commands operate on.
	Suites []*suite.Suite
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Downstream programs pass the
// suites they register; every subcommand works on that list.
func NewRootCommand(suites ...*suite.Suite) *cobra.Command {
	opts := &RootOptions{Suites: suites}

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Run compiled-in test fixtures",
		Long: `fixture runs registered test fixtures one at a time, isolating
crashes so one test cannot abort the run, and reports results as a plain
character stream followed by a summary.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print every test name with its result")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "diagnostics level on stderr (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML configuration file")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
