package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/fixture/internal/config"
	"github.com/roach88/fixture/internal/fixture"
	"github.com/roach88/fixture/internal/output"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Silent     bool
	RepeatName bool
	ExecTime   bool
	Group      string
	Name       string
	Repeat     int
	Capacity   int
}

// SuiteSummary is the outcome of one suite. With --repeat every count is
// summed over the repetitions and RunIDs holds one ID per repetition.
type SuiteSummary struct {
	Label    string   `json:"label"`
	RunIDs   []string `json:"run_ids"`
	Tests    int      `json:"tests"`
	Failures int      `json:"failures"`
	Ignored  int      `json:"ignored"`
	Passed   int      `json:"passed"`
}

// RunSummary is the outcome of a run command.
type RunSummary struct {
	Suites   []SuiteSummary `json:"suites"`
	Tests    int            `json:"tests"`
	Failures int            `json:"failures"`
	Ignored  int            `json:"ignored"`
	Passed   int            `json:"passed"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered test suites",
		Long: `Run every registered suite and print the result stream.

Without --verbose each test prints one progress character ('.' started,
'!' ignored) followed by any failure report; --silent drops those too.

Exit codes:
  0     - All tests passed
  1-254 - Number of failed tests (clamped at 254)
  255   - Command error (bad flags, invalid configuration)

Examples:
  fixture run
  fixture run -v --exec-time
  fixture run -g stack -n push
  fixture run --config fixture.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Silent, "silent", "s", false, "suppress per-test progress characters")
	cmd.Flags().BoolVar(&opts.RepeatName, "repeat-name", false, "repeat the test name in verbose failure reports")
	cmd.Flags().BoolVar(&opts.ExecTime, "exec-time", false, "print execution time of passing tests in verbose mode")
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "only run groups whose name contains this text")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "only run tests whose name contains this text")
	cmd.Flags().IntVarP(&opts.Repeat, "repeat", "r", 1, "run every suite this many times")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "maximum overrides per test (0 selects the default)")

	return cmd
}

func runSuites(opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "configure logging", err)
	}
	defer func() { _ = logger.Sync() }()

	out := &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}

	summary := RunSummary{Suites: []SuiteSummary{}}
	runner := fixture.New(output.WriterSink(out.Stream()), cfg.Options(), fixture.WithLogger(logger))

	for _, s := range opts.Suites {
		failures := runner.Main(s.Label, s.RunAll)
		st := runner.Totals()

		summary.Suites = append(summary.Suites, SuiteSummary{
			Label:    s.Label,
			RunIDs:   runner.RunIDs(),
			Tests:    st.NumberOfTests,
			Failures: failures,
			Ignored:  st.TestIgnores,
			Passed:   st.Passed(),
		})
		summary.Tests += st.NumberOfTests
		summary.Failures += failures
		summary.Ignored += st.TestIgnores
		summary.Passed += st.Passed()

		logger.Debug("suite finished", zap.String("suite", s.Label), zap.Int("failures", failures))
	}

	if cfg.Format == "json" {
		if summary.Failures > 0 {
			if err := out.Error("E_TEST_FAILED", fmt.Sprintf("%d test(s) failed", summary.Failures), summary); err != nil {
				return err
			}
		} else if err := out.Success(summary); err != nil {
			return err
		}
	} else if len(opts.Suites) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No suites registered.")
	}

	return FailureExitError(summary.Failures)
}

// resolveConfig loads the configuration file, if any, and lets explicitly
// set flags override it.
func resolveConfig(opts *RunOptions, cmd *cobra.Command) (*config.File, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load configuration", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("silent") {
		cfg.Silent = opts.Silent
	}
	if flags.Changed("repeat-name") {
		cfg.RepeatName = opts.RepeatName
	}
	if flags.Changed("exec-time") {
		cfg.ExecTime = opts.ExecTime
	}
	if flags.Changed("group") {
		cfg.Group = opts.Group
	}
	if flags.Changed("name") {
		cfg.Name = opts.Name
	}
	if flags.Changed("repeat") {
		cfg.Repeat = opts.Repeat
	}
	if flags.Changed("capacity") {
		cfg.Capacity = opts.Capacity
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}
