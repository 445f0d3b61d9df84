package fixture

import (
	"time"

	"go.uber.org/zap"

	"github.com/roach88/fixture/internal/journal"
	"github.com/roach88/fixture/internal/output"
	"github.com/roach88/fixture/internal/protect"
)

// Runner executes fixtures and owns the run state.
type Runner struct {
	opts    Options
	state   State
	journal *journal.Journal
	out     *output.Printer
	clock   Clock
	logger  *zap.Logger
	runID   string
	runIDs  []string
	totals  State
	started time.Time
}

// Option customises a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostics logger. The character stream is not
// affected by it.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock replaces the wall clock used for execution times.
func WithClock(clock Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// New creates a Runner writing to sink.
func New(sink output.Sink, opts Options, options ...Option) *Runner {
	r := &Runner{
		opts:    opts,
		journal: journal.New(opts.Capacity),
		out:     output.NewPrinter(sink, opts.EOL),
		clock:   systemClock{},
		logger:  zap.NewNop(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// State returns a copy of the current run state.
func (r *Runner) State() State {
	return r.state
}

// Options returns the configuration the runner was created with.
func (r *Runner) Options() Options {
	return r.opts
}

// RunID identifies the current run in diagnostics. Empty before Main.
func (r *Runner) RunID() string {
	return r.runID
}

// RunIDs returns the ID of every repetition of the last Main call, in
// order.
func (r *Runner) RunIDs() []string {
	return append([]string(nil), r.runIDs...)
}

// Totals returns the counters of the last Main call summed over all of
// its repetitions. Unlike State it balances across repeats:
// NumberOfTests == TestFailures + TestIgnores + Passed().
func (r *Runner) Totals() State {
	return r.totals
}

// RunTest executes one fixture: setup and body, then teardown, then the
// override restore, each under protection, and concludes the test.
// Nil procedures are treated as empty. Tests excluded by the filters are
// skipped without being counted.
func (r *Runner) RunTest(setup, body, teardown func(), id Identity) {
	if !r.opts.selects(id) {
		return
	}

	r.state.TestFile = id.File
	r.state.CurrentTestName = id.PrintableName
	r.state.CurrentTestLine = id.Line

	switch {
	case r.opts.Verbose:
		r.out.Print(id.PrintableName)
		if !r.opts.RepeatName {
			r.state.CurrentTestName = ""
		}
	case r.opts.Silent:
	default:
		r.out.Char(ProgressStarted)
	}

	r.state.NumberOfTests++
	r.journal.Init()
	r.started = r.clock.Now()

	r.logger.Debug("test started",
		zap.String("test", id.PrintableName),
		zap.String("file", id.File),
		zap.Int("line", id.Line),
	)

	r.protected("body", func() {
		if setup != nil {
			setup()
		}
		if body != nil {
			body()
		}
	})
	r.protected("teardown", teardown)
	r.restoreOverrides()

	r.ConcludeTest()
}

// IgnoreTest counts a test as ignored without running any part of it.
func (r *Runner) IgnoreTest(id Identity) {
	if !r.opts.selects(id) {
		return
	}

	r.state.NumberOfTests++
	r.state.TestIgnores++

	switch {
	case r.opts.Verbose:
		r.out.Print(id.PrintableName)
		r.out.EOL()
	case r.opts.Silent:
	default:
		r.out.Char(ProgressIgnored)
	}

	r.logger.Debug("test ignored", zap.String("test", id.PrintableName))
}

// ConcludeTest folds the per-test flags into the counters, finishes the
// status line and clears the flags for the next test.
func (r *Runner) ConcludeTest() {
	outcome := StrPass
	switch {
	case r.state.CurrentIgnored:
		outcome = StrIgnore
		r.state.TestIgnores++
		r.out.EOL()
	case !r.state.CurrentFailed:
		if r.opts.Verbose {
			r.out.Print(" ")
			r.out.Print(StrPass)
			if r.opts.ExecTime {
				r.printExecTime()
			}
			r.out.EOL()
		}
	default:
		outcome = StrFail
		r.state.TestFailures++
		r.out.EOL()
	}

	r.logger.Debug("test concluded",
		zap.String("file", r.state.TestFile),
		zap.Int("line", r.state.CurrentTestLine),
		zap.String("outcome", outcome),
	)

	r.state.CurrentFailed = false
	r.state.CurrentIgnored = false
}

// protected runs fn and marks the current test failed if it does not
// complete. Unexpected panics are reported on the stream; aborts have
// already reported themselves.
func (r *Runner) protected(step string, fn func()) {
	p := protect.Run(fn)
	if p == nil {
		return
	}

	r.state.CurrentFailed = true
	if !p.Aborted() {
		r.reportFailure(r.state.CurrentTestLine, p.Error())
	}

	r.logger.Warn("protected step aborted",
		zap.String("step", step),
		zap.Int("line", r.state.CurrentTestLine),
		zap.Error(p),
		zap.ByteString("stack", p.Stack),
	)
}

// restoreOverrides drains the journal. An undo that panics fails the test
// and the remaining entries are still restored; anything left after that
// is dropped so the next test starts empty.
func (r *Runner) restoreOverrides() {
	attempts := r.journal.Len()
	for r.journal.Len() > 0 && attempts >= 0 {
		r.protected("restore", r.journal.RestoreAll)
		attempts--
	}
	r.journal.Init()
}

func (r *Runner) printExecTime() {
	elapsed := r.clock.Now().Sub(r.started)
	if elapsed < 0 {
		elapsed = 0
	}
	r.out.Print(" (")
	r.out.Unsigned(uint64(elapsed.Milliseconds()))
	r.out.Print(" ms)")
}
