package fixture

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Main performs a complete run: it prints the header for label, lets runAll
// dispatch every registered test through RunTest or IgnoreTest, and prints
// the summary footer. With Options.Repeat > 1 the run is repeated, each
// repetition starting from zeroed counters.
//
// The return value is the number of failed tests summed over all
// repetitions; zero means the run passed. Totals and RunIDs describe all
// repetitions of the call.
func (r *Runner) Main(label string, runAll func(*Runner)) int {
	repeat := r.opts.Repeat
	if repeat < 1 {
		repeat = 1
	}

	r.totals = State{TestFile: label}
	r.runIDs = r.runIDs[:0]

	failures := 0
	for i := 1; i <= repeat; i++ {
		r.begin(label, i, repeat)
		if runAll != nil {
			runAll(r)
		}
		if !r.opts.Verbose {
			r.out.EOL()
		}
		r.end(label)
		failures += r.state.TestFailures
		r.totals.NumberOfTests += r.state.NumberOfTests
		r.totals.TestFailures += r.state.TestFailures
		r.totals.TestIgnores += r.state.TestIgnores
	}
	return failures
}

// begin resets the run state and prints the header.
func (r *Runner) begin(label string, iteration, repeat int) {
	r.state = State{TestFile: label}
	r.journal.Init()
	r.runID = uuid.Must(uuid.NewV7()).String()
	r.runIDs = append(r.runIDs, r.runID)

	r.out.Print("Run ")
	r.out.Print(label)
	if repeat > 1 {
		r.out.Char(' ')
		r.out.Unsigned(uint64(iteration))
		r.out.Print(" of ")
		r.out.Unsigned(uint64(repeat))
	}
	r.out.EOL()
}

// end prints the summary footer.
func (r *Runner) end(label string) {
	r.out.EOL()
	r.out.Print(StrBreaker)
	r.out.EOL()
	r.out.Unsigned(uint64(r.state.NumberOfTests))
	r.out.Print(" Tests ")
	r.out.Unsigned(uint64(r.state.TestFailures))
	r.out.Print(" Failures ")
	r.out.Unsigned(uint64(r.state.TestIgnores))
	r.out.Print(" Ignored ")
	r.out.EOL()
	if r.state.TestFailures == 0 {
		r.out.Print(StrOK)
	} else {
		r.out.Print(StrFail)
	}
	r.out.EOL()

	r.logger.Info("run finished",
		zap.String("label", label),
		zap.String("run_id", r.runID),
		zap.Int("tests", r.state.NumberOfTests),
		zap.Int("failures", r.state.TestFailures),
		zap.Int("ignored", r.state.TestIgnores),
	)
}
