package harness

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/fixture/internal/fixture"
	"github.com/roach88/fixture/internal/suite"
	"github.com/roach88/fixture/internal/testutil"
)

// ClockStep is how far the harness clock advances per reading, so every
// passing test reports the same execution time.
const ClockStep = 5 * time.Millisecond

// Harness runs scenarios against a fixed set of suites.
type Harness struct {
	suites map[string]*suite.Suite
	logger *zap.Logger
}

// New creates a harness over suites, keyed by label. A later suite with
// the same label replaces an earlier one.
func New(logger *zap.Logger, suites ...*suite.Suite) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Harness{suites: make(map[string]*suite.Suite, len(suites)), logger: logger}
	for _, s := range suites {
		h.suites[s.Label] = s
	}
	return h
}

// Run executes a scenario in a fresh runner and evaluates its assertions.
// The error is non-nil only when the scenario cannot be run at all;
// assertion failures are collected in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	s, ok := h.suites[scenario.Suite]
	if !ok {
		return nil, fmt.Errorf("scenario %q: unknown suite %q", scenario.Name, scenario.Suite)
	}

	rec := &testutil.Recorder{}
	r := fixture.New(rec, scenario.Options.Options(),
		fixture.WithClock(testutil.NewStepClock(ClockStep)),
		fixture.WithLogger(h.logger.With(zap.String("scenario", scenario.Name))),
	)

	result := &Result{}
	result.Failures = r.Main(s.Label, s.RunAll)
	result.State = r.State()
	result.Stream = rec.String()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
