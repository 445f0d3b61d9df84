package harness

import "github.com/roach88/fixture/internal/fixture"

// Result is the outcome of running a scenario.
type Result struct {
	// Stream is everything the runner printed.
	Stream string

	// Failures is the value returned by Runner.Main, summed over repeats.
	Failures int

	// State is the runner state after the last repetition.
	State fixture.State

	// Errors collects assertion failures.
	Errors []string
}

// AddError records an assertion failure.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}
