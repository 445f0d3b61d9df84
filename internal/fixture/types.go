package fixture

import (
	"strings"
	"time"
)

// Progress characters and literal markers written to the stream.
const (
	ProgressStarted byte = '.'
	ProgressIgnored byte = '!'

	StrPass    = "PASS"
	StrFail    = "FAIL"
	StrIgnore  = "IGNORE"
	StrOK      = "OK"
	StrBreaker = "-----------------------"

	// MsgTooManyOverrides is the failure message for a full journal.
	MsgTooManyOverrides = "too many overrides recorded"
)

// Identity names a test. It is only used for reporting.
type Identity struct {
	// PrintableName is shown in verbose mode and in failure reports,
	// e.g. "TEST(stack, push)".
	PrintableName string

	// Group and Name are matched against the run filters.
	Group string
	Name  string

	// File and Line locate the test definition.
	File string
	Line int
}

// Options configure how a run renders its output. They are fixed for the
// lifetime of a Runner.
type Options struct {
	// Verbose prints each test's name, a pass marker and failure details
	// on a line of its own.
	Verbose bool

	// Silent suppresses the per-test progress characters. Ignored when
	// Verbose is set.
	Silent bool

	// RepeatName keeps the test name in failure reports under Verbose.
	// By default the name is dropped from them because the verbose line
	// already starts with it.
	RepeatName bool

	// ExecTime appends " (<n> ms)" to verbose pass lines.
	ExecTime bool

	// Capacity bounds the number of overrides per test. <= 0 selects the
	// journal default.
	Capacity int

	// GroupFilter and NameFilter select tests whose group or name
	// contains the given substring. Empty matches everything.
	GroupFilter string
	NameFilter  string

	// Repeat runs the whole suite this many times. < 1 means once.
	Repeat int

	// EOL overrides the end-of-line sequence.
	EOL string
}

// selects reports whether the filters admit id.
func (o Options) selects(id Identity) bool {
	if o.GroupFilter != "" && !strings.Contains(id.Group, o.GroupFilter) {
		return false
	}
	if o.NameFilter != "" && !strings.Contains(id.Name, o.NameFilter) {
		return false
	}
	return true
}

// State is the bookkeeping for one run.
type State struct {
	NumberOfTests int
	TestFailures  int
	TestIgnores   int

	// Identity of the test currently executing. Only meaningful inside
	// Runner.RunTest.
	CurrentTestName string
	TestFile        string
	CurrentTestLine int

	// Per-test flags, cleared by Runner.ConcludeTest.
	CurrentFailed  bool
	CurrentIgnored bool
}

// Passed returns the number of tests that neither failed nor were ignored.
func (s State) Passed() int {
	return s.NumberOfTests - s.TestFailures - s.TestIgnores
}

// Clock supplies the time used for execution-time reporting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
