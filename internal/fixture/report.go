package fixture

import (
	"go.uber.org/zap"

	"github.com/roach88/fixture/internal/journal"
	"github.com/roach88/fixture/internal/protect"
)

// Fail reports a failure at line of the current test, marks the test failed
// and aborts the running sub-step. It must be called from inside a
// procedure passed to RunTest.
func (r *Runner) Fail(line int, msg string) {
	r.reportFailure(line, msg)
	r.state.CurrentFailed = true
	protect.Abort()
}

// Ignore reports the current test as ignored at line and aborts the running
// sub-step. It must be called from inside a procedure passed to RunTest.
func (r *Runner) Ignore(line int, msg string) {
	r.reportBegin(line)
	r.out.Print(StrIgnore)
	r.reportMessage(msg)
	r.state.CurrentIgnored = true
	protect.Abort()
}

// Override assigns value to *location for the rest of the current test.
// The previous value is written back after teardown. If the journal is full
// the location is left alone and the test fails at line.
func Override[T any](r *Runner, line int, location *T, value T) {
	if err := journal.Set(r.journal, location, value); err != nil {
		r.overflow(line, err)
	}
}

// Capture arranges for the current value of *location to be written back
// after teardown, leaving the test free to modify it. If the journal is
// full the test fails at line.
func Capture[T any](r *Runner, line int, location *T) {
	if err := journal.Record(r.journal, location); err != nil {
		r.overflow(line, err)
	}
}

func (r *Runner) overflow(line int, err error) {
	r.logger.Warn("override journal full",
		zap.Int("line", line),
		zap.Int("capacity", r.journal.Cap()),
		zap.Error(err),
	)
	r.Fail(line, MsgTooManyOverrides)
}

// reportFailure writes "<file>:<line>:<name>:FAIL[: msg]".
func (r *Runner) reportFailure(line int, msg string) {
	r.reportBegin(line)
	r.out.Print(StrFail)
	r.reportMessage(msg)
}

func (r *Runner) reportBegin(line int) {
	r.out.Print(r.state.TestFile)
	r.out.Char(':')
	r.out.Number(int64(line))
	r.out.Char(':')
	r.out.Print(r.state.CurrentTestName)
	r.out.Char(':')
}

func (r *Runner) reportMessage(msg string) {
	if msg == "" {
		return
	}
	r.out.Char(':')
	r.out.Char(' ')
	r.out.Print(msg)
}
