// Package demo is the suite compiled into the fixture command. It doubles as
// a worked example of registering groups, overriding shared state and
// reporting failures from a test body.
package demo

import (
	"fmt"
	"runtime"

	"github.com/roach88/fixture/internal/fixture"
	"github.com/roach88/fixture/internal/journal"
	"github.com/roach88/fixture/internal/output"
	"github.com/roach88/fixture/internal/protect"
	"github.com/roach88/fixture/internal/suite"
)

// Shared state the tests substitute for the duration of a single test.
var (
	greeting = "hello"
	now      = func() int { return 1 }
)

// check fails the current test at the caller's line when ok is false.
func check(r *fixture.Runner, ok bool, format string, args ...any) {
	if ok {
		return
	}
	_, _, line, _ := runtime.Caller(1)
	r.Fail(line, fmt.Sprintf(format, args...))
}

// here returns the caller's line, for reports raised on the caller's
// behalf.
func here() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

// Suite returns a fresh copy of the demo suite.
func Suite() *suite.Suite {
	s := suite.New("demo")

	overrides := s.Group("overrides",
		func(r *fixture.Runner) {
			fixture.Override(r, here(), &greeting, "setup")
		},
		func(r *fixture.Runner) {
			check(r, greeting != "hello", "override undone before teardown")
		},
	)
	overrides.Test("setup override is visible", func(r *fixture.Runner) {
		check(r, greeting == "setup", "greeting = %q", greeting)
	})
	overrides.Test("function override", func(r *fixture.Runner) {
		fixture.Override(r, here(), &now, func() int { return 42 })
		check(r, now() == 42, "now() = %d", now())
	})
	overrides.Test("nested overrides", func(r *fixture.Runner) {
		fixture.Override(r, here(), &greeting, "outer")
		fixture.Override(r, here(), &greeting, "inner")
		check(r, greeting == "inner", "greeting = %q", greeting)
	})
	overrides.Test("state restored between tests", func(r *fixture.Runner) {
		check(r, greeting == "setup", "greeting = %q", greeting)
		check(r, now() == 1, "now() = %d", now())
	})

	isolation := s.Group("isolation", nil, nil)
	isolation.Test("nested protected call contains a panic", func(r *fixture.Runner) {
		check(r, !protect.Call(func() { panic("contained") }), "panic escaped detection")
	})
	isolation.Test("journal reports overflow", func(r *fixture.Runner) {
		j := journal.New(1)
		var a, b int
		check(r, journal.Set(j, &a, 1) == nil, "first override rejected")
		check(r, journal.IsCapacityError(journal.Set(j, &b, 1)), "overflow not reported")
		j.RestoreAll()
		check(r, a == 0 && b == 0, "a=%d b=%d", a, b)
	})
	isolation.IgnoreTest("watchdog reset", nil)

	rendering := s.Group("rendering", nil, nil)
	rendering.Test("numbers are printed digit by digit", func(r *fixture.Runner) {
		var got []byte
		p := output.NewPrinter(output.SinkFunc(func(c byte) { got = append(got, c) }), "")
		p.Number(-1024)
		check(r, string(got) == "-1024", "got %q", got)
	})

	return s
}
