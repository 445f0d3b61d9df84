// Package fixture executes test fixtures one at a time and keeps the
// pass/fail/ignore bookkeeping for a run.
//
// # Lifecycle
//
// For every test handed to Runner.RunTest the runner:
//
//  1. stores the test identity so failure reports can name it
//  2. renders the start of the status line (full name, '.' or nothing)
//  3. counts the test and empties the override journal
//  4. runs setup and body as one protected unit
//  5. runs teardown as a separate protected unit
//  6. restores every recorded override, also protected
//  7. concludes the test: counts it as passed, failed or ignored, finishes
//     the status line and clears the per-test flags
//
// A panic or an abort in any unit marks the test failed without stopping
// the later units or the following tests.
//
// # Output
//
// All output goes through an output.Sink one character at a time. With
// Options.Verbose each test gets its own line:
//
//	TEST(stack, push) PASS
//	TEST(stack, pop)tests/stack.go:41::FAIL: expected 3
//
// Without it the stream is one progress character per test ('.' when a
// test starts, '!' when it is ignored) followed by any failure reports.
// Options.Silent suppresses the per-test characters entirely. A run ends
// with a summary footer:
//
//	-----------------------
//	3 Tests 1 Failures 1 Ignored
//	FAIL
//
// # Concurrency
//
// A Runner is confined to the goroutine that drives it. Separate runs use
// separate Runners; nothing in this package is global.
package fixture
