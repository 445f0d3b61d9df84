package fixture

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/fixture/internal/testutil"
)

// threeTests passes test1, panics in test2 and ignores test3.
func threeTests(r *Runner) {
	r.RunTest(noop, noop, noop, Identity{
		PrintableName: "TEST(e2e, test1)", Group: "e2e", Name: "test1", File: "e2e_test.go", Line: 10,
	})
	r.RunTest(noop, func() { panic("boom") }, noop, Identity{
		PrintableName: "TEST(e2e, test2)", Group: "e2e", Name: "test2", File: "e2e_test.go", Line: 20,
	})
	r.IgnoreTest(Identity{
		PrintableName: "TEST(e2e, test3)", Group: "e2e", Name: "test3", File: "e2e_test.go", Line: 30,
	})
}

func goldenAssert(t *testing.T, name string, got []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

func TestMain_EndToEnd(t *testing.T) {
	r, out := newRunner(Options{})

	failures := r.Main("demo", threeTests)

	assert.Equal(t, 1, failures)
	s := r.State()
	assert.Equal(t, 3, s.NumberOfTests)
	assert.Equal(t, 1, s.TestFailures)
	assert.Equal(t, 1, s.TestIgnores)
	assert.Equal(t, 1, s.Passed())
	goldenAssert(t, "end_to_end", out.Bytes())
}

func TestMain_EndToEndVerbose(t *testing.T) {
	r, out := newRunner(Options{Verbose: true, ExecTime: true})

	failures := r.Main("demo", threeTests)

	assert.Equal(t, 1, failures)
	goldenAssert(t, "end_to_end_verbose", out.Bytes())
}

func TestMain_AllPass(t *testing.T) {
	r, out := newRunner(Options{})
	failures := r.Main("ok", func(r *Runner) {
		r.RunTest(noop, noop, noop, ident("g", "a", 1))
		r.RunTest(noop, noop, noop, ident("g", "b", 2))
	})

	assert.Equal(t, 0, failures)
	assert.Equal(t, "Run ok\n..\n\n-----------------------\n2 Tests 0 Failures 0 Ignored \nOK\n", out.String())
}

func TestMain_Silent(t *testing.T) {
	r, out := newRunner(Options{Silent: true})
	failures := r.Main("quiet", func(r *Runner) {
		r.RunTest(noop, noop, noop, ident("g", "a", 1))
		r.IgnoreTest(ident("g", "b", 2))
	})

	assert.Equal(t, 0, failures)
	assert.Equal(t, "Run quiet\n\n\n-----------------------\n2 Tests 0 Failures 1 Ignored \nOK\n", out.String())
}

func TestMain_NilRunAll(t *testing.T) {
	r, out := newRunner(Options{Verbose: true})
	assert.Equal(t, 0, r.Main("empty", nil))
	assert.Equal(t, "Run empty\n\n-----------------------\n0 Tests 0 Failures 0 Ignored \nOK\n", out.String())
}

func TestMain_ResetsStateBetweenRuns(t *testing.T) {
	r, _ := newRunner(Options{Silent: true})
	require.Equal(t, 1, r.Main("first", threeTests))
	firstID := r.RunID()

	assert.Equal(t, 0, r.Main("second", func(r *Runner) {
		r.RunTest(noop, noop, noop, ident("g", "a", 1))
	}))
	assert.Equal(t, 1, r.State().NumberOfTests)
	assert.NotEmpty(t, r.RunID())
	assert.NotEqual(t, firstID, r.RunID())
}

func TestMain_Repeat(t *testing.T) {
	r, out := newRunner(Options{Silent: true, Repeat: 2})
	calls := 0

	failures := r.Main("rep", func(r *Runner) {
		calls++
		threeTests(r)
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, failures)
	// State describes the last repetition; Totals covers all of them
	assert.Equal(t, 3, r.State().NumberOfTests)
	assert.Contains(t, out.String(), "Run rep 1 of 2\n")
	assert.Contains(t, out.String(), "Run rep 2 of 2\n")
}

func TestMain_RepeatTotalsBalance(t *testing.T) {
	r, _ := newRunner(Options{Silent: true, Repeat: 3})

	failures := r.Main("rep", threeTests)

	totals := r.Totals()
	assert.Equal(t, 3, failures)
	assert.Equal(t, 9, totals.NumberOfTests)
	assert.Equal(t, 3, totals.TestFailures)
	assert.Equal(t, 3, totals.TestIgnores)
	assert.Equal(t, 3, totals.Passed())
	assert.Equal(t, totals.NumberOfTests, totals.TestFailures+totals.TestIgnores+totals.Passed())

	ids := r.RunIDs()
	require.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
	assert.Equal(t, r.RunID(), ids[2])
}

func TestMain_TotalsResetBetweenCalls(t *testing.T) {
	r, _ := newRunner(Options{Silent: true, Repeat: 2})
	r.Main("first", threeTests)

	r.Main("second", func(r *Runner) {
		r.RunTest(noop, noop, noop, ident("g", "a", 1))
	})

	assert.Equal(t, 2, r.Totals().NumberOfTests)
	assert.Equal(t, 0, r.Totals().TestFailures)
	assert.Len(t, r.RunIDs(), 2)
}

func TestMain_LogsRunSummary(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := &testutil.Recorder{}
	r := New(rec, Options{}, WithLogger(zap.New(core)), WithClock(testutil.NewStepClock(time.Millisecond)))

	r.Main("logged", threeTests)

	finished := logs.FilterMessage("run finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, "logged", fields["label"])
	assert.Equal(t, int64(3), fields["tests"])
	assert.Equal(t, int64(1), fields["failures"])
	assert.Equal(t, r.RunID(), fields["run_id"])

	assert.Len(t, logs.FilterMessage("protected step aborted").All(), 1)
	assert.Len(t, logs.FilterMessage("test started").All(), 2)
}
