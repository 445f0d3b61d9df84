package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fixture/internal/fixture"
	"github.com/roach88/fixture/internal/testutil"
)

func TestPrintableName(t *testing.T) {
	assert.Equal(t, "TEST(stack, push)", PrintableName("stack", "push", false))
	assert.Equal(t, "IGNORE_TEST(stack, pop)", PrintableName("stack", "pop", true))
}

func TestTest_RecordsCallerLocation(t *testing.T) {
	s := New("loc")
	g := s.Group("g", nil, nil)
	g.Test("here", nil)

	require.Len(t, g.Cases, 1)
	assert.Equal(t, "suite_test.go", g.Cases[0].File)
	assert.Greater(t, g.Cases[0].Line, 0)
}

func TestNormalize_NFC(t *testing.T) {
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"

	s := New(decomposed)
	g := s.Group(decomposed, nil, nil)
	g.Test(decomposed, nil)

	assert.Equal(t, composed, s.Label)
	assert.Equal(t, composed, g.Name)
	assert.Equal(t, "TEST(caf\u00e9, caf\u00e9)", s.List()[0].PrintableName)
}

func TestList_OrderAndIdentity(t *testing.T) {
	s := New("list")
	s.Group("a", nil, nil).Test("one", nil).IgnoreTest("two", nil)
	s.Group("b", nil, nil).Test("three", nil)

	ids := s.List()
	require.Len(t, ids, 3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "TEST(a, one)", ids[0].PrintableName)
	assert.Equal(t, "IGNORE_TEST(a, two)", ids[1].PrintableName)
	assert.Equal(t, "TEST(b, three)", ids[2].PrintableName)
	assert.Equal(t, "b", ids[2].Group)
	assert.Equal(t, "three", ids[2].Name)
}

func TestList_EmptySuite(t *testing.T) {
	ids := New("empty").List()
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestRunAll_DispatchesInOrderWithFixtures(t *testing.T) {
	var calls []string
	rec := &testutil.Recorder{}
	r := fixture.New(rec, fixture.Options{})

	s := New("order")
	g := s.Group("g",
		func(*fixture.Runner) { calls = append(calls, "setup") },
		func(*fixture.Runner) { calls = append(calls, "teardown") },
	)
	g.Test("first", func(*fixture.Runner) { calls = append(calls, "first") })
	g.IgnoreTest("skipped", func(*fixture.Runner) { calls = append(calls, "skipped") })
	g.Test("second", func(*fixture.Runner) { calls = append(calls, "second") })

	failures := r.Main(s.Label, s.RunAll)

	assert.Equal(t, 0, failures)
	assert.Equal(t, []string{"setup", "first", "teardown", "setup", "second", "teardown"}, calls)

	st := r.State()
	assert.Equal(t, 3, st.NumberOfTests)
	assert.Equal(t, 1, st.TestIgnores)
	assert.Contains(t, rec.String(), ".!.")
}

func TestRunAll_BodyUsesRunner(t *testing.T) {
	shared := "real"
	rec := &testutil.Recorder{}
	r := fixture.New(rec, fixture.Options{Verbose: true})

	s := New("runner")
	g := s.Group("g", nil, nil)
	g.Test("override", func(r *fixture.Runner) {
		fixture.Override(r, 1, &shared, "stub")
	})
	g.Test("fails", func(r *fixture.Runner) {
		if shared != "real" {
			r.Fail(2, "override leaked")
		}
		r.Fail(3, "always")
	})

	failures := r.Main(s.Label, s.RunAll)

	assert.Equal(t, 1, failures)
	assert.Equal(t, "real", shared)
	assert.Contains(t, rec.String(), "TEST(g, override) PASS\n")
	assert.Contains(t, rec.String(), "TEST(g, fails)suite_test.go:3::FAIL: always\n")
}
