package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/fixture/internal/demo"
	"github.com/roach88/fixture/internal/fixture"
	"github.com/roach88/fixture/internal/suite"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	h := New(zaptest.NewLogger(t), demo.Suite())

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, h, scenario)
		})
	}
}

func TestRun_UnknownSuite(t *testing.T) {
	h := New(nil)
	_, err := h.Run(&Scenario{Name: "missing", Suite: "nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown suite "nope"`)
}

func TestRun_CollectsAssertionFailures(t *testing.T) {
	s := suite.New("broken")
	s.Group("g", nil, nil).Test("fails", func(r *fixture.Runner) { r.Fail(1, "nope") })

	scenario, err := ParseScenario([]byte(`
name: broken
description: a failing suite
suite: broken
assertions:
  - type: count
    field: failures
    count: 0
  - type: count
    field: returned
    count: 1
`))
	require.NoError(t, err)

	result, err := New(nil, s).Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failures = 0")
	assert.Contains(t, result.Errors[0], "failures = 1")
	assert.Contains(t, result.Stream, ":TEST(g, fails):FAIL: nope\n")
}

func TestRun_FreshRunnerPerScenario(t *testing.T) {
	h := New(nil, demo.Suite())
	first, err := h.Run(&Scenario{Name: "a", Suite: "demo"})
	require.NoError(t, err)
	second, err := h.Run(&Scenario{Name: "b", Suite: "demo"})
	require.NoError(t, err)

	assert.Equal(t, first.Stream, second.Stream)
	assert.Equal(t, 8, second.State.NumberOfTests)
}
