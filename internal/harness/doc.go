// Package harness runs conformance scenarios against registered suites.
//
// A scenario is a YAML file naming a suite, the options to run it with and
// assertions on the outcome:
//
//	name: demo_filtered
//	description: Only the rendering group runs
//	suite: demo
//	options:
//	  group: rendering
//	assertions:
//	  - type: count
//	    field: tests
//	    count: 1
//	  - type: stream_contains
//	    text: "1 Tests 0 Failures 0 Ignored"
//
// Runs use a step clock so execution times are reproducible, which lets
// the character stream be compared against golden files with
// RunWithGolden.
package harness
