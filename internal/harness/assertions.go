package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Stream   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull stream:\n%s", e.Stream)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertStreamContains:
		return assertStreamContains(result.Stream, a)
	case AssertStreamAbsent:
		return assertStreamAbsent(result.Stream, a)
	case AssertStreamOrder:
		return assertStreamOrder(result.Stream, a)
	case AssertCount:
		return assertCount(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertStreamContains(stream string, a Assertion) error {
	if strings.Contains(stream, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStreamContains,
		Expected: fmt.Sprintf("stream contains %q", a.Text),
		Actual:   "not found",
		Stream:   stream,
	}
}

func assertStreamAbsent(stream string, a Assertion) error {
	if !strings.Contains(stream, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStreamAbsent,
		Expected: fmt.Sprintf("stream does not contain %q", a.Text),
		Actual:   "found",
		Stream:   stream,
	}
}

func assertStreamOrder(stream string, a Assertion) error {
	pos := 0
	for i, text := range a.Texts {
		idx := strings.Index(stream[pos:], text)
		if idx < 0 {
			return &AssertionError{
				Type:     AssertStreamOrder,
				Expected: fmt.Sprintf("%q in that order", a.Texts),
				Actual:   fmt.Sprintf("texts[%d] %q not found after offset %d", i, text, pos),
				Stream:   stream,
			}
		}
		pos += idx + len(text)
	}
	return nil
}

func assertCount(result *Result, a Assertion) error {
	var actual int
	switch a.Field {
	case "tests":
		actual = result.State.NumberOfTests
	case "failures":
		actual = result.State.TestFailures
	case "ignored":
		actual = result.State.TestIgnores
	case "passed":
		actual = result.State.Passed()
	case "returned":
		actual = result.Failures
	default:
		return fmt.Errorf("unknown count field %q", a.Field)
	}
	if actual == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Expected: fmt.Sprintf("%s = %d", a.Field, a.Count),
		Actual:   fmt.Sprintf("%s = %d", a.Field, actual),
		Stream:   result.Stream,
	}
}
