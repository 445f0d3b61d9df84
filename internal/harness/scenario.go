package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fixture/internal/config"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Suite is the label of the registered suite to run.
	Suite string `yaml:"suite"`

	// Options are the run options, in configuration file form. Keys left
	// out keep their defaults.
	Options config.File `yaml:"options"`

	// Assertions validate the result.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is the expected stream fragment (stream_contains, stream_absent).
	Text string `yaml:"text,omitempty"`

	// Texts are fragments expected in this order (stream_order).
	Texts []string `yaml:"texts,omitempty"`

	// Field is the counter checked by count: tests, failures, ignored,
	// passed or returned.
	Field string `yaml:"field,omitempty"`

	// Count is the expected counter value (count).
	Count int `yaml:"count"`
}

// Assertion type constants.
const (
	AssertStreamContains = "stream_contains"
	AssertStreamAbsent   = "stream_absent"
	AssertStreamOrder    = "stream_order"
	AssertCount          = "count"
)

var countFields = map[string]bool{
	"tests":    true,
	"failures": true,
	"ignored":  true,
	"passed":   true,
	"returned": true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Options: *config.Default()}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Suite == "" {
		return fmt.Errorf("suite is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if err := s.Options.Validate(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertStreamContains, AssertStreamAbsent:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertStreamOrder:
		if len(a.Texts) < 2 {
			return fmt.Errorf("assertions[%d]: at least two texts are required for stream_order", index)
		}
	case AssertCount:
		if !countFields[a.Field] {
			return fmt.Errorf("assertions[%d]: unknown count field %q", index, a.Field)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
