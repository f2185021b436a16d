package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bce-toolkit/bce/internal/balance"
)

// Scenario is a named list of balance cases.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is the fixed run token recorded for every case. Defaults to
	// "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Language renders failure messages. Defaults to English.
	Language string `yaml:"language,omitempty"`

	// Options are the defaults for every case.
	Options *CaseOptions `yaml:"options,omitempty"`

	Cases []Case `yaml:"cases"`
}

// CaseOptions overrides balance options. Unset fields inherit.
type CaseOptions struct {
	AutoCorrect  *bool  `yaml:"auto_correct,omitempty"`
	SymbolHeader string `yaml:"symbol_header,omitempty"`
}

// apply returns base with o's set fields copied over it.
func (o *CaseOptions) apply(base balance.Options) balance.Options {
	if o == nil {
		return base
	}
	if o.AutoCorrect != nil {
		base.AutoCorrect = *o.AutoCorrect
	}
	if o.SymbolHeader != "" {
		base.SymbolHeader = o.SymbolHeader
	}
	return base
}

// Case is one expression and what it must produce.
type Case struct {
	// Name is optional and only used in reports.
	Name string `yaml:"name,omitempty"`

	Expression string       `yaml:"expression"`
	Options    *CaseOptions `yaml:"options,omitempty"`
	Expect     Expect       `yaml:"expect"`
}

// label identifies c in error messages.
func (c Case) label(i int) string {
	if c.Name != "" {
		return fmt.Sprintf("cases[%d] (%s)", i, c.Name)
	}
	return fmt.Sprintf("cases[%d] (%s)", i, c.Expression)
}

// Expect holds the expected outcome. Exactly one of Result and Error is
// set; the remaining fields refine it.
type Expect struct {
	// Result is the expected balanced equation text.
	Result string `yaml:"result,omitempty"`

	// Direction is the expected direction guess for a balanced result.
	Direction string `yaml:"direction,omitempty"`

	// Error is the expected parser or balance error code.
	Error string `yaml:"error,omitempty"`

	// Position is the expected parse error position.
	Position *int `yaml:"position,omitempty"`

	// Details is a subset match on the error substitutions.
	Details map[string]string `yaml:"details,omitempty"`

	// Message is the expected rendered error message.
	Message string `yaml:"message,omitempty"`
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

// ParseScenario parses scenario YAML held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Expression == "" {
			return fmt.Errorf("cases[%d]: expression is required", i)
		}
		e := c.Expect
		switch {
		case e.Result == "" && e.Error == "":
			return fmt.Errorf("cases[%d].expect: one of result or error is required", i)
		case e.Result != "" && e.Error != "":
			return fmt.Errorf("cases[%d].expect: result and error are mutually exclusive", i)
		case e.Error != "" && e.Direction != "":
			return fmt.Errorf("cases[%d].expect: direction is only valid with result", i)
		case e.Result != "" && (e.Position != nil || e.Details != nil || e.Message != ""):
			return fmt.Errorf("cases[%d].expect: position, details and message are only valid with error", i)
		}
	}
	return nil
}
