package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosMatchGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong
description: "Expectations that do not hold"
cases:
  - expression: "H2+O2=H2O"
    expect:
      result: "H2+O2=H2O"
  - expression: "He=Ne"
    expect:
      result: "He=Ne"
  - expression: "H2O+N#=C"
    expect:
      error: UNEXPECTED_CHARACTER
      position: 4
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], `result: expected "H2+O2=H2O", got "2H2+O2=2H2O"`)
	assert.Contains(t, result.Errors[1], "got error ALL_SIDES_ELIMINATED")
	assert.Contains(t, result.Errors[2], "position: expected 4, got 5")
	assert.Equal(t, "test-run-default", result.RunID)
}

func TestRun_ScenarioOptionsAndLanguage(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: strict
description: "Scenario-wide options"
language: zh-Hans
options:
  auto_correct: false
cases:
  - expression: "H2+O2+Ne=H2O"
    expect:
      error: ZERO_COEFFICIENT_MOLECULE
      details:
        $1: Ne
      message: "分子 'Ne' 的系数为零。"
  - expression: "H2+O2+Ne=H2O"
    options:
      auto_correct: true
    expect:
      result: "2H2+O2=2H2O"
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
}

func TestRun_InvalidScenarioOptions(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "bad header",
		Options:     &CaseOptions{SymbolHeader: "1"},
		Cases:       []Case{{Expression: "H2+O2=H2O", Expect: Expect{Result: "2H2+O2=2H2O"}}},
	}
	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestParseScenario_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "name: a\ndescription: b\ncase: []\n", "field case not found"},
		{"missing name", "description: b\ncases:\n  - expression: A=B\n    expect: {result: A=B}\n", "name is required"},
		{"missing description", "name: a\ncases:\n  - expression: A=B\n    expect: {result: A=B}\n", "description is required"},
		{"no cases", "name: a\ndescription: b\n", "cases list is required"},
		{"no expression", "name: a\ndescription: b\ncases:\n  - expect: {result: A=B}\n", "expression is required"},
		{"no expectation", "name: a\ndescription: b\ncases:\n  - expression: A=B\n", "one of result or error"},
		{"both", "name: a\ndescription: b\ncases:\n  - expression: A=B\n    expect: {result: A=B, error: X}\n", "mutually exclusive"},
		{"direction with error", "name: a\ndescription: b\ncases:\n  - expression: A=B\n    expect: {error: X, direction: undetermined}\n", "direction is only valid"},
		{"message with result", "name: a\ndescription: b\ncases:\n  - expression: A=B\n    expect: {result: A=B, message: m}\n", "only valid with error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalSnapshot_NoHTMLEscaping(t *testing.T) {
	scenario := &Scenario{Name: "charge"}
	result := NewResult("run")
	result.Cases = append(result.Cases, CaseResult{Seq: 1, Expression: "Fe<3e+>=Fe<2e+>+<e+>"})

	data, err := MarshalSnapshot(scenario, result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fe<3e+>=Fe<2e+>+<e+>"`)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}
