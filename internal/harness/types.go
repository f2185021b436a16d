package harness

// CaseResult is what one case actually produced.
type CaseResult struct {
	Seq        int64             `json:"seq"`
	Name       string            `json:"name,omitempty"`
	Expression string            `json:"expression"`
	Balanced   string            `json:"balanced,omitempty"`
	Direction  string            `json:"direction,omitempty"`
	Error      string            `json:"error,omitempty"`
	Position   *int              `json:"position,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every case met its expectation.
	Pass bool `json:"pass"`

	RunID string       `json:"run_id"`
	Cases []CaseResult `json:"cases"`

	// Errors contains one message per unmet expectation.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
