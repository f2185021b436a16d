package store

import "github.com/bce-toolkit/bce/internal/balance"

// Result is the stored outcome of balancing one expression under one set
// of options. Exactly one of Balanced and ErrorCode is non-empty.
type Result struct {
	ID           string
	Expression   string
	Options      balance.Options
	Balanced     string
	Direction    string
	ErrorCode    string
	ErrorDetails map[string]string
}

// Failed reports whether the stored run ended in an error.
func (r Result) Failed() bool {
	return r.ErrorCode != ""
}

// Entry is one position of a run.
type Entry struct {
	RunID string
	Seq   int64
	Result
}
