// Package testutil holds deterministic stand-ins used by tests across bce.
package testutil

import "sync"

// FixedTokenGenerator returns predetermined run tokens in order, so a run
// recorded in a test has a known ID and golden output stays stable.
//
// Thread-safety: FixedTokenGenerator is safe for concurrent use via internal mutex.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator that returns tokens in order.
// With no tokens it returns "test-run-default" forever.
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics if all tokens have been consumed. A test that starts more runs
// than it declared is misconfigured.
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.tokens) == 0 {
		return "test-run-default"
	}
	if g.idx >= len(g.tokens) {
		panic("FixedTokenGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
