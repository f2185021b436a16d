package balance

import (
	"log/slog"

	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/parser"
	"github.com/bce-toolkit/bce/internal/solver"
)

// checkSolved validates a raw solution against the pre-elimination matrix.
var checkSolved = solver.CheckSolved

// Balance solves eq and rewrites its items with minimal positive integer
// coefficients.
//
// The sequence is build, snapshot, solve, validate against the snapshot,
// arrange. Errors are reported in priority order: conflicting equations,
// multiple answers, then side elimination (all, left, right). On error eq
// is left untouched.
func Balance(eq *chem.Equation, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	m, err := BuildMatrix(eq)
	if err != nil {
		return err
	}
	backup := m.Clone()

	solved, err := solver.Solve(m, solver.WithSymbolHeader(opts.SymbolHeader))
	if err != nil {
		return err
	}
	slog.Debug("equation solved",
		"rows", backup.Rows(),
		"unknowns", len(solved.Answers),
		"free_parameters", solved.FreeCount,
		"form", eq.Form.String(),
	)

	ok, err := checkSolved(backup, solved)
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrCodeConflictingEquations)
	}

	return Arrange(eq, solved, opts)
}

// IsBalanced reports whether the current coefficients of eq already
// conserve every atom and the total charge.
func IsBalanced(eq *chem.Equation) (bool, error) {
	m, err := BuildMatrix(eq)
	if err != nil {
		return false, err
	}
	return solver.Check(m, eq.Coefficients())
}

// BalanceExpression parses expr and balances it.
func BalanceExpression(expr string, opts Options) (*chem.Equation, error) {
	eq, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	if err := Balance(eq, opts); err != nil {
		return nil, err
	}
	return eq, nil
}
