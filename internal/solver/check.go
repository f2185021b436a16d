package solver

import (
	"fmt"

	"github.com/bce-toolkit/bce/internal/matrix"
	"github.com/bce-toolkit/bce/internal/value"
)

// Check reports whether answers satisfy every row of the augmented matrix
// original: Σ_j original(row, j)·answers[j] must simplify to the augmented
// entry of the row.
//
// Check is also the "already balanced" predicate: feed it the current
// coefficients of an equation instead of solver output.
func Check(original *matrix.Dense, answers []value.Value) (bool, error) {
	unknowns := original.Cols() - 1
	if len(answers) != unknowns {
		return false, fmt.Errorf("check: %d answers for %d unknowns: %w", len(answers), unknowns, ErrShapeMismatch)
	}
	for r := 0; r < original.Rows(); r++ {
		row, err := original.Row(r)
		if err != nil {
			return false, err
		}
		var sum value.Value
		for j := 0; j < unknowns; j++ {
			if row[j].IsZero() {
				continue
			}
			sum = sum.Add(row[j].Mul(answers[j]))
		}
		if !sum.Simplify().Equal(row[unknowns]) {
			return false, nil
		}
	}
	return true, nil
}

// CheckSolved is Check applied to a solver result.
func CheckSolved(original *matrix.Dense, solved *SolvedEquation) (bool, error) {
	return Check(original, solved.Answers)
}
