package balance

import (
	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/matrix"
)

// BuildMatrix models the conservation of every atom (and of charge) in eq
// as a homogeneous system [A | 0].
//
// Rows follow the order in which atom symbols are first seen, scanning left
// items then right items. Column j holds item j's signed count: positive for
// a left "+" item or a right "-" item, negative otherwise.
func BuildMatrix(eq *chem.Equation) (*matrix.Dense, error) {
	items := eq.Items()

	rowOf := make(map[string]int)
	var symbols []string
	for _, it := range items {
		for _, sym := range it.Atoms.Symbols() {
			if _, ok := rowOf[sym]; !ok {
				rowOf[sym] = len(symbols)
				symbols = append(symbols, sym)
			}
		}
	}

	m, err := matrix.NewDense(len(symbols), len(items)+1)
	if err != nil {
		return nil, err
	}

	for col, it := range items {
		positive := it.Operator == chem.Plus
		if col >= len(eq.Left) {
			positive = !positive
		}
		for _, sym := range it.Atoms.Symbols() {
			n := it.Atoms.Count(sym)
			if !positive {
				n = n.Neg()
			}
			if err := m.Set(rowOf[sym], col, n); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
