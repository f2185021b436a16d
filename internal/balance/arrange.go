package balance

import (
	"math/big"

	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/solver"
	"github.com/bce-toolkit/bce/internal/value"
)

// PinParameters fixes the free parameters of a solution.
//
// A single free parameter is set to 1. Several free parameters are kept
// symbolic in the auto-arranging form and rejected with
// ErrCodeMultipleAnswers otherwise.
func PinParameters(solved *solver.SolvedEquation, form chem.Form, header string) ([]value.Value, error) {
	out := make([]value.Value, len(solved.Answers))
	switch {
	case solved.FreeCount == 1:
		name, err := solver.SymbolFor(0, header)
		if err != nil {
			return nil, err
		}
		repl := map[string]value.Value{name: value.Int(1)}
		for i, a := range solved.Answers {
			out[i] = a.Substitute(repl).Simplify()
		}
		return out, nil
	case solved.FreeCount > 1 && form != chem.FormAutoArrange:
		return nil, newError(ErrCodeMultipleAnswers)
	}
	copy(out, solved.Answers)
	return out, nil
}

// ClearFractions multiplies every answer by the least common multiple of
// all denominators so that no rational coefficient remains.
func ClearFractions(answers []value.Value) []value.Value {
	l := big.NewInt(1)
	for _, a := range answers {
		_, d := a.NumerDenom()
		l = value.LCM(l, d)
	}
	out := make([]value.Value, len(answers))
	k := value.FromInt(l)
	for i, a := range answers {
		out[i] = a.Mul(k).Simplify()
	}
	return out
}

// ReduceGCD divides the answers by the GCD of their non-zero values when
// every answer is an integer. Symbolic answers are returned unchanged.
func ReduceGCD(answers []value.Value) []value.Value {
	out := make([]value.Value, len(answers))
	copy(out, answers)

	g := new(big.Int)
	for _, a := range answers {
		n, ok := a.Int()
		if !ok {
			return out
		}
		if n.Sign() != 0 {
			g = value.GCD(g, n)
		}
	}
	if g.Cmp(big.NewInt(1)) <= 0 {
		return out
	}
	d := value.FromInt(g)
	for i := range out {
		out[i] = out[i].Div(d)
	}
	return out
}

// Arrange writes a solved system back into eq.
//
// Answers are pinned, cleared of fractions and reduced before being merged
// into the items in column order. Zero coefficients drop their item and
// negative coefficients move it to the other side, each subject to
// opts.AutoCorrect. The items of eq are reused; eq is only modified when
// Arrange succeeds.
func Arrange(eq *chem.Equation, solved *solver.SolvedEquation, opts Options) error {
	answers, err := PinParameters(solved, eq.Form, opts.SymbolHeader)
	if err != nil {
		return err
	}
	answers = ReduceGCD(ClearFractions(answers))

	left, right, err := place(eq, answers, opts)
	if err != nil {
		return err
	}

	switch {
	case len(left) == 0 && len(right) == 0:
		return newError(ErrCodeAllSidesEliminated)
	case eq.Form == chem.FormAutoArrange && (len(left) == 0 || len(right) == 0):
		return newError(ErrCodeMultipleAnswers)
	case len(left) == 0:
		return newError(ErrCodeLeftSideEliminated)
	case len(right) == 0:
		return newError(ErrCodeRightSideEliminated)
	}

	eq.Left = commit(left)
	eq.Right = commit(right)
	return nil
}

type placement struct {
	item  *chem.Item
	coeff value.Value
}

func commit(ps []placement) []*chem.Item {
	out := make([]*chem.Item, len(ps))
	for i, p := range ps {
		p.item.Coefficient = p.coeff
		out[i] = p.item
	}
	return out
}

// place decides the final side and coefficient of every item, in scan
// order, without touching eq.
func place(eq *chem.Equation, answers []value.Value, opts Options) (left, right []placement, err error) {
	strict := eq.Form == chem.FormNormal && !opts.AutoCorrect

	for col, it := range eq.Items() {
		onLeft := col < len(eq.Left)
		c := answers[col]

		if c.IsZero() {
			if !opts.AutoCorrect {
				return nil, nil, newMoleculeError(ErrCodeZeroCoefficient, it.Molecule.Formula)
			}
			continue
		}
		if c.IsNegative() {
			if strict {
				return nil, nil, newMoleculeError(ErrCodeWrongSide, it.Molecule.Formula)
			}
			c = c.Neg()
			onLeft = !onLeft
		}

		if onLeft {
			left = append(left, placement{it, c})
		} else {
			right = append(right, placement{it, c})
		}
	}
	return left, right, nil
}
