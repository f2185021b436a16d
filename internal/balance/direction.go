package balance

import (
	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/value"
)

// Direction is a guess at which way a balanced reaction proceeds.
type Direction int

const (
	DirectionUndetermined Direction = iota
	DirectionLeftToRight
	DirectionRightToLeft
)

func (d Direction) String() string {
	switch d {
	case DirectionLeftToRight:
		return "left_to_right"
	case DirectionRightToLeft:
		return "right_to_left"
	default:
		return "undetermined"
	}
}

// GuessDirection compares the amount of gas on each side of a balanced
// equation. A reaction is assumed to proceed towards the side producing more
// gas. Symbolic coefficients make the guess undetermined.
func GuessDirection(eq *chem.Equation) Direction {
	left, ok := gasAmount(eq.Left)
	if !ok {
		return DirectionUndetermined
	}
	right, ok := gasAmount(eq.Right)
	if !ok {
		return DirectionUndetermined
	}
	switch d := right.Sub(left); {
	case d.IsZero():
		return DirectionUndetermined
	case d.IsNegative():
		return DirectionRightToLeft
	default:
		return DirectionLeftToRight
	}
}

func gasAmount(items []*chem.Item) (value.Value, bool) {
	var sum value.Value
	for _, it := range items {
		if it.Molecule.Status != chem.StatusGas {
			continue
		}
		if !it.Coefficient.IsConstant() {
			return value.Value{}, false
		}
		sum = sum.Add(it.Coefficient)
	}
	return sum, true
}
