package chem

import (
	"strings"

	"github.com/bce-toolkit/bce/internal/value"
)

// Format renders e as equation text: items joined by their operators, unit
// coefficients omitted, symbolic coefficients wrapped in braces and a
// hydrate wrapped in parentheses when a coefficient precedes it, as in
// "2(CuSO4.5H2O)(s)".
//
// Both forms print with "=" so the output can be fed back to the parser.
func Format(e *Equation) string {
	var b strings.Builder
	writeSide(&b, e.Left)
	b.WriteString("=")
	writeSide(&b, e.Right)
	return b.String()
}

// FormatItem renders a single item without its operator.
func FormatItem(it *Item) string {
	var b strings.Builder
	writeItem(&b, it)
	return b.String()
}

func writeSide(b *strings.Builder, items []*Item) {
	for i, it := range items {
		switch it.Operator {
		case Plus:
			if i > 0 {
				b.WriteString("+")
			}
		case Minus:
			b.WriteString("-")
		}
		writeItem(b, it)
	}
}

func writeItem(b *strings.Builder, it *Item) {
	wrap := false
	if !it.Coefficient.Equal(value.Int(1)) {
		if it.Coefficient.IsConstant() {
			b.WriteString(it.Coefficient.String())
			wrap = it.Molecule.Hydrate
		} else {
			b.WriteString("{")
			b.WriteString(it.Coefficient.String())
			b.WriteString("}")
		}
	}
	if wrap {
		// The state suffix stays outside so the parser still finds it at
		// the end of the molecule.
		formula, suffix := it.Molecule.Formula, ""
		if it.Molecule.Status != StatusNone {
			suffix = "(" + it.Molecule.Status.String() + ")"
			formula = strings.TrimSuffix(formula, suffix)
		}
		b.WriteString("(")
		b.WriteString(formula)
		b.WriteString(")")
		b.WriteString(suffix)
		return
	}
	b.WriteString(it.Molecule.Formula)
}
