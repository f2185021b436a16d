// Package chem defines the chemical equation model shared by the parser, the
// balancer and every output surface.
package chem

import (
	"github.com/bce-toolkit/bce/internal/value"
)

// ElectronSymbol is the synthetic atom symbol that carries charge.
const ElectronSymbol = "e"

// Operator is the sign an item carries within its side.
type Operator int

const (
	Plus Operator = iota
	Minus
)

func (o Operator) String() string {
	if o == Minus {
		return "-"
	}
	return "+"
}

// Form is the syntactic form an equation was written in.
type Form int

const (
	// FormNormal separates items with + and - and sides with =.
	FormNormal Form = iota
	// FormAutoArrange separates items with ; and leaves the side of each
	// item to the balancer.
	FormAutoArrange
)

func (f Form) String() string {
	if f == FormAutoArrange {
		return "auto"
	}
	return "normal"
}

// Status is the optional physical state suffix of a molecule.
type Status int

const (
	StatusNone Status = iota
	StatusGas
	StatusAqueous
	StatusLiquid
	StatusSolid
)

func (s Status) String() string {
	switch s {
	case StatusGas:
		return "g"
	case StatusAqueous:
		return "aq"
	case StatusLiquid:
		return "l"
	case StatusSolid:
		return "s"
	default:
		return ""
	}
}

// Molecule is the part of an item the balancer never looks at.
type Molecule struct {
	// Formula is the source text of the molecule without its leading
	// coefficient, state suffix included.
	Formula string
	Hydrate bool
	Status  Status
}

// Item is one molecule of an equation.
type Item struct {
	Operator    Operator
	Coefficient value.Value
	Atoms       AtomDict
	Molecule    Molecule
}

// Equation is an ordered chemical equation. Column i of the balance matrix
// is Left[i] for i < len(Left), then Right[i-len(Left)].
type Equation struct {
	Form  Form
	Left  []*Item
	Right []*Item
}

// Len returns the number of items on both sides.
func (e *Equation) Len() int {
	return len(e.Left) + len(e.Right)
}

// Items returns the items in column order.
func (e *Equation) Items() []*Item {
	out := make([]*Item, 0, e.Len())
	out = append(out, e.Left...)
	return append(out, e.Right...)
}

// Coefficients returns the current coefficients in column order.
func (e *Equation) Coefficients() []value.Value {
	items := e.Items()
	out := make([]value.Value, len(items))
	for i, it := range items {
		out[i] = it.Coefficient
	}
	return out
}
