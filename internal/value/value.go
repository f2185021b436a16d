package value

import (
	"errors"
	"math/big"
	"sort"
	"strings"
)

// Sentinel errors raised (as panics) by operations that would leave the
// affine domain. The solver never triggers them on well-formed input.
var (
	ErrNonlinear    = errors.New("value: product of two non-constant values")
	ErrDivideByZero = errors.New("value: division by zero")
	ErrNotConstant  = errors.New("value: divisor is not a constant")
)

type term struct {
	sym   string
	coeff *big.Rat
}

// Value is an exact affine expression c + Σ k_i·s_i over the rationals.
//
// A Value with no symbolic terms is a constant. The zero Value is the
// constant 0. Values are immutable: every operation returns a new Value
// and never aliases the big.Rat storage of its operands.
type Value struct {
	c     *big.Rat
	terms []term // sorted by sym, coefficients never zero
}

// Int returns the constant n.
func Int(n int64) Value {
	return Value{c: new(big.Rat).SetInt64(n)}
}

// Frac returns the constant p/q. It panics when q is zero.
func Frac(p, q int64) Value {
	if q == 0 {
		panic(ErrDivideByZero)
	}
	return Value{c: big.NewRat(p, q)}
}

// FromRat returns the constant r. The argument is copied.
func FromRat(r *big.Rat) Value {
	return Value{c: new(big.Rat).Set(r)}
}

// FromInt returns the constant n. The argument is copied.
func FromInt(n *big.Int) Value {
	return Value{c: new(big.Rat).SetInt(n)}
}

// Symbol returns the value 1·name.
func Symbol(name string) Value {
	return Value{terms: []term{{sym: name, coeff: big.NewRat(1, 1)}}}
}

func (v Value) constant() *big.Rat {
	if v.c == nil {
		return new(big.Rat)
	}
	return v.c
}

// IsConstant reports whether v has no symbolic terms.
func (v Value) IsConstant() bool {
	return len(v.terms) == 0
}

// IsZero reports whether v is the constant 0.
func (v Value) IsZero() bool {
	return v.IsConstant() && v.constant().Sign() == 0
}

// IsNegative reports whether v is a negative constant. Symbolic values are
// never negative since their sign is undetermined.
func (v Value) IsNegative() bool {
	return v.IsConstant() && v.constant().Sign() < 0
}

// IsInteger reports whether v is a constant integer.
func (v Value) IsInteger() bool {
	return v.IsConstant() && v.constant().IsInt()
}

// IsSymbol reports whether v is exactly one symbol with coefficient 1.
func (v Value) IsSymbol() bool {
	return len(v.terms) == 1 && v.constant().Sign() == 0 && v.terms[0].coeff.Cmp(big.NewRat(1, 1)) == 0
}

// Rat returns the rational value of a constant. ok is false for symbolic
// values.
func (v Value) Rat() (r *big.Rat, ok bool) {
	if !v.IsConstant() {
		return nil, false
	}
	return new(big.Rat).Set(v.constant()), true
}

// Int returns the integer value of an integral constant.
func (v Value) Int() (n *big.Int, ok bool) {
	if !v.IsInteger() {
		return nil, false
	}
	return new(big.Int).Set(v.constant().Num()), true
}

// Neg returns -v.
func (v Value) Neg() Value {
	return v.scale(big.NewRat(-1, 1))
}

// Add returns v + w.
func (v Value) Add(w Value) Value {
	out := Value{c: new(big.Rat).Add(v.constant(), w.constant())}
	i, j := 0, 0
	for i < len(v.terms) || j < len(w.terms) {
		switch {
		case j == len(w.terms) || (i < len(v.terms) && v.terms[i].sym < w.terms[j].sym):
			out.terms = append(out.terms, term{v.terms[i].sym, new(big.Rat).Set(v.terms[i].coeff)})
			i++
		case i == len(v.terms) || w.terms[j].sym < v.terms[i].sym:
			out.terms = append(out.terms, term{w.terms[j].sym, new(big.Rat).Set(w.terms[j].coeff)})
			j++
		default:
			k := new(big.Rat).Add(v.terms[i].coeff, w.terms[j].coeff)
			if k.Sign() != 0 {
				out.terms = append(out.terms, term{v.terms[i].sym, k})
			}
			i++
			j++
		}
	}
	return out
}

// Sub returns v - w.
func (v Value) Sub(w Value) Value {
	return v.Add(w.Neg())
}

// Mul returns v·w. At least one operand must be constant; otherwise Mul
// panics with ErrNonlinear.
func (v Value) Mul(w Value) Value {
	switch {
	case w.IsConstant():
		return v.scale(w.constant())
	case v.IsConstant():
		return w.scale(v.constant())
	default:
		panic(ErrNonlinear)
	}
}

// Div returns v/w. w must be a non-zero constant.
func (v Value) Div(w Value) Value {
	if !w.IsConstant() {
		panic(ErrNotConstant)
	}
	d := w.constant()
	if d.Sign() == 0 {
		panic(ErrDivideByZero)
	}
	return v.scale(new(big.Rat).Inv(d))
}

func (v Value) scale(k *big.Rat) Value {
	out := Value{c: new(big.Rat).Mul(v.constant(), k)}
	if k.Sign() == 0 {
		return out
	}
	out.terms = make([]term, 0, len(v.terms))
	for _, t := range v.terms {
		out.terms = append(out.terms, term{t.sym, new(big.Rat).Mul(t.coeff, k)})
	}
	return out
}

// Simplify returns the canonical form of v: terms sorted by symbol, equal
// symbols combined and zero coefficients removed.
func (v Value) Simplify() Value {
	acc := make(map[string]*big.Rat, len(v.terms))
	for _, t := range v.terms {
		if k, ok := acc[t.sym]; ok {
			k.Add(k, t.coeff)
			continue
		}
		acc[t.sym] = new(big.Rat).Set(t.coeff)
	}
	out := Value{c: new(big.Rat).Set(v.constant())}
	for sym, k := range acc {
		if k.Sign() != 0 {
			out.terms = append(out.terms, term{sym, k})
		}
	}
	sort.Slice(out.terms, func(i, j int) bool { return out.terms[i].sym < out.terms[j].sym })
	return out
}

// FreeSymbols returns the symbols v depends on, sorted.
func (v Value) FreeSymbols() []string {
	out := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		out = append(out, t.sym)
	}
	return out
}

// Coefficient returns the coefficient of sym in v (0 when absent).
func (v Value) Coefficient(sym string) Value {
	for _, t := range v.terms {
		if t.sym == sym {
			return FromRat(t.coeff)
		}
	}
	return Value{}
}

// Substitute replaces every symbol present in repl with its value.
func (v Value) Substitute(repl map[string]Value) Value {
	out := Value{c: new(big.Rat).Set(v.constant())}
	for _, t := range v.terms {
		r, ok := repl[t.sym]
		if !ok {
			r = Symbol(t.sym)
		}
		out = out.Add(r.scale(t.coeff))
	}
	return out
}

// NumerDenom splits v into n/d where d is the least common multiple of the
// denominators of every rational in v and n = v·d.
func (v Value) NumerDenom() (Value, *big.Int) {
	d := new(big.Int).Set(v.constant().Denom())
	for _, t := range v.terms {
		d = LCM(d, t.coeff.Denom())
	}
	return v.scale(new(big.Rat).SetInt(d)), d
}

// Equal reports whether v and w are the same expression.
func (v Value) Equal(w Value) bool {
	return v.Sub(w).IsZero()
}

// String formats v as "k*sym + ... + c", omitting unit coefficients and a
// zero constant. Constants print as big.Rat.RatString does.
func (v Value) String() string {
	if v.IsConstant() {
		return v.constant().RatString()
	}
	var b strings.Builder
	for i, t := range v.terms {
		k := new(big.Rat).Set(t.coeff)
		if i == 0 {
			if k.Sign() < 0 {
				b.WriteString("-")
				k.Neg(k)
			}
		} else if k.Sign() < 0 {
			b.WriteString(" - ")
			k.Neg(k)
		} else {
			b.WriteString(" + ")
		}
		if k.Cmp(big.NewRat(1, 1)) != 0 {
			b.WriteString(k.RatString())
			b.WriteString("*")
		}
		b.WriteString(t.sym)
	}
	if c := v.constant(); c.Sign() != 0 {
		if c.Sign() < 0 {
			b.WriteString(" - ")
			b.WriteString(new(big.Rat).Neg(c).RatString())
		} else {
			b.WriteString(" + ")
			b.WriteString(c.RatString())
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
