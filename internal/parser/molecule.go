package parser

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/value"
)

var statusSuffixes = []struct {
	text   string
	status chem.Status
}{
	{"(g)", chem.StatusGas},
	{"(aq)", chem.StatusAqueous},
	{"(l)", chem.StatusLiquid},
	{"(s)", chem.StatusSolid},
}

var closerOf = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// ParseMolecule parses a single molecule such as "2CuSO4.5H2O" or
// "SO4<2e->(aq)" and returns its leading coefficient (1 when absent), its
// atom dictionary and its display data.
func ParseMolecule(text string) (value.Value, chem.AtomDict, chem.Molecule, error) {
	return parseMolecule([]rune(Normalize(text)), 0)
}

type moleculeParser struct {
	src  []rune
	base int
	pos  int
	end  int
}

func parseMolecule(src []rune, base int) (value.Value, chem.AtomDict, chem.Molecule, error) {
	p := &moleculeParser{src: src, base: base, end: len(src)}
	var mol chem.Molecule

	coeff := value.Int(1)
	if n, ok := p.readInt(); ok {
		coeff = value.FromInt(n)
	}
	mol.Formula = string(src[p.pos:])

	for _, s := range statusSuffixes {
		if strings.HasSuffix(mol.Formula, s.text) {
			mol.Status = s.status
			p.end -= len([]rune(s.text))
			break
		}
	}

	charge, err := p.readCharge()
	if err != nil {
		return value.Value{}, chem.AtomDict{}, chem.Molecule{}, err
	}

	if p.pos == p.end && charge.IsZero() {
		return value.Value{}, chem.AtomDict{}, chem.Molecule{}, newError(ErrCodeEmptyMolecule, p.base, string(src))
	}

	var atoms chem.AtomDict
	if !charge.IsZero() {
		atoms.Add(chem.ElectronSymbol, charge)
	}

	segments := 0
	if p.pos < p.end {
		start := p.pos
		seg, n, err := p.readHydrate(0)
		if err != nil {
			return value.Value{}, chem.AtomDict{}, chem.Molecule{}, err
		}
		if seg.Len() == 0 {
			return value.Value{}, chem.AtomDict{}, chem.Molecule{}, newError(ErrCodeEmptyGroup, p.base+start, string(src))
		}
		atoms.Merge(seg, value.Int(1))
		segments = n
	}
	mol.Hydrate = segments > 1

	return coeff, atoms, mol, nil
}

// readInt consumes a run of decimal digits.
func (p *moleculeParser) readInt() (*big.Int, bool) {
	start := p.pos
	for p.pos < p.end && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return nil, false
	}
	n, _ := new(big.Int).SetString(string(p.src[start:p.pos]), 10)
	return n, true
}

// readCharge consumes a trailing "<[n]e+>" or "<[n]e->" descriptor by moving
// p.end before it. It returns 0 when there is none.
func (p *moleculeParser) readCharge() (value.Value, error) {
	if p.end == p.pos || p.src[p.end-1] != '>' {
		return value.Value{}, nil
	}
	open := -1
	for i := p.end - 2; i >= p.pos; i-- {
		if p.src[i] == '<' {
			open = i
			break
		}
	}
	if open < 0 {
		return value.Value{}, newError(ErrCodeUnmatchedParenthesis, p.base+p.end-1, ">")
	}

	inner := p.src[open+1 : p.end-1]
	at := p.base + open
	n := big.NewInt(1)
	i := 0
	for i < len(inner) && inner[i] >= '0' && inner[i] <= '9' {
		i++
	}
	if i > 0 {
		n, _ = new(big.Int).SetString(string(inner[:i]), 10)
	}
	if len(inner)-i != 2 || inner[i] != 'e' {
		return value.Value{}, newError(ErrCodeInvalidElectron, at, string(inner))
	}
	switch inner[i+1] {
	case '+':
	case '-':
		n.Neg(n)
	default:
		return value.Value{}, newError(ErrCodeInvalidElectron, at, string(inner))
	}

	p.end = open
	return value.FromInt(n), nil
}

// readHydrate reads "."-separated segments up to closer (0 for the end of
// the molecule) and returns their merged atoms and the segment count.
// Every segment after the first may start with a multiplier, as in
// "CuSO4.5H2O". A lone empty segment is returned as an empty dictionary
// for the caller to report.
func (p *moleculeParser) readHydrate(closer rune) (chem.AtomDict, int, error) {
	var d chem.AtomDict
	segments := 0
	for {
		k := value.Int(1)
		if segments > 0 {
			if n, ok := p.readInt(); ok {
				k = value.FromInt(n)
			}
		}
		start := p.pos
		seg, err := p.readSequence(closer)
		if err != nil {
			return chem.AtomDict{}, 0, err
		}
		dot := p.pos < p.end && p.src[p.pos] == '.'
		if seg.Len() == 0 && (segments > 0 || dot) {
			return chem.AtomDict{}, 0, newError(ErrCodeEmptyGroup, p.base+start, string(p.src))
		}
		d.Merge(seg, k)
		segments++
		if !dot {
			return d, segments, nil
		}
		p.pos++
	}
}

// readSequence reads elements and bracketed groups until closer (0 for the
// end of the molecule) or a hydrate dot.
func (p *moleculeParser) readSequence(closer rune) (chem.AtomDict, error) {
	var d chem.AtomDict
	for p.pos < p.end {
		r := p.src[p.pos]
		switch {
		case r == closer:
			return d, nil
		case r == '.':
			return d, nil
		case unicode.IsUpper(r) && r < unicode.MaxASCII:
			start := p.pos
			p.pos++
			for p.pos < p.end && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
				p.pos++
			}
			sym := string(p.src[start:p.pos])
			count := value.Int(1)
			if n, ok := p.readInt(); ok {
				count = value.FromInt(n)
			}
			d.Add(sym, count)
		case closerOf[r] != 0:
			open := p.pos
			p.pos++
			inner, _, err := p.readHydrate(closerOf[r])
			if err != nil {
				return chem.AtomDict{}, err
			}
			if p.pos >= p.end {
				return chem.AtomDict{}, newError(ErrCodeUnmatchedParenthesis, p.base+open, string(r))
			}
			p.pos++
			if inner.Len() == 0 {
				return chem.AtomDict{}, newError(ErrCodeEmptyGroup, p.base+open, string(p.src[open:p.pos]))
			}
			count := value.Int(1)
			if n, ok := p.readInt(); ok {
				count = value.FromInt(n)
			}
			d.Merge(inner, count)
		case r == ')' || r == ']' || r == '}':
			return chem.AtomDict{}, newError(ErrCodeUnmatchedParenthesis, p.base+p.pos, string(r))
		default:
			return chem.AtomDict{}, newError(ErrCodeUnexpectedCharacter, p.base+p.pos, string(r))
		}
	}
	if closer != 0 {
		return chem.AtomDict{}, newError(ErrCodeUnmatchedParenthesis, p.base+p.pos, string(closer))
	}
	return d, nil
}
