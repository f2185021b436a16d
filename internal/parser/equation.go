package parser

import (
	"github.com/bce-toolkit/bce/internal/chem"
)

type tokenKind int

const (
	tokMolecule tokenKind = iota
	tokPlus
	tokMinus
	tokSeparator
	tokEqual
	tokEnd
)

type token struct {
	kind tokenKind
	text []rune
	pos  int
}

// tokenize splits a normalized expression at top-level operators. Operator
// characters nested in (), [], {} or <> belong to the molecule.
func tokenize(src []rune) []token {
	var out []token
	depth := 0
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, token{kind: tokMolecule, text: src[start:end], pos: start})
			start = -1
		}
	}
	for i, r := range src {
		if depth == 0 {
			kind := tokEnd
			switch r {
			case '+':
				kind = tokPlus
			case '-':
				kind = tokMinus
			case ';':
				kind = tokSeparator
			case '=':
				kind = tokEqual
			}
			if kind != tokEnd {
				flush(i)
				out = append(out, token{kind: kind, pos: i})
				continue
			}
		}
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(src))
	return append(out, token{kind: tokEnd, pos: len(src)})
}

type formState int

const (
	formUnknown formState = iota
	formNormal
	formAuto
)

type equationParser struct {
	toks  []token
	cur   int
	form  formState
	right bool
	eq    *chem.Equation
}

// Parse parses an equation in normal form ("A+B=C-D") or auto-arranging
// form ("A;B;C"). The expression is normalized first.
func Parse(expr string) (*chem.Equation, error) {
	src := []rune(Normalize(expr))
	p := &equationParser{toks: tokenize(src), eq: &chem.Equation{}}
	if err := p.parse(); err != nil {
		return nil, err
	}

	switch {
	case p.eq.Len() == 1:
		return nil, newError(ErrCodeOnlyOneMolecule, 0)
	case p.form == formNormal && !p.right:
		return nil, newError(ErrCodeNoEqualSign, len(src))
	}
	if p.form == formAuto {
		p.eq.Form = chem.FormAutoArrange
	}
	return p.eq, nil
}

func (p *equationParser) registerForm(f formState, pos int) error {
	if p.form == formUnknown {
		p.form = f
		return nil
	}
	if p.form != f {
		return newError(ErrCodeMixedForm, pos)
	}
	return nil
}

func (p *equationParser) parse() error {
	// Start of a side: an optional leading minus.
	op := chem.Plus
	if t := p.toks[p.cur]; t.kind == tokMinus {
		if err := p.registerForm(formNormal, t.pos); err != nil {
			return err
		}
		op = chem.Minus
		p.cur++
	}

	for {
		if err := p.readMolecule(op); err != nil {
			return err
		}

		t := p.toks[p.cur]
		switch t.kind {
		case tokEnd:
			return nil
		case tokPlus, tokMinus:
			if err := p.registerForm(formNormal, t.pos); err != nil {
				return err
			}
			op = chem.Plus
			if t.kind == tokMinus {
				op = chem.Minus
			}
			p.cur++
		case tokSeparator:
			if err := p.registerForm(formAuto, t.pos); err != nil {
				return err
			}
			op = chem.Plus
			p.cur++
		case tokEqual:
			if err := p.registerForm(formNormal, t.pos); err != nil {
				return err
			}
			if p.right {
				return newError(ErrCodeDuplicatedEqualSign, t.pos)
			}
			p.right = true
			p.cur++
			op = chem.Plus
			if n := p.toks[p.cur]; n.kind == tokMinus {
				op = chem.Minus
				p.cur++
			}
		default:
			// Two molecules are never adjacent after tokenize.
			return newError(ErrCodeUnexpectedCharacter, t.pos, string(t.text))
		}
	}
}

func (p *equationParser) readMolecule(op chem.Operator) error {
	t := p.toks[p.cur]
	if t.kind != tokMolecule {
		if t.kind == tokEnd && t.pos == 0 {
			return newError(ErrCodeEmptyExpression, 0)
		}
		return newError(ErrCodeNoContent, t.pos)
	}

	coeff, atoms, mol, err := parseMolecule(t.text, t.pos)
	if err != nil {
		return err
	}
	it := &chem.Item{Operator: op, Coefficient: coeff, Atoms: atoms, Molecule: mol}
	if p.right {
		p.eq.Right = append(p.eq.Right, it)
	} else {
		p.eq.Left = append(p.eq.Left, it)
	}
	p.cur++
	return nil
}
