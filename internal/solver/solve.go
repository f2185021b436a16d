package solver

import (
	"errors"
	"fmt"

	"github.com/bce-toolkit/bce/internal/matrix"
	"github.com/bce-toolkit/bce/internal/value"
)

var (
	ErrEmptyHeader    = errors.New("solver: symbol header is empty")
	ErrNegativeIndex  = errors.New("solver: negative symbol index")
	ErrShapeMismatch  = errors.New("solver: answer count does not match matrix columns")
	ErrUnresolvedCell = errors.New("solver: answer referenced before it was resolved")
)

// ResumePoint tells the solver what to do when a frame is popped.
type ResumePoint int

const (
	// Enter starts elimination at the frame's (row, col).
	Enter ResumePoint = iota
	// ResumeBackSubstitution resolves the frame's column from the answers
	// of every later column.
	ResumeBackSubstitution
)

func (r ResumePoint) String() string {
	switch r {
	case Enter:
		return "enter"
	case ResumeBackSubstitution:
		return "resume"
	default:
		return fmt.Sprintf("ResumePoint(%d)", int(r))
	}
}

// Frame is one entry of the solver's work stack.
type Frame struct {
	Row    int
	Col    int
	Resume ResumePoint
}

// SolvedEquation is the parametric solution of a homogeneous system.
//
// Answers holds one value per unknown column. Each answer is affine in the
// free parameters SymbolFor(0..FreeCount-1, header).
type SolvedEquation struct {
	Answers   []value.Value
	FreeCount int
}

// Option configures Solve.
type Option func(*config)

type config struct {
	header  string
	onFrame func(Frame)
}

// WithSymbolHeader sets the free-parameter prefix (default "X").
func WithSymbolHeader(header string) Option {
	return func(c *config) { c.header = header }
}

// WithFrameHook registers fn to observe every popped frame in order.
func WithFrameHook(fn func(Frame)) Option {
	return func(c *config) { c.onFrame = fn }
}

// Solve eliminates m in place and returns its parametric solution.
//
// m is an augmented matrix: every column but the last is an unknown. Its
// contents are destroyed; callers that need the original system for
// validation must Clone it first.
//
// Elimination runs on an explicit stack of frames so that the depth of the
// system never touches the goroutine stack. Frames are pushed in the order
// (row, col, ResumeBackSubstitution) then (row+1, col+1, Enter), which makes
// every later column resolved before an earlier one resumes.
func Solve(m *matrix.Dense, opts ...Option) (*SolvedEquation, error) {
	cfg := config{header: DefaultSymbolHeader}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.header == "" {
		return nil, ErrEmptyHeader
	}

	s := &state{
		m:        m,
		rows:     m.Rows(),
		cols:     m.Cols(),
		header:   cfg.header,
		answers:  make([]value.Value, m.Cols()-1),
		resolved: make([]bool, m.Cols()-1),
	}
	if s.cols < 2 {
		return &SolvedEquation{Answers: s.answers}, nil
	}

	stack := []Frame{{Row: 0, Col: 0, Resume: Enter}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cfg.onFrame != nil {
			cfg.onFrame(f)
		}

		var next []Frame
		var err error
		switch f.Resume {
		case Enter:
			next, err = s.enter(f)
		case ResumeBackSubstitution:
			err = s.backSubstitute(f)
		}
		if err != nil {
			return nil, err
		}
		stack = append(stack, next...)
	}

	return &SolvedEquation{Answers: s.answers, FreeCount: s.free}, nil
}

type state struct {
	m        *matrix.Dense
	rows     int
	cols     int
	header   string
	answers  []value.Value
	resolved []bool
	free     int
}

func (s *state) newSymbol(col int) error {
	name, err := SymbolFor(s.free, s.header)
	if err != nil {
		return err
	}
	s.free++
	s.answers[col] = value.Symbol(name)
	s.resolved[col] = true
	return nil
}

func (s *state) resolve(col int, v value.Value) {
	s.answers[col] = v.Simplify()
	s.resolved[col] = true
}

// enter handles an Enter frame and returns the frames to push, in push
// order.
func (s *state) enter(f Frame) ([]Frame, error) {
	row, col := f.Row, f.Col

	pivotRow := -1
	for r := row; r < s.rows; r++ {
		off, err := s.m.Offset(r, col)
		if err != nil {
			return nil, err
		}
		cell, _ := s.m.AtOffset(off)
		cell = cell.Simplify()
		if err := s.m.SetOffset(off, cell); err != nil {
			return nil, err
		}
		if pivotRow < 0 && !cell.IsZero() {
			pivotRow = r
		}
	}

	if pivotRow < 0 {
		// The column has no pivot left: its unknown is free.
		if err := s.newSymbol(col); err != nil {
			return nil, err
		}
		if col+2 != s.cols {
			return []Frame{{Row: row, Col: col + 1, Resume: Enter}}, nil
		}
		return nil, nil
	}

	if pivotRow != row {
		if err := s.m.ExchangeRows(pivotRow, row); err != nil {
			return nil, err
		}
	}

	cur, err := s.m.Row(row)
	if err != nil {
		return nil, err
	}
	pivot := cur[col]
	aug := s.cols - 1

	if col+2 == s.cols {
		s.resolve(col, cur[aug].Div(pivot))
		return nil, nil
	}

	if row+1 == s.rows {
		for j := col + 1; j < aug; j++ {
			if err := s.newSymbol(j); err != nil {
				return nil, err
			}
		}
		tmp, err := s.substituted(cur, col)
		if err != nil {
			return nil, err
		}
		s.resolve(col, tmp.Div(pivot))
		return nil, nil
	}

	cur[col] = value.Int(1)
	for j := col + 1; j < s.cols; j++ {
		if !cur[j].IsZero() {
			cur[j] = cur[j].Div(pivot).Simplify()
		}
	}

	for r := row + 1; r < s.rows; r++ {
		below, err := s.m.Row(r)
		if err != nil {
			return nil, err
		}
		lead := below[col]
		if lead.IsZero() {
			continue
		}
		below[col] = value.Value{}
		for j := col + 1; j < s.cols; j++ {
			below[j] = below[j].Div(lead).Sub(cur[j]).Simplify()
		}
	}

	return []Frame{
		{Row: row, Col: col, Resume: ResumeBackSubstitution},
		{Row: row + 1, Col: col + 1, Resume: Enter},
	}, nil
}

func (s *state) backSubstitute(f Frame) error {
	cur, err := s.m.Row(f.Row)
	if err != nil {
		return err
	}
	tmp, err := s.substituted(cur, f.Col)
	if err != nil {
		return err
	}
	s.resolve(f.Col, tmp.Div(cur[f.Col]))
	return nil
}

// substituted returns aug − Σ_{j>col} row[j]·answers[j].
func (s *state) substituted(row []value.Value, col int) (value.Value, error) {
	aug := s.cols - 1
	tmp := row[aug]
	for j := col + 1; j < aug; j++ {
		if row[j].IsZero() {
			continue
		}
		if !s.resolved[j] {
			return value.Value{}, fmt.Errorf("column %d: %w", j, ErrUnresolvedCell)
		}
		tmp = tmp.Sub(row[j].Mul(s.answers[j]))
	}
	return tmp.Simplify(), nil
}
