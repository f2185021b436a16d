// Package matrix provides the dense row-major matrix the solver eliminates in
// place. Cells hold exact value.Value entries; the last column of a balance
// system is the augmented (right-hand side) column.
package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bce-toolkit/bce/internal/value"
)

var (
	// ErrBadShape is returned for a negative row count or a column count < 1.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row, column or flat offset outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

func denseErrorf(method string, a, b int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, a, b, err)
}

// Dense is a row-major matrix of exact values.
// r is rows, c is columns, and data holds r*c cells in row-major order.
type Dense struct {
	r, c int
	data []value.Value
}

// NewDense creates a rows×cols matrix with every cell 0.
//
// A matrix with zero rows is legal: an equation whose molecules carry no
// atoms produces one, and every unknown becomes a free parameter.
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 1 {
		return nil, denseErrorf("New", rows, cols, ErrBadShape)
	}
	return &Dense{r: rows, c: cols, data: make([]value.Value, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns, augmented column included.
func (m *Dense) Cols() int { return m.c }

// Offset returns the flat offset of (row, col).
func (m *Dense) Offset(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("Offset", row, col, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// RowOffset returns the flat offset of the first cell of row.
func (m *Dense) RowOffset(row int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf("RowOffset", row, 0, ErrOutOfRange)
	}
	return row * m.c, nil
}

// At returns the cell at (row, col).
func (m *Dense) At(row, col int) (value.Value, error) {
	idx, err := m.Offset(row, col)
	if err != nil {
		return value.Value{}, err
	}
	return m.data[idx], nil
}

// Set stores v at (row, col).
func (m *Dense) Set(row, col int, v value.Value) error {
	idx, err := m.Offset(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// AtOffset returns the cell at a flat offset.
func (m *Dense) AtOffset(off int) (value.Value, error) {
	if off < 0 || off >= len(m.data) {
		return value.Value{}, denseErrorf("AtOffset", off, 0, ErrOutOfRange)
	}
	return m.data[off], nil
}

// SetOffset stores v at a flat offset.
func (m *Dense) SetOffset(off int, v value.Value) error {
	if off < 0 || off >= len(m.data) {
		return denseErrorf("SetOffset", off, 0, ErrOutOfRange)
	}
	m.data[off] = v
	return nil
}

// Row returns a view of row. Writes through the slice modify the matrix.
func (m *Dense) Row(row int) ([]value.Value, error) {
	off, err := m.RowOffset(row)
	if err != nil {
		return nil, err
	}
	return m.data[off : off+m.c : off+m.c], nil
}

// ExchangeRows swaps two rows in place. Exchanging a row with itself is a
// no-op.
func (m *Dense) ExchangeRows(r1, r2 int) error {
	a, err := m.Row(r1)
	if err != nil {
		return err
	}
	b, err := m.Row(r2)
	if err != nil {
		return err
	}
	if r1 == r2 {
		return nil
	}
	for j := range a {
		a[j], b[j] = b[j], a[j]
	}
	return nil
}

// Clone returns a deep copy. Values are immutable, so copying the cells is
// enough to make the clone independent of later writes.
func (m *Dense) Clone() *Dense {
	data := make([]value.Value, len(m.data))
	copy(data, m.data)
	return &Dense{r: m.r, c: m.c, data: data}
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.data[i*m.c+j].String())
		}
		b.WriteString("]\n")
	}
	return b.String()
}
