// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row/Column return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Value semantics by default (Row, Column, Clone copy); RowView is the one
//     explicit aliasing accessor.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - Use RowView only inside a single owner; never hand the slice across an ownership boundary.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Row/Column: O(copy); RowView: O(1).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"        // method tag used in error wrappers
	ctxSet       = "Set"       // method tag used in error wrappers
	ctxRow       = "Row"       // method tag for Row/RowView/SetRow
	ctxColumn    = "Column"    // method tag for Column/SetColumn
	ctxNewFrom   = "NewDenseFrom"
	ctxNewFilled = "NewFilled"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// MAIN DESCRIPTION:
//   - Attach method context and coordinates to a sentinel error for diagnostics.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Inputs:
//   - method: context tag (ctxAt/ctxSet/...)
//   - row, col: coordinates (-1 when the axis does not apply)
//   - err: sentinel (e.g., ErrOutOfRange)
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil) // *Dense implements our public Matrix interface
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with shape validation.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - Zero-sized shapes are legal: an incidence matrix of an edgeless graph is n×0,
//     and its transpose is 0×n.
//
// Errors:
//   - ErrInvalidDimensions (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom builds a Dense from a 2D literal, copying the values.
// All rows must have the same length; a ragged literal yields ErrBadShape.
// An empty literal yields a 0×0 matrix.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	r := len(rows)
	if r == 0 {
		return &Dense{}, nil
	}
	c := len(rows[0])
	d, err := NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNewFrom, err)
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxNewFrom, i, len(row), c, ErrBadShape)
		}
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// NewFilled creates an r×c matrix with every element equal to v.
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNewFilled, err)
	}
	for k := range d.data {
		d.data[k] = v
	}

	return d, nil
}

// NewRowVector wraps a copy of v as a 1×len(v) matrix.
func NewRowVector(v []float64) *Dense {
	cp := make([]float64, len(v))
	copy(cp, v)

	return &Dense{r: 1, c: len(v), data: cp}
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	m.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy (new buffer).
func (m *Dense) Clone() Matrix { return m.copyDense() }

// copyDense is Clone with the concrete type preserved.
func (m *Dense) copyDense() *Dense {
	cp := make([]float64, len(m.data)) // allocate same length
	copy(cp, m.data)                   // deep copy

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Row returns row i as an independent 1×Cols() matrix.
// MAIN DESCRIPTION:
//   - Copying accessor; mutations of the result never reach m.
//
// Errors:
//   - ErrOutOfRange when i is not a valid row.
//
// Complexity:
//   - Time O(c), Space O(c).
func (m *Dense) Row(i int) (*Dense, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, -1, ErrOutOfRange)
	}

	return NewRowVector(m.data[i*m.c : (i+1)*m.c]), nil
}

// Column returns column j as an independent Rows()×1 matrix.
// Errors: ErrOutOfRange when j is not a valid column.
// Complexity: O(r).
func (m *Dense) Column(j int) (*Dense, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxColumn, -1, j, ErrOutOfRange)
	}
	out := &Dense{r: m.r, c: 1, data: make([]float64, m.r)}
	for i := 0; i < m.r; i++ {
		out.data[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// RowView returns row i as a slice aliasing m's storage.
// This is the shallow-reference variant of Row: writes through the slice
// mutate m, and the slice is valid only while m is not replaced.
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, -1, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// SetRow overwrites row i from a vector operand (1×Cols() or Cols()×1) or
// broadcasts a scalar operand to every column.
// MAIN DESCRIPTION:
//   - Vector orientation is not significant; only the element count must match.
//
// Errors:
//   - ErrOutOfRange (bad i), ErrNilMatrix, ErrNotVector, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) SetRow(i int, v Operand) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxRow, i, -1, ErrOutOfRange)
	}
	row := m.data[i*m.c : (i+1)*m.c]
	if v.IsScalar() {
		for j := range row {
			row[j] = v.scalar
		}
		return nil
	}
	vals, err := vectorValues(v.m, m.c)
	if err != nil {
		return denseErrorf(ctxRow, i, -1, err)
	}
	copy(row, vals)

	return nil
}

// SetColumn overwrites column j from a vector operand or broadcasts a scalar.
// Errors: ErrOutOfRange (bad j), ErrNilMatrix, ErrNotVector, ErrDimensionMismatch.
func (m *Dense) SetColumn(j int, v Operand) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxColumn, -1, j, ErrOutOfRange)
	}
	if v.IsScalar() {
		for i := 0; i < m.r; i++ {
			m.data[i*m.c+j] = v.scalar
		}
		return nil
	}
	vals, err := vectorValues(v.m, m.r)
	if err != nil {
		return denseErrorf(ctxColumn, -1, j, err)
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] = vals[i]
	}

	return nil
}

// Do calls fn for every element in row-major order. The scan stops at the
// first error returned by fn, and that error is returned unwrapped.
func (m *Dense) Do(fn func(i, j int, v float64) error) error {
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			if err := fn(i, j, m.data[base+j]); err != nil {
				return err
			}
		}
	}

	return nil
}

// String provides a readable row-wise dump for diagnostics.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}

// vectorValues flattens a 1×n or n×1 matrix into a slice of length want.
func vectorValues(v Matrix, want int) ([]float64, error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, err
	}
	if err := ValidateVector(v); err != nil {
		return nil, err
	}
	n := v.Rows() * v.Cols()
	if n != want {
		return nil, fmt.Errorf("vector length %d, want %d: %w", n, want, ErrDimensionMismatch)
	}
	if d, ok := v.(*Dense); ok {
		return d.data, nil
	}
	out := make([]float64, n)
	var (
		x   float64
		err error
	)
	for k := 0; k < n; k++ {
		if v.Rows() == 1 {
			x, err = v.At(0, k)
		} else {
			x, err = v.At(k, 0)
		}
		if err != nil {
			return nil, err
		}
		out[k] = x
	}

	return out, nil
}

// asDense returns m as *Dense, copying through At when m has another concrete type.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}
