// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Structural operations that change shape: concatenation, diagonal
//     build/extract, column removal.
//
// Policy:
//   - Concatenation zero-pads the shorter non-concatenated axis. This is a
//     convenience of these helpers only; arithmetic kernels never pad.
//   - Every result is a fresh Dense; inputs are never mutated.

package matrix

import "fmt"

const (
	opConcatRight   = "ConcatRight"
	opConcatBelow   = "ConcatBelow"
	opDiag          = "Diag"
	opRemoveColumns = "RemoveColumns"
	opHeadRows      = "HeadRows"
)

// ConcatRight places b to the right of a: result is max(ra,rb) × (ca+cb).
// MAIN DESCRIPTION:
//   - Scalars act as 1×1 matrices.
//   - Rows missing from the shorter operand are zero.
//
// Errors:
//   - ErrNilMatrix when an operand holds a nil matrix.
//
// Complexity:
//   - Time O(r*(ca+cb)), Space O(r*(ca+cb)).
func ConcatRight(a, b Operand) (*Dense, error) {
	am, bm := a.asMatrix(), b.asMatrix()
	if err := ValidateNotNil(am); err != nil {
		return nil, matrixErrorf(opConcatRight, err)
	}
	if err := ValidateNotNil(bm); err != nil {
		return nil, matrixErrorf(opConcatRight, err)
	}
	rows := max(am.Rows(), bm.Rows())
	out, err := NewDense(rows, am.Cols()+bm.Cols())
	if err != nil {
		return nil, matrixErrorf(opConcatRight, err)
	}
	if err = blit(out, am, 0, 0); err != nil {
		return nil, matrixErrorf(opConcatRight, err)
	}
	if err = blit(out, bm, 0, am.Cols()); err != nil {
		return nil, matrixErrorf(opConcatRight, err)
	}

	return out, nil
}

// ConcatBelow places b under a: result is (ra+rb) × max(ca,cb).
// Scalars act as 1×1 matrices; missing columns are zero.
func ConcatBelow(a, b Operand) (*Dense, error) {
	am, bm := a.asMatrix(), b.asMatrix()
	if err := ValidateNotNil(am); err != nil {
		return nil, matrixErrorf(opConcatBelow, err)
	}
	if err := ValidateNotNil(bm); err != nil {
		return nil, matrixErrorf(opConcatBelow, err)
	}
	cols := max(am.Cols(), bm.Cols())
	out, err := NewDense(am.Rows()+bm.Rows(), cols)
	if err != nil {
		return nil, matrixErrorf(opConcatBelow, err)
	}
	if err = blit(out, am, 0, 0); err != nil {
		return nil, matrixErrorf(opConcatBelow, err)
	}
	if err = blit(out, bm, am.Rows(), 0); err != nil {
		return nil, matrixErrorf(opConcatBelow, err)
	}

	return out, nil
}

// blit copies src into dst with its top-left corner at (r0, c0).
// The caller guarantees the window fits.
func blit(dst *Dense, src Matrix, r0, c0 int) error {
	r, c := src.Rows(), src.Cols()
	if s, ok := src.(*Dense); ok {
		for i := 0; i < r; i++ {
			copy(dst.data[(r0+i)*dst.c+c0:(r0+i)*dst.c+c0+c], s.data[i*c:(i+1)*c])
		}
		return nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := src.At(i, j)
			if err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			dst.data[(r0+i)*dst.c+c0+j] = v
		}
	}

	return nil
}

// Diag is dual-mode, selected by the shape of m:
//   - m is a vector (1×n or n×1): returns the n×n matrix with m on the main diagonal.
//   - otherwise: returns the main diagonal of m as a min(r,c)×1 column.
//
// A 1×1 input is a vector and yields itself as a 1×1 matrix.
// Complexity: O(n²) for the build mode, O(min(r,c)) for extraction.
func Diag(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	r, c := m.Rows(), m.Cols()

	// Build mode.
	if r == 1 || c == 1 {
		n := r * c
		vals, err := vectorValues(m, n)
		if err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
		out, err := NewDense(n, n)
		if err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
		for i, v := range vals {
			out.data[i*n+i] = v
		}
		return out, nil
	}

	// Extraction mode.
	n := min(r, c)
	out, err := NewDense(n, 1)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	var v float64
	for i := 0; i < n; i++ {
		if v, err = m.At(i, i); err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
		out.data[i] = v
	}

	return out, nil
}

// RemoveColumns returns a copy of m without the listed zero-based columns.
// Remaining columns keep their relative order; duplicate indices are ignored.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (any index outside [0, Cols())).
//
// Complexity:
//   - Time O(r*c + k) for k indices.
func RemoveColumns(m Matrix, idx ...int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRemoveColumns, err)
	}
	r, c := m.Rows(), m.Cols()
	drop := make([]bool, c)
	for _, j := range idx {
		if j < 0 || j >= c {
			return nil, matrixErrorf(opRemoveColumns, fmt.Errorf("column %d: %w", j, ErrOutOfRange))
		}
		drop[j] = true
	}
	keep := make([]int, 0, c)
	for j := 0; j < c; j++ {
		if !drop[j] {
			keep = append(keep, j)
		}
	}

	out, err := NewDense(r, len(keep))
	if err != nil {
		return nil, matrixErrorf(opRemoveColumns, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for jj, j := range keep {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opRemoveColumns, err)
			}
			out.data[i*out.c+jj] = v
		}
	}

	return out, nil
}

// HeadRows returns a copy of the first n rows of m.
// Errors: ErrNilMatrix, ErrOutOfRange when n is outside [0, Rows()].
func HeadRows(m Matrix, n int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opHeadRows, err)
	}
	if n < 0 || n > m.Rows() {
		return nil, matrixErrorf(opHeadRows, fmt.Errorf("%d of %d rows: %w", n, m.Rows(), ErrOutOfRange))
	}
	out, err := NewDense(n, m.Cols())
	if err != nil {
		return nil, matrixErrorf(opHeadRows, err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opHeadRows, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}
