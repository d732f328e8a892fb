// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition, subtraction, multiplication and division, true
// matrix multiplication, transpose, scalar scaling and a pivoted linear solve.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across the package and by the simulator.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Element-wise product (Hadamard) and matrix product (Mul) are two distinct
//     functions; nothing in this package chooses between them implicitly.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// PivotTolerance is the relative threshold under which a pivot is treated as zero:
// |pivot| <= PivotTolerance * max|row of A|, measured on the pivot row.
const PivotTolerance = 1e-13

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opDivElem   = "DivElem"
	opSolve     = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// binaryElementwise computes out[i,j] = fn(a[i,j], b[i,j]) for identically shaped inputs.
// Internal helper for Add/Sub/Hadamard/DivElem to share validation, allocation, and fast-path.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func binaryElementwise(a, b Matrix, opTag string, fn func(x, y float64) float64) (*Dense, error) {
	// Validate shapes match
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data { // deterministic 0..n-1
				res.data[idx] = fn(da.data[idx], db.data[idx])
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int       // loop iterators (deterministic order)
	var av, bv float64 // element temporaries
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = fn(av, bv)
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	return binaryElementwise(a, b, opAdd, func(x, y float64) float64 { return x + y })
}

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b Matrix) (*Dense, error) {
	return binaryElementwise(a, b, opSub, func(x, y float64) float64 { return x - y })
}

// Hadamard computes the element-wise product C[i,j] = A[i,j]*B[i,j].
// It is NOT matrix multiplication; see Mul.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Hadamard(a, b Matrix) (*Dense, error) {
	return binaryElementwise(a, b, opHadamard, func(x, y float64) float64 { return x * y })
}

// DivElem computes the element-wise quotient C[i,j] = A[i,j]/B[i,j].
// Division by zero follows IEEE-754 (±Inf or NaN); shapes must match exactly,
// no broadcasting is performed.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func DivElem(a, b Matrix) (*Dense, error) {
	return binaryElementwise(a, b, opDivElem, func(x, y float64) float64 { return x / y })
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order and zero-skip on A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loops; one allocation for C.
//   - An inner dimension of zero yields an all-zero r×c result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] keeps sparse incidence products cheap.
func Mul(a, b Matrix) (*Dense, error) {
	// Validate inputs via canonical validator
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Allocate result Dense
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int // loop iterators
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// da.data layout: i*aCols + k
			// db.data layout: k*bCols + j
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue // skip zero for performance
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue // skip zero for performance
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv // accumulate product
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Transpose returns a new matrix Mᵀ with shape (c × r).
// Complexity: O(r*c) time and space.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fast-path: direct index swap on flat buffers.
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			base := i * cols
			for j := 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[base+j]
			}
		}
		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha*M as a new matrix.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	out, err := mapElements(m, opScale, func(x float64) float64 { return alpha * x })
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Solve returns X such that A·X = B, for square A (n×n) and B (n×k).
// MAIN DESCRIPTION:
//   - Gaussian elimination with partial (row) pivoting on a private copy of [A | B],
//     followed by back substitution. Inputs are never mutated.
//
// Implementation:
//   - Stage 1: validate A square, B.Rows == n.
//   - Stage 2: for each column p pick the row with the largest |a[i,p]| (first wins on ties),
//     swap, and eliminate below the pivot.
//   - Stage 3: back-substitute every right-hand column.
//
// Behavior highlights:
//   - A pivot with |pivot| <= PivotTolerance*max|row of A| (including a zero
//     pivot) is reported as ErrSingular: the system has no unique solution.
//     The reference is the pivot row's own largest input entry, so badly
//     scaled but regular systems still solve.
//   - Fixed loop orders: results are bit-for-bit reproducible.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular (wrapped with "Solve").
//
// Complexity:
//   - Time O(n³ + n²k), Space O(n(n+k)).
func Solve(a, b Matrix) (*Dense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, k := a.Rows(), b.Cols()
	if b.Rows() != n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}

	// Private working copies.
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	lu := da.copyDense()
	x := db.copyDense()

	// Per-row scale references for the relative pivot test; they travel
	// with their rows through the swaps.
	rowScale := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, v := range lu.data[i*n : (i+1)*n] {
			if av := math.Abs(v); av > rowScale[i] {
				rowScale[i] = av
			}
		}
	}

	var i, j, p, best int
	var factor, pivot, big float64
	for p = 0; p < n; p++ {
		// Partial pivoting: largest magnitude in column p at or below row p.
		best, big = p, math.Abs(lu.data[p*n+p])
		for i = p + 1; i < n; i++ {
			if av := math.Abs(lu.data[i*n+p]); av > big {
				best, big = i, av
			}
		}
		if big == 0 || big <= PivotTolerance*rowScale[best] {
			return nil, matrixErrorf(opSolve, fmt.Errorf("column %d: %w", p, ErrSingular))
		}
		if best != p {
			swapRows(lu, p, best)
			swapRows(x, p, best)
			rowScale[p], rowScale[best] = rowScale[best], rowScale[p]
		}

		// Eliminate below the pivot.
		pivot = lu.data[p*n+p]
		for i = p + 1; i < n; i++ {
			factor = lu.data[i*n+p] / pivot
			if factor == 0 {
				continue
			}
			lu.data[i*n+p] = 0
			for j = p + 1; j < n; j++ {
				lu.data[i*n+j] -= factor * lu.data[p*n+j]
			}
			for j = 0; j < k; j++ {
				x.data[i*k+j] -= factor * x.data[p*k+j]
			}
		}
	}

	// Back substitution, one right-hand column at a time.
	var sum float64
	for j = 0; j < k; j++ {
		for i = n - 1; i >= 0; i-- {
			sum = x.data[i*k+j]
			for p = i + 1; p < n; p++ {
				sum -= lu.data[i*n+p] * x.data[p*k+j]
			}
			x.data[i*k+j] = sum / lu.data[i*n+i]
		}
	}

	return x, nil
}

// swapRows exchanges rows r1 and r2 of d in place.
func swapRows(d *Dense, r1, r2 int) {
	c := d.c
	a := d.data[r1*c : (r1+1)*c]
	b := d.data[r2*c : (r2+1)*c]
	for j := 0; j < c; j++ {
		a[j], b[j] = b[j], a[j]
	}
}
