// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points over the canonical kernels.
//   - Keep the two products apart by name: MatMul (linear algebra) and
//     DotMultiply (element-wise). There is no operator that picks one by context.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.

package matrix

import "math"

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewOnes returns a rows×cols matrix filled with 1.
func NewOnes(rows, cols int) (*Dense, error) { return NewFilled(rows, cols, 1) }

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a zero matrix with the shape of m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// MatMul is the matrix product A×B. Alias of Mul.
func MatMul(a, b Matrix) (*Dense, error) { return Mul(a, b) }

// DotMultiply is the element-wise product A⊙B. Alias of Hadamard.
func DotMultiply(a, b Matrix) (*Dense, error) { return Hadamard(a, b) }

// DotDivide is the element-wise quotient A⊘B. Alias of DivElem.
// It is never a linear solve; see Solve.
func DotDivide(a, b Matrix) (*Dense, error) { return DivElem(a, b) }

// T returns the transpose of m. Alias of Transpose.
func T(m Matrix) (*Dense, error) { return Transpose(m) }

// Negate returns -m element-wise.
func Negate(m Matrix) (*Dense, error) { return Scale(m, -1) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close; equal infinities do.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	r, c := a.Rows(), a.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, err := a.At(i, j)
			if err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			bv, err := b.At(i, j)
			if err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if av == bv {
				continue
			}
			if math.IsNaN(av) || math.IsNaN(bv) || math.IsInf(av, 0) || math.IsInf(bv, 0) {
				return false, nil
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Equal reports exact element-wise equality of two matrices of the same shape.
// Shapes that differ compare unequal.
func Equal(a, b Matrix) bool {
	if ValidateBinarySameShape(a, b) != nil {
		return false
	}
	r, c := a.Rows(), a.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, err1 := a.At(i, j)
			bv, err2 := b.At(i, j)
			if err1 != nil || err2 != nil || av != bv {
				return false
			}
		}
	}

	return true
}
