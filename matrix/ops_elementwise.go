// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide element-wise scalar arithmetic and transcendental maps over any Matrix.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - Every public op is a thin wrapper over mapElements, which owns validation,
//     allocation and the two loop shapes (flat for *Dense, i→j otherwise).
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import (
	"fmt"
	"math"
)

// Operation tags for the element-wise family.
const (
	opAddScalar = "AddScalar"
	opSubScalar = "SubScalar"
	opScalarSub = "ScalarSub"
	opScalarDiv = "ScalarDiv"
	opPow       = "Pow"
	opExp       = "Exp"
	opTanh      = "Tanh"
	opCosh      = "Cosh"
	opApply     = "Apply"
)

// mapElements computes out[i,j] = fn(m[i,j]) into a fresh Dense.
// Time: O(r*c). Space: O(r*c). Deterministic loops.
func mapElements(m Matrix, opTag string, fn func(float64) float64) (*Dense, error) {
	// Validate matrix presence using centralized validator.
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Dense fast-path: single pass over the flat row-major buffer.
	if d, ok := m.(*Dense); ok {
		for k, v := range d.data {
			out.data[k] = fn(v)
		}
		return out, nil
	}

	// Generic fallback via At (still deterministic).
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			out.data[i*c+j] = fn(v)
		}
	}

	return out, nil
}

// AddScalar returns m + s element-wise.
func AddScalar(m Matrix, s float64) (*Dense, error) {
	return mapElements(m, opAddScalar, func(x float64) float64 { return x + s })
}

// SubScalar returns m - s element-wise.
func SubScalar(m Matrix, s float64) (*Dense, error) {
	return mapElements(m, opSubScalar, func(x float64) float64 { return x - s })
}

// ScalarSub returns s - m element-wise.
func ScalarSub(s float64, m Matrix) (*Dense, error) {
	return mapElements(m, opScalarSub, func(x float64) float64 { return s - x })
}

// ScalarDiv returns s ./ m element-wise (IEEE-754 on zero divisors).
// ScalarDiv(1, m) is the element-wise reciprocal.
func ScalarDiv(s float64, m Matrix) (*Dense, error) {
	return mapElements(m, opScalarDiv, func(x float64) float64 { return s / x })
}

// Pow raises every element to the power p (math.Pow semantics).
func Pow(m Matrix, p float64) (*Dense, error) {
	return mapElements(m, opPow, func(x float64) float64 { return math.Pow(x, p) })
}

// Exp returns e^m element-wise.
func Exp(m Matrix) (*Dense, error) {
	return mapElements(m, opExp, math.Exp)
}

// Tanh returns tanh(m) element-wise.
func Tanh(m Matrix) (*Dense, error) {
	return mapElements(m, opTanh, math.Tanh)
}

// Cosh returns cosh(m) element-wise.
func Cosh(m Matrix) (*Dense, error) {
	return mapElements(m, opCosh, math.Cosh)
}

// Apply returns fn(m) element-wise. fn must be pure; it is called once per
// element in row-major order.
func Apply(m Matrix, fn func(float64) float64) (*Dense, error) {
	return mapElements(m, opApply, fn)
}
