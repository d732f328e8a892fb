// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestElementwiseKernels exercises Add/Sub/Hadamard/DivElem on both paths.
func TestElementwiseKernels(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{2, 4}, {6, 8}})

	cases := []struct {
		name string
		fn   func(x, y matrix.Matrix) (*matrix.Dense, error)
		want [][]float64
	}{
		{"Add", matrix.Add, [][]float64{{3, 6}, {9, 12}}},
		{"Sub", matrix.Sub, [][]float64{{-1, -2}, {-3, -4}}},
		{"Hadamard", matrix.Hadamard, [][]float64{{2, 8}, {18, 32}}},
		{"DivElem", matrix.DivElem, [][]float64{{0.5, 0.5}, {0.5, 0.5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fast, err := tc.fn(a, b) // *Dense fast path
			require.NoError(t, err)
			require.Equal(t, tc.want, toRows(t, fast))

			slow, err := tc.fn(hide{a}, b) // generic fallback
			require.NoError(t, err)
			require.Equal(t, tc.want, toRows(t, slow))

			_, err = tc.fn(a, MustDense(t, 2, 3)) // shape mismatch is an error, never a broadcast
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

			_, err = tc.fn(nil, b)
			require.ErrorIs(t, err, matrix.ErrNilMatrix)
		})
	}
}

// TestMatMulVersusDotMultiply keeps the two products apart.
func TestMatMulVersusDotMultiply(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{5, 6}, {7, 8}})

	prod, err := matrix.MatMul(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, toRows(t, prod))

	dot, err := matrix.DotMultiply(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 12}, {21, 32}}, toRows(t, dot))

	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	require.True(t, matrix.Equal(prod, slow))

	_, err = matrix.Mul(a, MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestMulEmptyInner ensures an n×0 by 0×n product is the n×n zero matrix.
func TestMulEmptyInner(t *testing.T) {
	n := MustDense(t, 3, 0)
	nt, err := matrix.Transpose(n)
	require.NoError(t, err)
	require.Equal(t, 0, nt.Rows())

	p, err := matrix.Mul(n, nt)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, toRows(t, p))
}

// TestTransposeAndScale checks shape swap and scalar scaling.
func TestTransposeAndScale(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	at, err := matrix.T(hide{a})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, toRows(t, at))

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, toRows(t, s))
}

// TestSolveAgainstGonum cross-checks Solve with gonum's dense solver.
func TestSolveAgainstGonum(t *testing.T) {
	rows := [][]float64{
		{0, 2, 1}, // zero leading entry forces a row swap
		{4, 1, -1},
		{2, -3, 5},
	}
	rhs := [][]float64{{1, 0}, {2, 1}, {3, -1}}
	a := MustFrom(t, rows)
	b := MustFrom(t, rhs)

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)

	ga := mat.NewDense(3, 3, []float64{0, 2, 1, 4, 1, -1, 2, -3, 5})
	gb := mat.NewDense(3, 2, []float64{1, 0, 2, 1, 3, -1})
	var gx mat.Dense
	require.NoError(t, gx.Solve(ga, gb))

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			v, err := x.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, gx.At(i, j), v, 1e-12)
		}
	}

	// Inputs stay untouched.
	require.Equal(t, rows, toRows(t, a))
	require.Equal(t, rhs, toRows(t, b))
}

// TestSolveSingular reports SingularSystem for degenerate systems.
func TestSolveSingular(t *testing.T) {
	_, err := matrix.Solve(MustDense(t, 2, 2), MustDense(t, 2, 1))
	require.ErrorIs(t, err, matrix.ErrSingular)

	rankOne := MustFrom(t, [][]float64{{1, 2}, {2, 4}})
	_, err = matrix.Solve(rankOne, MustDense(t, 2, 1))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Solve(MustDense(t, 2, 3), MustDense(t, 2, 1))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Solve(MustFrom(t, [][]float64{{1, 0}, {0, 1}}), MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestSolveBadlyScaled accepts regular systems whose rows differ in magnitude
// by many orders.
func TestSolveBadlyScaled(t *testing.T) {
	a := MustFrom(t, [][]float64{{5.7e-8, 0}, {0, 1e-22}})
	x, err := matrix.Solve(a, a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}, {0, 1}}, toRows(t, x))

	// Pivoting still swaps rows; the tiny row keeps its own scale.
	b := MustFrom(t, [][]float64{{0, 2e-20}, {3e5, 0}})
	rhs := MustFrom(t, [][]float64{{4e-20}, {6e5}})
	x, err = matrix.Solve(b, rhs)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 2}, []float64{toRows(t, x)[0][0], toRows(t, x)[1][0]}, 1e-12)

	// A row that is tiny relative to itself after elimination is still singular.
	_, err = matrix.Solve(MustFrom(t, [][]float64{{1e-20, 2e-20}, {2e-20, 4e-20}}), MustDense(t, 2, 1))
	require.ErrorIs(t, err, matrix.ErrSingular)
}
