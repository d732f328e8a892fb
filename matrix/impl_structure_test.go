// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/stretchr/testify/require"
)

// TestRemoveColumns drops named columns and keeps order.
func TestRemoveColumns(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}})

	got, err := matrix.RemoveColumns(m, 1, 3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 3}, {5, 7}}, toRows(t, got))

	// Order of indices and duplicates do not matter.
	got, err = matrix.RemoveColumns(hide{m}, 3, 1, 3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 3}, {5, 7}}, toRows(t, got))

	all, err := matrix.RemoveColumns(m, 0, 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, all.Rows())
	require.Equal(t, 0, all.Cols())

	_, err = matrix.RemoveColumns(m, 4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestHeadRows(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	got, err := matrix.HeadRows(m, 2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, toRows(t, got))

	none, err := matrix.HeadRows(hide{m}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, none.Rows())
	require.Equal(t, 2, none.Cols())

	_, err = matrix.HeadRows(m, 4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.HeadRows(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestConcat covers matrix/matrix, matrix/scalar and zero padding.
func TestConcat(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{5}})

	right, err := matrix.ConcatRight(matrix.Of(a), matrix.Of(b))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 5}, {3, 4, 0}}, toRows(t, right))

	below, err := matrix.ConcatBelow(matrix.Of(a), matrix.Scalar(9))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}, {9, 0}}, toRows(t, below))

	pair, err := matrix.ConcatBelow(matrix.Scalar(1), matrix.Scalar(2))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1}, {2}}, toRows(t, pair))

	_, err = matrix.ConcatRight(matrix.Of(nil), matrix.Scalar(1))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestDiagDualMode checks both build and extraction modes.
func TestDiagDualMode(t *testing.T) {
	row := MustFrom(t, [][]float64{{1, 2, 3}})
	built, err := matrix.Diag(row)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}, toRows(t, built))

	col := MustFrom(t, [][]float64{{4}, {5}})
	built, err = matrix.Diag(col)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{4, 0}, {0, 5}}, toRows(t, built))

	sq := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	extracted, err := matrix.Diag(sq)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1}, {5}}, toRows(t, extracted))
}

// TestOperand documents the variant's accessors.
func TestOperand(t *testing.T) {
	s := matrix.Scalar(2.5)
	require.True(t, s.IsScalar())
	require.Equal(t, 2.5, s.Value())
	require.Nil(t, s.Matrix())

	m := matrix.Of(MustDense(t, 1, 1))
	require.False(t, m.IsScalar())
	require.NotNil(t, m.Matrix())
}
