// SPDX-License-Identifier: MIT
package numeric_test

import (
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
	"github.com/stretchr/testify/require"
)

func TestIncidenceFromAdjacency(t *testing.T) {
	// Path 0–1–2 plus edge 0–3 with weights; discovery order: (0,1), (0,3), (1,2).
	a := mustFrom(t, [][]float64{
		{0, 2, 0, 1},
		{2, 0, 5, 0},
		{0, 5, 0, 0},
		{1, 0, 0, 0},
	})
	n, err := numeric.IncidenceFromAdjacency(a)
	require.NoError(t, err)
	require.Equal(t, 4, n.Rows())
	require.Equal(t, 3, n.Cols())

	want := [][]float64{
		{1, 1, 0},
		{-1, 0, 1},
		{0, 0, -1},
		{0, -1, 0},
	}
	for i := range want {
		for j := range want[i] {
			v, err := n.At(i, j)
			require.NoError(t, err)
			require.Equal(t, want[i][j], v, "N[%d][%d]", i, j)
		}
	}
}

// TestIncidenceColumnInvariant checks one +1 and one −1 per column on a denser graph.
func TestIncidenceColumnInvariant(t *testing.T) {
	const size = 7
	a, err := matrix.NewDense(size, size)
	require.NoError(t, err)
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if (i*3+j)%4 == 0 {
				require.NoError(t, a.Set(i, j, 1))
				require.NoError(t, a.Set(j, i, 1))
			}
		}
	}
	nz, err := numeric.CountWhere(a, func(v float64) bool { return v != 0 })
	require.NoError(t, err)

	inc, err := numeric.IncidenceFromAdjacency(a)
	require.NoError(t, err)
	require.Equal(t, nz/2, inc.Cols())

	for j := 0; j < inc.Cols(); j++ {
		col, err := inc.Column(j)
		require.NoError(t, err)
		plus, _ := numeric.CountWhere(col, func(v float64) bool { return v == 1 })
		minus, _ := numeric.CountWhere(col, func(v float64) bool { return v == -1 })
		other, _ := numeric.CountWhere(col, func(v float64) bool { return v != 0 && v != 1 && v != -1 })
		require.Equal(t, 1, plus)
		require.Equal(t, 1, minus)
		require.Zero(t, other)
	}
}

func TestIncidenceEdgeless(t *testing.T) {
	z, err := numeric.Zeros(3, 3)
	require.NoError(t, err)
	inc, err := numeric.IncidenceFromAdjacency(z)
	require.NoError(t, err)
	require.Equal(t, 3, inc.Rows())
	require.Equal(t, 0, inc.Cols())
}

func TestIncidenceErrors(t *testing.T) {
	_, err := numeric.IncidenceFromAdjacency(mustFrom(t, [][]float64{{0, 1, 0}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = numeric.IncidenceFromAdjacency(mustFrom(t, [][]float64{{0, 1}, {0, 0}}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}
