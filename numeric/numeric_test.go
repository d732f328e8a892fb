// SPDX-License-Identifier: MIT
package numeric_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
	"github.com/stretchr/testify/require"
)

func mustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func rowOf(t *testing.T, m *matrix.Dense) []float64 {
	t.Helper()
	require.Equal(t, 1, m.Rows())
	row, err := m.RowView(0)
	require.NoError(t, err)

	out := make([]float64, len(row))
	copy(out, row)

	return out
}

func TestRangeFill(t *testing.T) {
	cases := []struct {
		name              string
		start, step, stop float64
		want              []float64
	}{
		{"overshoot", 0, 2, 7, []float64{0, 2, 4, 6}},
		{"exact end", 0, 1, 3, []float64{0, 1, 2, 3}},
		{"single", 5, 1, 5, []float64{5}},
		{"empty", 1, 1, 0, []float64{}},
		{"decimal end", 0, 0.1, 0.3, []float64{0, 0.1, 0.2, 0.30000000000000004}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := numeric.RangeFill(tc.start, tc.step, tc.stop)
			require.NoError(t, err)
			require.Equal(t, tc.want, rowOf(t, got))
		})
	}

	// Simulation horizon: 20 s at 7 ms.
	tv, err := numeric.RangeFill(0, 7e-3, 20)
	require.NoError(t, err)
	require.Equal(t, 2858, tv.Cols())

	_, err = numeric.RangeFill(0, 0, 1)
	require.ErrorIs(t, err, numeric.ErrInvalidStep)
	_, err = numeric.RangeFill(0, -1, 1)
	require.ErrorIs(t, err, numeric.ErrInvalidStep)
	_, err = numeric.RangeFill(0, math.NaN(), 1)
	require.ErrorIs(t, err, numeric.ErrInvalidStep)
}

func TestReductions(t *testing.T) {
	m := mustFrom(t, [][]float64{{1, 2, 0}, {3, 0, 5}})

	s, err := numeric.Sum(m)
	require.NoError(t, err)
	require.Equal(t, 11.0, s)

	cs, err := numeric.ColumnSums(m)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 2, 5}, rowOf(t, cs))

	nz, err := numeric.CountWhere(m, func(v float64) bool { return v != 0 })
	require.NoError(t, err)
	require.Equal(t, 4, nz)

	ones, err := numeric.Ones(2, 2)
	require.NoError(t, err)
	s, err = numeric.Sum(ones)
	require.NoError(t, err)
	require.Equal(t, 4.0, s)

	zeros, err := numeric.Zeros(3, 1)
	require.NoError(t, err)
	s, err = numeric.Sum(zeros)
	require.NoError(t, err)
	require.Zero(t, s)

	_, err = numeric.Sum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSigmoid(t *testing.T) {
	require.Equal(t, 0.5, numeric.Sigmoid(0))
	require.Equal(t, 1.0, numeric.Sigmoid(1e6))
	require.Equal(t, 0.0, numeric.Sigmoid(-1e6)) // exp overflow saturates, no NaN

	l, err := numeric.Logistic(mustFrom(t, [][]float64{{0, 0}}))
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.5}, rowOf(t, l))
}
