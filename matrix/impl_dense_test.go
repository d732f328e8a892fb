// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects negative dimensions
// and accepts empty ones.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(-1, 5)                     // attempt to create with negative rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, -1)                      // attempt to create with negative columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	m, err := matrix.NewDense(4, 0) // edgeless incidence shape
	require.NoError(t, err)
	require.Equal(t, 4, m.Rows())
	require.Equal(t, 0, m.Cols())
}

// TestNewDenseFrom covers literal construction and ragged rejection.
func TestNewDenseFrom(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, toRows(t, m))

	_, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	empty, err := matrix.NewDenseFrom(nil)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Rows())
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m := MustDense(t, 2, 2)

	_, err := m.At(-1, 0)                               // attempt At() with negative row index
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds

	_, err = m.At(0, 2)                                 // attempt At() with column index out of range
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds

	err = m.Set(2, 0, 1.23)                             // attempt Set() with row index out of range
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 0}, {0, 2}})

	clone := m.Clone()          // clone the matrix
	_ = clone.Set(0, 0, 3.0)    // modify the clone, but not the original
	orig, err := m.At(0, 0)     // retrieve original matrix element
	require.NoError(t, err)     // assert At() succeeded on original
	require.Equal(t, 1.0, orig) // expect original remains unchanged
}

// TestRowColumnCopies checks that Row/Column copy and RowView aliases.
func TestRowColumnCopies(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{4, 5, 6}}, toRows(t, row))
	_ = row.Set(0, 0, 40) // copy: base untouched
	v, _ := m.At(1, 0)
	require.Equal(t, 4.0, v)

	col, err := m.Column(2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{3}, {6}}, toRows(t, col))

	view, err := m.RowView(0)
	require.NoError(t, err)
	view[1] = 20 // alias: base changes
	v, _ = m.At(0, 1)
	require.Equal(t, 20.0, v)

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Column(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetRowSetColumn covers vector and broadcast-scalar operands.
func TestSetRowSetColumn(t *testing.T) {
	m := MustDense(t, 2, 3)

	require.NoError(t, m.SetRow(0, matrix.Of(MustFrom(t, [][]float64{{1, 2, 3}}))))
	require.NoError(t, m.SetRow(1, matrix.Scalar(7)))
	require.Equal(t, [][]float64{{1, 2, 3}, {7, 7, 7}}, toRows(t, m))

	// Column vectors are accepted for rows as long as the length matches.
	require.NoError(t, m.SetRow(1, matrix.Of(MustFrom(t, [][]float64{{4}, {5}, {6}}))))
	require.NoError(t, m.SetColumn(2, matrix.Scalar(0)))
	require.Equal(t, [][]float64{{1, 2, 0}, {4, 5, 0}}, toRows(t, m))

	err := m.SetRow(0, matrix.Of(MustFrom(t, [][]float64{{1, 2}})))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	err = m.SetColumn(0, matrix.Of(MustDense(t, 2, 2)))
	require.ErrorIs(t, err, matrix.ErrNotVector)

	err = m.SetColumn(3, matrix.Scalar(1))
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestNilMatrixOperand checks that Of(nil) stays a matrix operand and is
// rejected instead of acting as the scalar 0.
func TestNilMatrixOperand(t *testing.T) {
	require.False(t, matrix.Of(nil).IsScalar())
	require.True(t, matrix.Operand{}.IsScalar())

	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	require.ErrorIs(t, m.SetRow(0, matrix.Of(nil)), matrix.ErrNilMatrix)
	require.ErrorIs(t, m.SetColumn(1, matrix.Of(nil)), matrix.ErrNilMatrix)
	var typed *matrix.Dense
	require.ErrorIs(t, m.SetRow(1, matrix.Of(typed)), matrix.ErrNilMatrix)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, toRows(t, m))

	_, err := matrix.ConcatBelow(matrix.Scalar(1), matrix.Of(nil))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

// TestDoStopsOnError verifies Do visits row-major and stops at the first error.
func TestDoStopsOnError(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	var seen []float64
	stop := matrix.ErrOutOfRange
	err := m.Do(func(_, _ int, v float64) error {
		seen = append(seen, v)
		if v == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []float64{1, 2, 3}, seen)
}
