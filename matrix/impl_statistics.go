// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Per-column descriptive statistics over sample buffers (rows are
//     samples, columns are channels), e.g. one neuron per column.
//
// Exposed API:
//   - DescribeColumns(X) -> *ColumnStats   // mean, population std, min, argmax, max
//
// Determinism & Performance:
//   - Fixed i→j traversal; the Dense fast-path reads the flat buffer directly.
//   - Two passes: the mean first, then the centred sum of squares.

package matrix

import (
	"fmt"
	"math"
)

const opDescribeColumns = "DescribeColumns"

// ColumnStats holds one entry per column of the described matrix.
type ColumnStats struct {
	Mean []float64
	// Std is the population standard deviation (divisor r).
	Std []float64
	Min []float64
	Max []float64
	// ArgMax is the first row holding Max.
	ArgMax []int
}

// DescribeColumns computes ColumnStats for X (r×c).
// MAIN DESCRIPTION:
//   - Requires at least one row; a 0-column input yields empty slices.
//   - NaN values propagate into Mean and Std and are skipped by Min/Max.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions when X has no rows.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func DescribeColumns(X Matrix) (*ColumnStats, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opDescribeColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	if r == 0 {
		return nil, matrixErrorf(opDescribeColumns, fmt.Errorf("no rows: %w", ErrInvalidDimensions))
	}

	at := func(i, j int) (float64, error) { return X.At(i, j) }
	if d, ok := X.(*Dense); ok {
		at = func(i, j int) (float64, error) { return d.data[i*c+j], nil }
	}

	st := &ColumnStats{
		Mean:   make([]float64, c),
		Std:    make([]float64, c),
		Min:    make([]float64, c),
		Max:    make([]float64, c),
		ArgMax: make([]int, c),
	}
	for j := 0; j < c; j++ {
		st.Min[j] = math.Inf(1)
		st.Max[j] = math.Inf(-1)
	}

	// Pass 1: sums and extrema.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := at(i, j)
			if err != nil {
				return nil, matrixErrorf(opDescribeColumns, err)
			}
			st.Mean[j] += v
			if v < st.Min[j] {
				st.Min[j] = v
			}
			if v > st.Max[j] {
				st.Max[j] = v
				st.ArgMax[j] = i
			}
		}
	}
	invR := 1.0 / float64(r)
	for j := range st.Mean {
		st.Mean[j] *= invR
	}

	// Pass 2: centred sum of squares.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := at(i, j)
			if err != nil {
				return nil, matrixErrorf(opDescribeColumns, err)
			}
			dv := v - st.Mean[j]
			st.Std[j] += dv * dv
		}
	}
	for j := range st.Std {
		st.Std[j] = math.Sqrt(st.Std[j] * invR)
	}

	return st, nil
}
