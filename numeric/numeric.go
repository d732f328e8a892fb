// SPDX-License-Identifier: MIT

// Package numeric holds stateless helpers built on package matrix:
// range generation, constant fills, reductions, the incidence builder and
// element-wise transcendental wrappers used by the circuit solver.
//
// Every function allocates its result; inputs are never mutated.
package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/neurowave/matrix"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidStep is returned by RangeFill for a non-positive or non-finite step.
var ErrInvalidStep = errors.New("numeric: step must be positive and finite")

// rangeTol absorbs binary rounding in (end-start)/step so that an end point
// reachable in exact arithmetic (0:0.1:0.3) is not lost.
const rangeTol = 1e-9

// RangeFill returns the 1×N row vector start, start+step, …, with
// N = floor((end-start)/step)+1. Both ends are included when reachable;
// end < start yields a 1×0 vector.
func RangeFill(start, step, end float64) (*matrix.Dense, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("RangeFill(%g,%g,%g): %w", start, step, end, ErrInvalidStep)
	}
	n := 0
	if end >= start {
		n = int(math.Floor((end-start)/step+rangeTol)) + 1
	}
	out, err := matrix.NewDense(1, n)
	if err != nil {
		return nil, fmt.Errorf("RangeFill: %w", err)
	}
	row, _ := out.RowView(0)
	for i := range row {
		row[i] = start + float64(i)*step
	}

	return out, nil
}

// Zeros returns a rows×cols zero matrix.
func Zeros(rows, cols int) (*matrix.Dense, error) { return matrix.NewZeros(rows, cols) }

// Ones returns a rows×cols matrix of ones.
func Ones(rows, cols int) (*matrix.Dense, error) { return matrix.NewOnes(rows, cols) }

// Sum returns the total of all entries of m.
func Sum(m matrix.Matrix) (float64, error) {
	total := 0.0
	err := eachRow(m, func(_ int, row []float64) {
		total += floats.Sum(row)
	})
	if err != nil {
		return 0, fmt.Errorf("Sum: %w", err)
	}

	return total, nil
}

// ColumnSums returns the 1×Cols() row vector of per-column totals.
func ColumnSums(m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("ColumnSums: %w", err)
	}
	acc := make([]float64, m.Cols())
	err := eachRow(m, func(_ int, row []float64) {
		floats.Add(acc, row)
	})
	if err != nil {
		return nil, fmt.Errorf("ColumnSums: %w", err)
	}

	return matrix.NewRowVector(acc), nil
}

// CountWhere returns how many entries of m satisfy pred.
func CountWhere(m matrix.Matrix, pred func(float64) bool) (int, error) {
	count := 0
	err := eachRow(m, func(_ int, row []float64) {
		for _, v := range row {
			if pred(v) {
				count++
			}
		}
	})
	if err != nil {
		return 0, fmt.Errorf("CountWhere: %w", err)
	}

	return count, nil
}

// eachRow calls fn with every row of m in order. For *matrix.Dense the slice
// aliases storage and must not be retained or written.
func eachRow(m matrix.Matrix, fn func(i int, row []float64)) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	if d, ok := m.(*matrix.Dense); ok {
		for i := 0; i < d.Rows(); i++ {
			row, err := d.RowView(i)
			if err != nil {
				return err
			}
			fn(i, row)
		}
		return nil
	}
	row := make([]float64, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range row {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			row[j] = v
		}
		fn(i, row)
	}

	return nil
}
