// SPDX-License-Identifier: MIT

// Package matrix is the dense numeric container the simulator is built on.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors,
//     copying Row/Column extraction and one aliasing accessor (RowView).
//   - Element-wise arithmetic (Add, Sub, Hadamard/DotMultiply, DivElem,
//     scalar forms, Pow, Exp, Tanh, Cosh) and the true product Mul/MatMul.
//   - Structural helpers: ConcatRight/ConcatBelow over the Operand variant
//     (scalar or matrix, zero-padded), dual-mode Diag, RemoveColumns, HeadRows.
//   - DescribeColumns, per-column mean, spread and extrema of sample buffers.
//   - Solve, Gaussian elimination with partial pivoting.
//   - A comma-separated text codec (ReadCSV/WriteCSV).
//
// Shape mismatches surface as ErrDimensionMismatch, singular systems as
// ErrSingular; both are wrapped with the failing operation name and matched
// with errors.Is.
package matrix
