// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels wrapped with an operation tag and
// callers match them via errors.Is. No kernel panics on user-triggered error
// conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so that failures surfacing from
// the simulator are easy to grep. Kernels wrap with matrixErrorf(op, ErrX);
// callers still use errors.Is to match.

var (
	// ErrBadShape is returned when a literal is ragged (rows of unequal length).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row/Column) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub/DivElem on different shapes, or Mul where a.Cols != b.Rows.
	// It is the shape-mismatch class of failure and is never recoverable by retry.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a nonzero pattern expected to be symmetric was not.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required (CSV ingestion).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned by Solve when no pivot above the tolerance exists
	// in a column, i.e. the linear system has no unique solution.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrNotVector indicates that a 1×n or n×1 operand was required.
	ErrNotVector = errors.New("matrix: operand is not a vector")

	// ErrParse reports a malformed numeric field in CSV input.
	ErrParse = errors.New("matrix: cannot parse value")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
// Keep it as an alias so errors.Is(err, ErrIndexOutOfBounds) remains true.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.
