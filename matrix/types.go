// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface and the Operand variant.
// Errors live in errors.go, kernels in impl_*.go and ops_*.go.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrIndexOutOfBounds if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrIndexOutOfBounds if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// Operand is a value usable where either a scalar or a matrix is accepted:
// concatenation helpers and the row/column setters. Exactly one of the two
// forms is held; the zero Operand is the scalar 0.
//
// Conversion rules:
//   - A scalar concatenates as a 1×1 matrix.
//   - A scalar passed to SetRow/SetColumn broadcasts to every element.
type Operand struct {
	m        Matrix  // held matrix; nil from Of(nil) is rejected on use
	scalar   float64 // used when isMatrix is false
	isMatrix bool
}

// Scalar wraps v as an Operand.
func Scalar(v float64) Operand { return Operand{scalar: v} }

// Of wraps m as an Operand. A nil m stays a matrix operand and is rejected
// with ErrNilMatrix by the consuming operation.
func Of(m Matrix) Operand { return Operand{m: m, isMatrix: true} }

// IsScalar reports whether the operand holds a scalar.
func (o Operand) IsScalar() bool { return !o.isMatrix }

// Value returns the scalar held by o (0 when o holds a matrix).
func (o Operand) Value() float64 { return o.scalar }

// Matrix returns the held matrix, or nil for a scalar operand.
func (o Operand) Matrix() Matrix { return o.m }

// asMatrix materializes the operand: a scalar becomes a 1×1 Dense. A nil
// matrix operand is returned as is for ValidateNotNil to reject.
func (o Operand) asMatrix() Matrix {
	if o.isMatrix {
		return o.m
	}
	d := &Dense{r: 1, c: 1, data: []float64{o.scalar}}

	return d
}
