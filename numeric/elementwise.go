// SPDX-License-Identifier: MIT

package numeric

import (
	"math"

	"github.com/katalvlaran/neurowave/matrix"
)

// Sigmoid is the logistic function 1/(1+e^(-x)).
// It saturates to exactly 0 or 1 without producing NaN.
func Sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// Logistic applies Sigmoid element-wise.
func Logistic(m matrix.Matrix) (*matrix.Dense, error) { return matrix.Apply(m, Sigmoid) }

// Exp applies e^x element-wise.
func Exp(m matrix.Matrix) (*matrix.Dense, error) { return matrix.Exp(m) }

// Tanh applies tanh element-wise.
func Tanh(m matrix.Matrix) (*matrix.Dense, error) { return matrix.Tanh(m) }

// Cosh applies cosh element-wise.
func Cosh(m matrix.Matrix) (*matrix.Dense, error) { return matrix.Cosh(m) }

// Solve returns X with a·X = b. Singular systems report matrix.ErrSingular.
func Solve(a, b matrix.Matrix) (*matrix.Dense, error) { return matrix.Solve(a, b) }
