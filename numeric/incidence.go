// SPDX-License-Identifier: MIT
// Package numeric: incidence builder for undirected (gap-junction) adjacency.
//
// Sign convention:
//   - Each unordered edge {mu, nu} with mu < nu gets one column holding
//     +1 at row mu and −1 at row nu.
//   - Columns follow discovery order: strictly upper-triangular pairs scanned
//     row-major (mu ascending, then nu ascending).
//
// Complexity:
//   - O(n²) scan plus O(n·m) for the dense result.

package numeric

import (
	"fmt"

	"github.com/katalvlaran/neurowave/matrix"
)

// Incidence marks (no magic numbers).
const (
	lowMark  = +1.0 // lower-indexed endpoint
	highMark = -1.0 // higher-indexed endpoint
)

// IncidenceFromAdjacency builds the n×m incidence matrix of the undirected
// graph whose nonzero pattern is given by the square matrix a. Weights are
// ignored; only a[i][j] != 0 matters.
//
// m is half the number of nonzero entries. Off-diagonal edges fill the first
// columns in discovery order; nonzero diagonal entries are not edges, so
// they only leave trailing zero columns.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
//   - matrix.ErrAsymmetry when a[i][j] != 0 but a[j][i] == 0 for some i != j.
func IncidenceFromAdjacency(a matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("IncidenceFromAdjacency: %w", err)
	}
	n := a.Rows()

	// Stage 1: nonzero count and pattern symmetry.
	nonzero, err := CountWhere(a, func(v float64) bool { return v != 0 })
	if err != nil {
		return nil, fmt.Errorf("IncidenceFromAdjacency: %w", err)
	}
	type edge struct{ mu, nu int }
	var edges []edge
	var up, down float64
	for mu := 0; mu < n; mu++ {
		for nu := mu + 1; nu < n; nu++ {
			if up, err = a.At(mu, nu); err != nil {
				return nil, fmt.Errorf("IncidenceFromAdjacency: %w", err)
			}
			if down, err = a.At(nu, mu); err != nil {
				return nil, fmt.Errorf("IncidenceFromAdjacency: %w", err)
			}
			if (up != 0) != (down != 0) {
				return nil, fmt.Errorf("IncidenceFromAdjacency: pair (%d,%d): %w", mu, nu, matrix.ErrAsymmetry)
			}
			if up != 0 {
				edges = append(edges, edge{mu, nu})
			}
		}
	}

	// Stage 2: fill columns in discovery order.
	out, err := matrix.NewDense(n, nonzero/2)
	if err != nil {
		return nil, fmt.Errorf("IncidenceFromAdjacency: %w", err)
	}
	for col, e := range edges {
		_ = out.Set(e.mu, col, lowMark)  // in range by construction
		_ = out.Set(e.nu, col, highMark) // in range by construction
	}

	return out, nil
}
