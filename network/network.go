// SPDX-License-Identifier: MIT

// Package network applies topology edits to a connectome and re-derives the
// gap-junction scattering matrix used by the circuit solver.
//
// Every call works on copies; the input layers are never mutated. An edit
// supersedes the previous one entirely.
package network

import (
	"fmt"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
)

// Result is one edited network.
type Result struct {
	// Layers are the edited adjacency matrices, indexed by connectome.Layer.
	Layers connectome.Layers
	// S is the nN×nN gap-junction scattering matrix.
	S *matrix.Dense
	// Incidence is derived from the edited gap-junction layer.
	Incidence *matrix.Dense
	// Components are the connected gap-junction components after the edit.
	Components [][]int
}

// Edit zeroes row and column i of every layer for each silenced index i and
// recomputes the scattering matrix from the edited gap-junction layer.
//
// rr is the 1×nN parallel port resistance of every neuron; gEl is the scalar
// gap-junction conductance. Silenced indices may repeat.
//
// Errors:
//   - connectome.ErrMissingLayer for a nil layer.
//   - matrix.ErrDimensionMismatch when layers disagree in size or rr is not 1×nN.
//   - matrix.ErrOutOfRange for a silenced index outside [0, nN).
//   - matrix.ErrSingular from the scattering solve.
func Edit(layers connectome.Layers, silenced []int, rr *matrix.Dense, gEl float64) (*Result, error) {
	for l, m := range layers {
		if m == nil {
			return nil, fmt.Errorf("network: layer %s: %w", connectome.Layer(l), connectome.ErrMissingLayer)
		}
	}
	n := layers[connectome.GapJunction].Rows()
	for l, m := range layers {
		if m.Rows() != n || m.Cols() != n {
			return nil, fmt.Errorf("network: layer %s is %dx%d, want %dx%d: %w",
				connectome.Layer(l), m.Rows(), m.Cols(), n, n, matrix.ErrDimensionMismatch)
		}
	}
	for _, i := range silenced {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("network: silence neuron %d of %d: %w", i, n, matrix.ErrOutOfRange)
		}
	}

	res := &Result{Layers: layers.Clone()}
	zero := matrix.Scalar(0)
	for _, i := range silenced {
		for l, m := range res.Layers {
			if err := m.SetRow(i, zero); err != nil {
				return nil, fmt.Errorf("network: silence %d in %s: %w", i, connectome.Layer(l), err)
			}
			if err := m.SetColumn(i, zero); err != nil {
				return nil, fmt.Errorf("network: silence %d in %s: %w", i, connectome.Layer(l), err)
			}
		}
	}

	var err error
	if res.Incidence, err = numeric.IncidenceFromAdjacency(res.Layers[connectome.GapJunction]); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	if res.S, err = scattering(res.Incidence, rr, gEl); err != nil {
		return nil, err
	}
	if res.Components, err = Components(res.Layers[connectome.GapJunction]); err != nil {
		return nil, err
	}

	return res, nil
}

// ScatteringMatrix returns S = (D + gEl·N·Nᵗ) \ (D − gEl·N·Nᵗ), where N is
// the incidence matrix of gap and D = diag(1/rr).
func ScatteringMatrix(gap *matrix.Dense, rr *matrix.Dense, gEl float64) (*matrix.Dense, error) {
	inc, err := numeric.IncidenceFromAdjacency(gap)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	return scattering(inc, rr, gEl)
}

func scattering(inc, rr *matrix.Dense, gEl float64) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(rr); err != nil {
		return nil, fmt.Errorf("network: port resistance: %w", err)
	}
	n := inc.Rows()
	if rr.Rows() != 1 || rr.Cols() != n {
		return nil, fmt.Errorf("network: port resistance is %dx%d, want 1x%d: %w",
			rr.Rows(), rr.Cols(), n, matrix.ErrDimensionMismatch)
	}

	nt, err := matrix.Transpose(inc)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	lap, err := matrix.Mul(inc, nt)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	nonDiag, err := matrix.Scale(lap, gEl)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	gr, err := matrix.ScalarDiv(1, rr)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	d, err := matrix.Diag(gr)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	lhs, err := matrix.Add(d, nonDiag)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	rhs, err := matrix.Sub(d, nonDiag)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	s, err := numeric.Solve(lhs, rhs)
	if err != nil {
		return nil, fmt.Errorf("network: scattering matrix: %w", err)
	}
	return s, nil
}
