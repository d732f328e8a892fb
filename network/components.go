// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/neurowave/matrix"
)

// Components returns the connected components of the gap-junction graph,
// each as ascending neuron indices, ordered by their smallest member.
// An edge exists between i and j when gap[i,j] or gap[j,i] is nonzero, so
// every isolated neuron forms its own component.
//
// The scattering matrix is block-diagonal over these components.
func Components(gap *matrix.Dense) ([][]int, error) {
	if err := matrix.ValidateSquare(gap); err != nil {
		return nil, fmt.Errorf("network: components: %w", err)
	}
	n := gap.Rows()

	// Symmetric neighbour lists.
	nbrs := make([][]int, n)
	for i := 0; i < n; i++ {
		row, err := gap.RowView(i)
		if err != nil {
			return nil, fmt.Errorf("network: components: %w", err)
		}
		for j, w := range row {
			if w != 0 && i != j {
				nbrs[i] = append(nbrs[i], j)
				nbrs[j] = append(nbrs[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var out [][]int
	queue := make([]int, 0, n)
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		queue = append(queue[:0], root)
		comp := []int{}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, u := range nbrs[v] {
				if !visited[u] {
					visited[u] = true
					queue = append(queue, u)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}

	return out, nil
}
