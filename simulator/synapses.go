// SPDX-License-Identifier: MIT

package simulator

import (
	"fmt"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
	"github.com/katalvlaran/neurowave/settings"
)

// synapses holds the effective per-edge weights of one configuration,
// conductance times adjacency, with row i presynaptic and column j
// postsynaptic.
type synapses struct {
	n    int
	exc  *matrix.Dense // gGlu⊙A_Glu + gACh⊙A_ACh
	inh  *matrix.Dense // gGABA⊙A_GABA
	mon  *matrix.Dense // gMo⊙A_mon
	xtra *matrix.Dense // gExtra⊙(A_np + A_extra)
	edge [settings.NumCouplingParams]*matrix.Dense
}

func newSynapses(layers connectome.Layers, edge [settings.NumCouplingParams]*matrix.Dense) (synapses, error) {
	var c calc
	glu := c.do(matrix.Hadamard(edge[settings.CouplingGGlu], layers[connectome.Glu]))
	ach := c.do(matrix.Hadamard(edge[settings.CouplingGACh], layers[connectome.ACh]))
	sy := synapses{
		n:    layers[connectome.GapJunction].Rows(),
		exc:  c.do(matrix.Add(glu, ach)),
		inh:  c.do(matrix.Hadamard(edge[settings.CouplingGGABA], layers[connectome.GABA])),
		mon:  c.do(matrix.Hadamard(edge[settings.CouplingGMo], layers[connectome.Monoamine])),
		xtra: c.do(matrix.Hadamard(edge[settings.CouplingGExtra], c.do(matrix.Add(layers[connectome.Neuropeptide], layers[connectome.Extra])))),
		edge: edge,
	}
	if c.err != nil {
		return synapses{}, fmt.Errorf("simulator: synaptic weights: %w", c.err)
	}
	return sy, nil
}

// current returns the 1×n synaptic current for membrane voltages u:
//
//	iSyn_j = −Σ_i [ σ((u_i−Us1)/Us2)·(wExc·(u_j−Eexc) + wInh·(u_j−Einh))
//	              + wMo·σ((u_i−UMo1)/UMo2)·(u_j−EMo)
//	              + wEx·σ((u_i−Uex1)/Uex2)·(u_j−Eextra) ]
//
// with every edge quantity taken at (i, j). Edges with zero weight are skipped.
func (sy *synapses) current(u *matrix.Dense) (*matrix.Dense, error) {
	uv, err := u.RowView(0)
	if err != nil {
		return nil, err
	}
	if len(uv) != sy.n {
		return nil, fmt.Errorf("synaptic current: %d voltages for %d neurons: %w", len(uv), sy.n, matrix.ErrDimensionMismatch)
	}
	out := make([]float64, sy.n)

	var rows [settings.NumCouplingParams][]float64
	for i := 0; i < sy.n; i++ {
		exc, _ := sy.exc.RowView(i)
		inh, _ := sy.inh.RowView(i)
		mon, _ := sy.mon.RowView(i)
		xtra, _ := sy.xtra.RowView(i)
		for k := range rows {
			rows[k], _ = sy.edge[k].RowView(i)
		}
		eexc, einh := rows[settings.CouplingEexc], rows[settings.CouplingEinh]
		us1, us2 := rows[settings.CouplingUs1], rows[settings.CouplingUs2]
		emo, umo1, umo2 := rows[settings.CouplingEMo], rows[settings.CouplingUMo1], rows[settings.CouplingUMo2]
		eex, uex1, uex2 := rows[settings.CouplingEextra], rows[settings.CouplingUex1], rows[settings.CouplingUex2]

		ui := uv[i]
		for j, uj := range uv {
			var acc float64
			if exc[j] != 0 || inh[j] != 0 {
				sig := numeric.Sigmoid((ui - us1[j]) / us2[j])
				acc += sig * (exc[j]*(uj-eexc[j]) + inh[j]*(uj-einh[j]))
			}
			if mon[j] != 0 {
				acc += mon[j] * numeric.Sigmoid((ui-umo1[j])/umo2[j]) * (uj - emo[j])
			}
			if xtra[j] != 0 {
				acc += xtra[j] * numeric.Sigmoid((ui-uex1[j])/uex2[j]) * (uj - eex[j])
			}
			out[j] -= acc
		}
	}

	return matrix.NewRowVector(out), nil
}
