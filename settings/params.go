// SPDX-License-Identifier: MIT

package settings

import "fmt"

// NeuronParam names one per-neuron Morris–Lecar quantity.
type NeuronParam int

// Per-neuron parameters, in file order.
const (
	ParamC    NeuronParam = iota // membrane capacitance
	ParamEL                      // leak reversal potential
	ParamGL                      // leak conductance
	ParamGCa1                    // maximal calcium conductance
	ParamECa                     // calcium reversal potential
	ParamUCa1                    // calcium half-activation voltage
	ParamUCa2                    // calcium activation slope
	ParamGK1                     // maximal potassium conductance
	ParamEK                      // potassium reversal potential
	ParamUK1                     // potassium half-activation voltage
	ParamUK2                     // potassium activation slope
	ParamFK                      // potassium gating rate
	NumNeuronParams
)

var neuronParamNames = [NumNeuronParams]string{
	"C", "EL", "GL", "GCa1", "ECa", "UCa1", "UCa2", "GK1", "EK", "UK1", "UK2", "FK",
}

func (p NeuronParam) String() string {
	if p < 0 || p >= NumNeuronParams {
		return fmt.Sprintf("NeuronParam(%d)", int(p))
	}
	return neuronParamNames[p]
}

// CouplingParam names one per-edge coupling quantity of a custom connection.
type CouplingParam int

// Coupling parameters, in file order.
const (
	CouplingGGlu   CouplingParam = iota // glutamate conductance
	CouplingGACh                        // acetylcholine conductance
	CouplingGGABA                       // GABA conductance
	CouplingGMo                         // monoamine conductance
	CouplingGExtra                      // extrasynaptic conductance
	CouplingEexc                        // excitatory reversal potential
	CouplingEinh                        // inhibitory reversal potential
	CouplingEMo                         // monoamine reversal potential
	CouplingEextra                      // extrasynaptic reversal potential
	CouplingUs1                         // synaptic activation midpoint
	CouplingUMo1                        // monoamine activation midpoint
	CouplingUex1                        // extrasynaptic activation midpoint
	CouplingUs2                         // synaptic activation slope
	CouplingUMo2                        // monoamine activation slope
	CouplingUex2                        // extrasynaptic activation slope
	NumCouplingParams
)

var couplingParamNames = [NumCouplingParams]string{
	"gGlu", "gACh", "gGABA", "gMo", "gExtra", "Eexc", "Einh", "EMo", "Eextra",
	"Us1", "UMo1", "Uex1", "Us2", "UMo2", "Uex2",
}

func (p CouplingParam) String() string {
	if p < 0 || p >= NumCouplingParams {
		return fmt.Sprintf("CouplingParam(%d)", int(p))
	}
	return couplingParamNames[p]
}

// NeuronParams holds the twelve per-neuron override arrays. Each array is
// empty (all defaults) or has one entry per neuron; an empty entry keeps the
// population default for that neuron.
type NeuronParams struct {
	C    []string `yaml:"C,omitempty" json:"C,omitempty"`
	EL   []string `yaml:"EL,omitempty" json:"EL,omitempty"`
	GL   []string `yaml:"GL,omitempty" json:"GL,omitempty"`
	GCa1 []string `yaml:"GCa1,omitempty" json:"GCa1,omitempty"`
	ECa  []string `yaml:"ECa,omitempty" json:"ECa,omitempty"`
	UCa1 []string `yaml:"UCa1,omitempty" json:"UCa1,omitempty"`
	UCa2 []string `yaml:"UCa2,omitempty" json:"UCa2,omitempty"`
	GK1  []string `yaml:"GK1,omitempty" json:"GK1,omitempty"`
	EK   []string `yaml:"EK,omitempty" json:"EK,omitempty"`
	UK1  []string `yaml:"UK1,omitempty" json:"UK1,omitempty"`
	UK2  []string `yaml:"UK2,omitempty" json:"UK2,omitempty"`
	FK   []string `yaml:"FK,omitempty" json:"FK,omitempty"`
}

// Field returns a pointer to the override array of p.
func (n *NeuronParams) Field(p NeuronParam) *[]string {
	switch p {
	case ParamC:
		return &n.C
	case ParamEL:
		return &n.EL
	case ParamGL:
		return &n.GL
	case ParamGCa1:
		return &n.GCa1
	case ParamECa:
		return &n.ECa
	case ParamUCa1:
		return &n.UCa1
	case ParamUCa2:
		return &n.UCa2
	case ParamGK1:
		return &n.GK1
	case ParamEK:
		return &n.EK
	case ParamUK1:
		return &n.UK1
	case ParamUK2:
		return &n.UK2
	case ParamFK:
		return &n.FK
	}
	return nil
}

// Connection is one custom directed edge. It is identified by (From, To);
// empty coupling strings keep the population default.
type Connection struct {
	From      int  `yaml:"from" json:"from"`
	To        int  `yaml:"to" json:"to"`
	Connected bool `yaml:"connected" json:"connected"`

	GGlu   string `yaml:"gGlu,omitempty" json:"gGlu,omitempty"`
	GACh   string `yaml:"gACh,omitempty" json:"gACh,omitempty"`
	GGABA  string `yaml:"gGABA,omitempty" json:"gGABA,omitempty"`
	GMo    string `yaml:"gMo,omitempty" json:"gMo,omitempty"`
	GExtra string `yaml:"gExtra,omitempty" json:"gExtra,omitempty"`
	Eexc   string `yaml:"Eexc,omitempty" json:"Eexc,omitempty"`
	Einh   string `yaml:"Einh,omitempty" json:"Einh,omitempty"`
	EMo    string `yaml:"EMo,omitempty" json:"EMo,omitempty"`
	Eextra string `yaml:"Eextra,omitempty" json:"Eextra,omitempty"`
	Us1    string `yaml:"Us1,omitempty" json:"Us1,omitempty"`
	UMo1   string `yaml:"UMo1,omitempty" json:"UMo1,omitempty"`
	Uex1   string `yaml:"Uex1,omitempty" json:"Uex1,omitempty"`
	Us2    string `yaml:"Us2,omitempty" json:"Us2,omitempty"`
	UMo2   string `yaml:"UMo2,omitempty" json:"UMo2,omitempty"`
	Uex2   string `yaml:"Uex2,omitempty" json:"Uex2,omitempty"`
}

// Field returns a pointer to the coupling string of p.
func (c *Connection) Field(p CouplingParam) *string {
	switch p {
	case CouplingGGlu:
		return &c.GGlu
	case CouplingGACh:
		return &c.GACh
	case CouplingGGABA:
		return &c.GGABA
	case CouplingGMo:
		return &c.GMo
	case CouplingGExtra:
		return &c.GExtra
	case CouplingEexc:
		return &c.Eexc
	case CouplingEinh:
		return &c.Einh
	case CouplingEMo:
		return &c.EMo
	case CouplingEextra:
		return &c.Eextra
	case CouplingUs1:
		return &c.Us1
	case CouplingUMo1:
		return &c.UMo1
	case CouplingUex1:
		return &c.Uex1
	case CouplingUs2:
		return &c.Us2
	case CouplingUMo2:
		return &c.UMo2
	case CouplingUex2:
		return &c.Uex2
	}
	return nil
}

// LayerToggles enables or disables whole transmission layers.
type LayerToggles struct {
	Glu  bool `yaml:"glu" json:"glu"`
	ACh  bool `yaml:"ach" json:"ach"`
	GABA bool `yaml:"gaba" json:"gaba"`
	Mon  bool `yaml:"mon" json:"mon"`
	NP   bool `yaml:"np" json:"np"`
	El   bool `yaml:"el" json:"el"`
}

// AllLayers has every layer enabled.
func AllLayers() LayerToggles {
	return LayerToggles{Glu: true, ACh: true, GABA: true, Mon: true, NP: true, El: true}
}
