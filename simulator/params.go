// SPDX-License-Identifier: MIT

package simulator

import (
	"log/slog"

	"github.com/katalvlaran/neurowave/logging"
	"github.com/katalvlaran/neurowave/settings"
)

// Simulation defaults.
const (
	DefaultStepSize   = 7e-3 // T, seconds
	DefaultDuration   = 20.0 // seconds
	DefaultIterations = 2    // ni, relaxation sub-iterations per step

	// DefaultGapConductance is gEl, the conductance of one gap junction.
	DefaultGapConductance = 0.546e-9
)

// Initial wave state.
const (
	initialBC  = -69e-3 // voltage-source delay line
	initialACI = 50e-9  // calcium integrator delay line
)

// Gating selects the potassium gating update.
type Gating int

const (
	// GatingStandard integrates dzK = zInf − zK⊙FK⊙cosh((u−UK1)/2⊙UK2), the
	// form the C. elegans parameter set was fitted with.
	GatingStandard Gating = iota

	// GatingMorrisLecar integrates the textbook rate form
	// dzK = FK⊙cosh((u−UK1)/(2·UK2))⊙(zInf−zK).
	GatingMorrisLecar
)

func (g Gating) valid() bool { return g == GatingStandard || g == GatingMorrisLecar }

// NeuronDefaults holds population-wide Morris–Lecar values indexed by
// settings.NeuronParam.
type NeuronDefaults [settings.NumNeuronParams]float64

// DefaultNeuronParams returns the C. elegans population defaults.
func DefaultNeuronParams() NeuronDefaults {
	var d NeuronDefaults
	d[settings.ParamC] = 20e-11
	d[settings.ParamEL] = -60e-3
	d[settings.ParamGL] = 2e-9
	d[settings.ParamGCa1] = 4.4e-9
	d[settings.ParamECa] = 120e-3
	d[settings.ParamUCa1] = -10e-3
	d[settings.ParamUCa2] = 18e-3
	d[settings.ParamGK1] = 7e-9
	d[settings.ParamEK] = -84e-3
	d[settings.ParamUK1] = 2e-3
	d[settings.ParamUK2] = 30e-3
	d[settings.ParamFK] = 1
	return d
}

// CouplingDefaults holds population-wide per-edge values indexed by
// settings.CouplingParam.
type CouplingDefaults [settings.NumCouplingParams]float64

// DefaultCouplingParams returns the C. elegans coupling defaults.
func DefaultCouplingParams() CouplingDefaults {
	var d CouplingDefaults
	d[settings.CouplingGGlu] = 0.54e-9
	d[settings.CouplingGACh] = 0.27e-9
	d[settings.CouplingGGABA] = 0.405e-9
	d[settings.CouplingEexc] = 110e-3
	d[settings.CouplingEinh] = -120e-3
	d[settings.CouplingUs1] = -20e-3
	d[settings.CouplingUs2] = 0.1e-3
	// monoamines, excitatory
	d[settings.CouplingGMo] = 0.027e-9
	d[settings.CouplingEMo] = 110e-3
	d[settings.CouplingUMo1] = 40e-3
	d[settings.CouplingUMo2] = 1e-3
	// extrasynaptic and neuropeptide, excitatory
	d[settings.CouplingGExtra] = 0.0135e-9
	d[settings.CouplingEextra] = 110e-3
	d[settings.CouplingUex1] = 50e-3
	d[settings.CouplingUex2] = 10e-3
	return d
}

// CalciumParams describes the GCaMP6s calcium-imaging integrator.
type CalciumParams struct {
	Alpha  float64 // concentration-to-current conversion factor
	Tau    float64 // decay time constant, s
	EtaInf float64 // resting concentration, M
	ICaMin float64 // resting calcium current, A
}

// DefaultCalciumParams returns the GCaMP6s values.
func DefaultCalciumParams() CalciumParams {
	return CalciumParams{Alpha: 1e3, Tau: 0.79, EtaInf: 50e-9, ICaMin: 0.233e-12}
}

type options struct {
	step       float64
	duration   float64
	iterations int
	gEl        float64
	neuron     NeuronDefaults
	coupling   CouplingDefaults
	calcium    CalciumParams
	gating     Gating
	logger     *slog.Logger
	tracer     *logging.StepTracer
}

func defaultOptions() options {
	return options{
		step:       DefaultStepSize,
		duration:   DefaultDuration,
		iterations: DefaultIterations,
		gEl:        DefaultGapConductance,
		neuron:     DefaultNeuronParams(),
		coupling:   DefaultCouplingParams(),
		calcium:    DefaultCalciumParams(),
		logger:     logging.Discard(),
	}
}

// Option configures a Simulator.
type Option func(*options)

// WithStepSize sets the sample period T in seconds.
func WithStepSize(t float64) Option { return func(o *options) { o.step = t } }

// WithDuration sets the simulated time span in seconds.
func WithDuration(d float64) Option { return func(o *options) { o.duration = d } }

// WithIterations sets the number of relaxation sub-iterations per step.
func WithIterations(ni int) Option { return func(o *options) { o.iterations = ni } }

// WithGapConductance sets gEl.
func WithGapConductance(g float64) Option { return func(o *options) { o.gEl = g } }

// WithNeuronDefaults replaces the population-wide neuron parameters.
func WithNeuronDefaults(d NeuronDefaults) Option { return func(o *options) { o.neuron = d } }

// WithCouplingDefaults replaces the population-wide coupling parameters.
func WithCouplingDefaults(d CouplingDefaults) Option { return func(o *options) { o.coupling = d } }

// WithCalcium replaces the calcium-imaging parameters.
func WithCalcium(c CalciumParams) Option { return func(o *options) { o.calcium = c } }

// WithGating selects the potassium gating form. GatingStandard is the default.
func WithGating(g Gating) Option { return func(o *options) { o.gating = g } }

// WithLogger sets the operational logger. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.Discard()
		}
		o.logger = l
	}
}

// WithStepTracer records one JSONL event per completed step.
func WithStepTracer(t *logging.StepTracer) Option { return func(o *options) { o.tracer = t } }
