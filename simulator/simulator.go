// SPDX-License-Identifier: MIT

// Package simulator runs a wave-digital Morris–Lecar model of every neuron
// of a connectome, coupled through gap junctions and chemical, monoamine and
// neuropeptide transmission, plus a wave-digital integrator per neuron that
// turns calcium current into a GCaMP-style calcium concentration.
//
// A Simulator has two phases. ApplyConfiguration rebuilds every parameter,
// the edited network and the stimulus from the immutable connectome and a
// settings object. AdvanceStep then advances exactly one sample at a time, in
// order, writing membrane potential and calcium concentration into
// preallocated horizon×nN log buffers.
//
// A Simulator is not safe for concurrent use. Readers of the log buffers must
// not overlap AdvanceStep.
package simulator

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/network"
	"github.com/katalvlaran/neurowave/numeric"
	"github.com/katalvlaran/neurowave/settings"
)

var (
	// ErrSequenceViolation is returned, and logged, for a step requested out
	// of order. The call is a no-op; the caller may retry.
	ErrSequenceViolation = errors.New("simulator: step requested out of order")

	// ErrHorizonExceeded is returned for a step at or past the horizon.
	ErrHorizonExceeded = errors.New("simulator: step beyond horizon")

	// ErrNotConfigured is returned when stepping before ApplyConfiguration.
	ErrNotConfigured = errors.New("simulator: no configuration applied")

	// ErrHalted is returned by every step after a fatal step error.
	ErrHalted = errors.New("simulator: halted after fatal error")

	// ErrInvalidOption reports an unusable constructor option.
	ErrInvalidOption = errors.New("simulator: invalid option")
)

// Simulator owns the parameters, the edited network, the wave state and the
// log buffers of one simulation.
type Simulator struct {
	conn    *connectome.Connectome
	opts    options
	log     *slog.Logger
	n       int
	horizon int
	times   *matrix.Dense // 1×horizon

	// Calcium integrator, constant for the lifetime of the simulator.
	rpIn    float64
	gammaI  [3]float64
	etaCorr float64

	configured bool
	halted     error

	// Rebuilt by ApplyConfiguration.
	neuron [settings.NumNeuronParams]*matrix.Dense   // 1×n each
	edge   [settings.NumCouplingParams]*matrix.Dense // n×n each
	rm     *matrix.Dense                             // 1×n reference resistance of the memristive port
	rr     *matrix.Dense                             // 1×n parallel port resistance
	gamma  [4]*matrix.Dense                          // 1×n port coefficients
	edited *network.Result
	syn    synapses
	jExt   *matrix.Dense // horizon×n stimulus current

	// Wave state.
	bC, ap3, zK, aCI *matrix.Dense
	next             int

	uLog, etaLog *matrix.Dense // horizon×n
}

// New prepares a simulator for c. It allocates the log buffers but cannot
// step until ApplyConfiguration succeeds.
func New(c *connectome.Connectome, opts ...Option) (*Simulator, error) {
	if c == nil {
		return nil, fmt.Errorf("simulator: nil connectome: %w", ErrInvalidOption)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case !(o.step > 0) || math.IsInf(o.step, 0):
		return nil, fmt.Errorf("simulator: step size %g: %w", o.step, ErrInvalidOption)
	case !(o.duration >= 0) || math.IsInf(o.duration, 0):
		return nil, fmt.Errorf("simulator: duration %g: %w", o.duration, ErrInvalidOption)
	case o.iterations < 1:
		return nil, fmt.Errorf("simulator: %d iterations: %w", o.iterations, ErrInvalidOption)
	case !o.gating.valid():
		return nil, fmt.Errorf("simulator: gating %d: %w", o.gating, ErrInvalidOption)
	}

	s := &Simulator{conn: c, opts: o, log: o.logger, n: c.NeuronCount()}

	var err error
	if s.times, err = numeric.RangeFill(0, o.step, o.duration); err != nil {
		return nil, fmt.Errorf("simulator: time vector: %w", err)
	}
	s.horizon = s.times.Cols()
	if s.uLog, err = numeric.Zeros(s.horizon, s.n); err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}
	if s.etaLog, err = numeric.Zeros(s.horizon, s.n); err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}
	if err = s.initCalcium(); err != nil {
		return nil, err
	}

	return s, nil
}

// initCalcium derives the two-port integrator: a capacitor CI = 1/alpha in
// parallel with RI = tau/CI.
func (s *Simulator) initCalcium() error {
	cp := s.opts.calcium
	ci := 1 / cp.Alpha
	ri := cp.Tau / ci
	rci := s.opts.step / (2 * ci)

	rpI, err := matrix.NewDenseFrom([][]float64{{rci}, {ri}})
	if err != nil {
		return fmt.Errorf("simulator: calcium ports: %w", err)
	}
	inv, err := matrix.ScalarDiv(1, rpI)
	if err != nil {
		return fmt.Errorf("simulator: calcium ports: %w", err)
	}
	total, err := numeric.Sum(inv)
	if err != nil {
		return fmt.Errorf("simulator: calcium ports: %w", err)
	}
	s.rpIn = 1 / total
	s.gammaI = [3]float64{s.rpIn / rci, s.rpIn / ri, 1}
	s.etaCorr = cp.EtaInf - ri*cp.ICaMin

	return nil
}

// ApplyConfiguration parses cfg and rebuilds every parameter vector, the
// coupling matrices, the edited network with its scattering matrix and the
// stimulus, all from the immutable connectome. The wave state and the step
// counter are reset and the log buffers cleared.
//
// On error the simulator keeps its previous configuration.
//
// Errors:
//   - settings.ErrConfigParse (*settings.ParseError) for a non-numeric value.
//   - matrix.ErrDimensionMismatch, matrix.ErrOutOfRange for bad shapes or indices.
//   - connectome.ErrUnknownGroup for an unknown circuit.
//   - matrix.ErrSingular when the scattering matrix cannot be solved.
func (s *Simulator) ApplyConfiguration(cfg *settings.Settings) error {
	if cfg == nil {
		return fmt.Errorf("simulator: nil settings: %w", ErrInvalidOption)
	}
	p, err := cfg.Parse(s.n)
	if err != nil {
		return err
	}

	next := *s
	if err = next.buildNeurons(p); err != nil {
		return err
	}
	if err = next.buildPorts(); err != nil {
		return err
	}
	if err = next.buildCoupling(p); err != nil {
		return err
	}
	if err = next.buildNetwork(p); err != nil {
		return err
	}
	if err = next.buildStimulus(p); err != nil {
		return err
	}
	if err = next.resetWaves(); err != nil {
		return err
	}
	if next.uLog, err = numeric.Zeros(s.horizon, s.n); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	if next.etaLog, err = numeric.Zeros(s.horizon, s.n); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	next.next = 0
	next.configured = true
	next.halted = nil
	*s = next

	s.log.Info("configuration applied",
		"neurons", s.n,
		"silenced", len(s.silencedSet(p)),
		"stimulated", len(p.StimulatedNeurons()),
		"connections", len(p.Connections),
		"gap_edges", s.edited.Incidence.Cols(),
		"gap_components", len(s.edited.Components),
		"horizon", s.horizon)

	return nil
}

// buildNeurons fills each per-neuron vector with its default and layers the
// per-neuron overrides on top.
func (s *Simulator) buildNeurons(p *settings.Parsed) error {
	for k := settings.ParamC; k < settings.NumNeuronParams; k++ {
		v, err := matrix.NewFilled(1, s.n, s.opts.neuron[k])
		if err != nil {
			return fmt.Errorf("simulator: %s: %w", k, err)
		}
		row, _ := v.RowView(0)
		for i, x := range p.Neuron[k] {
			row[i] = x
		}
		s.neuron[k] = v
	}
	return nil
}

// buildPorts derives the Morris–Lecar adaptor: ports C (RC = T/2C), leak
// (RL = 1/GL) and memristor (RM), their parallel resistance Rr and the
// coefficients gamma = [Rr/RC; Rr/RL; Rr/RM; 1].
func (s *Simulator) buildPorts() error {
	var c calc
	nv := &s.neuron

	rc := c.do(matrix.ScalarDiv(s.opts.step, c.do(matrix.Scale(nv[settings.ParamC], 2))))
	rl := c.do(matrix.ScalarDiv(1, nv[settings.ParamGL]))
	rm := c.do(matrix.ScalarDiv(2, c.do(matrix.Add(nv[settings.ParamGK1], nv[settings.ParamGCa1]))))

	rp := c.do(matrix.ConcatBelow(matrix.Of(c.do(matrix.ConcatBelow(matrix.Of(rc), matrix.Of(rl)))), matrix.Of(rm)))
	colSums := c.do(numeric.ColumnSums(c.do(matrix.ScalarDiv(1, rp))))
	rr := c.do(matrix.ScalarDiv(1, colSums))

	rr3 := c.do(matrix.ConcatBelow(matrix.Of(c.do(matrix.ConcatBelow(matrix.Of(rr), matrix.Of(rr)))), matrix.Of(rr)))
	ratios := c.do(matrix.DivElem(rr3, rp))
	ones := c.do(numeric.Ones(1, s.n))
	gamma := c.do(matrix.ConcatBelow(matrix.Of(ratios), matrix.Of(ones)))
	if c.err != nil {
		return fmt.Errorf("simulator: port resistances: %w", c.err)
	}

	for i := range s.gamma {
		if s.gamma[i], c.err = gamma.Row(i); c.err != nil {
			return fmt.Errorf("simulator: port coefficients: %w", c.err)
		}
	}
	s.rm, s.rr = rm, rr

	return nil
}

// buildCoupling fills the per-edge matrices with their defaults and writes
// each custom connection's values at (from, to).
func (s *Simulator) buildCoupling(p *settings.Parsed) error {
	for k := settings.CouplingGGlu; k < settings.NumCouplingParams; k++ {
		m, err := matrix.NewFilled(s.n, s.n, s.opts.coupling[k])
		if err != nil {
			return fmt.Errorf("simulator: %s: %w", k, err)
		}
		s.edge[k] = m
	}
	for _, c := range p.Connections {
		for k, x := range c.Coupling {
			if err := s.edge[k].Set(c.From, c.To, x); err != nil {
				return fmt.Errorf("simulator: connection %d->%d %s: %w", c.From, c.To, k, err)
			}
		}
	}
	return nil
}

// layerToggles pairs each settings toggle with the layer it disables.
var layerToggles = [...]struct {
	layer connectome.Layer
	on    func(settings.LayerToggles) bool
}{
	{connectome.Glu, func(t settings.LayerToggles) bool { return t.Glu }},
	{connectome.ACh, func(t settings.LayerToggles) bool { return t.ACh }},
	{connectome.GABA, func(t settings.LayerToggles) bool { return t.GABA }},
	{connectome.Monoamine, func(t settings.LayerToggles) bool { return t.Mon }},
	{connectome.Neuropeptide, func(t settings.LayerToggles) bool { return t.NP }},
	{connectome.GapJunction, func(t settings.LayerToggles) bool { return t.El }},
}

// buildNetwork marks connected custom edges in the extra layer, zeroes
// disabled layers and hands the result to the network editor.
func (s *Simulator) buildNetwork(p *settings.Parsed) error {
	layers := s.conn.Layers()
	for _, c := range p.Connections {
		if !c.Connected {
			continue
		}
		if err := layers[connectome.Extra].Set(c.From, c.To, 1); err != nil {
			return fmt.Errorf("simulator: connection %d->%d: %w", c.From, c.To, err)
		}
	}
	for _, lt := range layerToggles {
		if lt.on(p.Layers) {
			continue
		}
		zero, err := matrix.ZerosLike(layers[lt.layer])
		if err != nil {
			return fmt.Errorf("simulator: disable %s: %w", lt.layer, err)
		}
		layers[lt.layer] = zero
	}

	silenced, err := s.silenced(p)
	if err != nil {
		return err
	}
	res, err := network.Edit(layers, silenced, s.rr, s.opts.gEl)
	if err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	s.edited = res

	if s.syn, err = newSynapses(res.Layers, s.edge); err != nil {
		return err
	}
	return nil
}

// silenced returns the inactive neurons plus, for a named circuit, every
// neuron outside that group.
func (s *Simulator) silenced(p *settings.Parsed) ([]int, error) {
	out := p.Silenced()
	if p.Circuit == "" || p.Circuit == connectome.GroupAll {
		return out, nil
	}
	members, err := s.conn.Groups().Members(p.Circuit)
	if err != nil {
		return nil, fmt.Errorf("simulator: circuit: %w", err)
	}
	all, err := numeric.RangeFill(0, 1, float64(s.n-1))
	if err != nil {
		return nil, fmt.Errorf("simulator: circuit: %w", err)
	}
	outside, err := matrix.RemoveColumns(all, members...)
	if err != nil {
		return nil, fmt.Errorf("simulator: circuit %q: %w", p.Circuit, err)
	}
	row, _ := outside.RowView(0)
	for _, v := range row {
		out = append(out, int(v))
	}
	return out, nil
}

// silencedSet is silenced without duplicates, for reporting.
func (s *Simulator) silencedSet(p *settings.Parsed) map[int]struct{} {
	idx, _ := s.silenced(p)
	set := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		set[i] = struct{}{}
	}
	return set
}

// buildStimulus sets a rectangular current pulse of the configured amplitude
// and width, from sample 0, on every stimulated neuron.
func (s *Simulator) buildStimulus(p *settings.Parsed) error {
	j, err := numeric.Zeros(s.horizon, s.n)
	if err != nil {
		return fmt.Errorf("simulator: stimulus: %w", err)
	}
	samples := s.horizon
	if w := math.Floor(p.PulseWidth / s.opts.step); w < float64(s.horizon) {
		samples = int(w)
	}

	pulse := make([]float64, s.horizon)
	for k := 0; k < samples; k++ {
		pulse[k] = p.CurrentAmplitude
	}
	col, err := matrix.NewDenseFrom([][]float64{pulse})
	if err != nil {
		return fmt.Errorf("simulator: stimulus: %w", err)
	}
	for _, i := range p.StimulatedNeurons() {
		if err = j.SetColumn(i, matrix.Of(col)); err != nil {
			return fmt.Errorf("simulator: stimulus neuron %d: %w", i, err)
		}
	}
	s.jExt = j

	return nil
}

// resetWaves restores the initial wave state.
func (s *Simulator) resetWaves() error {
	var c calc
	s.bC = c.do(matrix.NewFilled(1, s.n, initialBC))
	s.ap3 = c.do(numeric.Zeros(1, s.n))
	s.zK = c.do(numeric.Zeros(1, s.n))
	s.aCI = c.do(matrix.NewFilled(1, s.n, initialACI))
	if c.err != nil {
		return fmt.Errorf("simulator: wave state: %w", c.err)
	}
	return nil
}

// calc threads the first error through a chain of matrix operations. After
// a failure every later result is nil and the error is kept.
type calc struct{ err error }

func (c *calc) do(m *matrix.Dense, err error) *matrix.Dense {
	if c.err != nil {
		return nil
	}
	if err != nil {
		c.err = err
		return nil
	}
	return m
}
