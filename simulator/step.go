// SPDX-License-Identifier: MIT

package simulator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/neurowave/logging"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/settings"
)

// AdvanceStep computes sample k and writes row k of the log buffers.
//
// k must equal NextStep(); k == 0 is always accepted and restarts from the
// initial wave state. Any other k is logged and returns
// ErrSequenceViolation without touching state. k at or past the horizon
// returns ErrHorizonExceeded.
//
// The restart on k == 0 is intentional: stepping from 0 again never continues
// from the wave state left by an earlier pass.
//
// A failure inside the step is fatal: the simulator latches it and every
// later call returns ErrHalted until the next ApplyConfiguration.
func (s *Simulator) AdvanceStep(k int) error {
	if s.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, s.halted)
	}
	if !s.configured {
		return ErrNotConfigured
	}
	if k != s.next && k != 0 {
		s.log.Warn("wrong step requested", "expected", s.next, "got", k)
		return fmt.Errorf("simulator: step %d, expected %d: %w", k, s.next, ErrSequenceViolation)
	}
	if k >= s.horizon {
		return fmt.Errorf("simulator: step %d, horizon %d: %w", k, s.horizon, ErrHorizonExceeded)
	}
	if k == 0 {
		if err := s.resetWaves(); err != nil {
			s.halted = err
			return err
		}
	}

	if err := s.step(k); err != nil {
		s.halted = fmt.Errorf("simulator: step %d: %w", k, err)
		s.log.Error("simulation halted", "step", k, "error", err)
		return s.halted
	}
	s.next = k + 1

	if s.log.Enabled(context.Background(), logging.LevelTrace) {
		s.log.Log(context.Background(), logging.LevelTrace, "step", "k", k, "t", s.timeAt(k))
	}
	if s.opts.tracer != nil {
		u, _ := s.uLog.RowView(k)
		eta, _ := s.etaLog.RowView(k)
		s.opts.tracer.Log(map[string]any{"k": k, "t": s.timeAt(k), "u": u, "eta": eta})
	}

	return nil
}

// Run advances every remaining step up to the horizon.
func (s *Simulator) Run(ctx context.Context) error {
	return s.RunUntil(ctx, s.horizon)
}

// RunUntil advances from NextStep() up to, not including, step end (capped
// at the horizon). Cancellation is checked between steps.
func (s *Simulator) RunUntil(ctx context.Context, end int) error {
	end = min(end, s.horizon)
	for k := s.next; k < end; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.AdvanceStep(k); err != nil {
			return err
		}
	}
	return nil
}

// step is one sample of the wave-digital model. The new wave state is
// committed only when every operation succeeded.
func (s *Simulator) step(k int) error {
	var c calc
	nv := &s.neuron
	el, gl := nv[settings.ParamEL], nv[settings.ParamGL]
	g0, g1, g2, g3 := s.gamma[0], s.gamma[1], s.gamma[2], s.gamma[3]

	jk := c.do(s.jExt.Row(k))
	ap3, zK := s.ap3, s.zK
	dt := s.opts.step / float64(s.opts.iterations)

	// Waves from the capacitor and leak ports; fixed during the relaxation.
	base := c.do(matrix.Add(c.do(matrix.Hadamard(g0, s.bC)), c.do(matrix.Hadamard(g1, el))))

	var u, ap4, gCa *matrix.Dense
	for i := 0; i < s.opts.iterations; i++ {
		// Adaptor: incident gap-junction wave through S, then the reflected wave.
		bp4 := c.do(matrix.Add(base, c.do(matrix.Hadamard(g2, ap3))))
		ap4 = c.do(matrix.Mul(bp4, s.edited.S))
		bp3 := c.do(matrix.Sub(c.do(matrix.Add(bp4, c.do(matrix.Hadamard(g3, ap4)))), ap3))
		u = c.do(matrix.Scale(c.do(matrix.Add(ap3, bp3)), 0.5))

		// Potassium gating, explicit Euler over T/ni.
		zK = c.do(matrix.Add(zK, c.do(matrix.Scale(c.do(s.gatingRate(u, zK)), dt))))

		// Conductances.
		wK := c.do(matrix.Hadamard(zK, nv[settings.ParamGK1]))
		xCa := c.do(matrix.DivElem(c.do(matrix.Sub(u, nv[settings.ParamUCa1])), nv[settings.ParamUCa2]))
		gCa = c.do(matrix.Scale(c.do(matrix.Hadamard(nv[settings.ParamGCa1], c.do(matrix.AddScalar(c.do(matrix.Tanh(xCa)), 1)))), 0.5))
		m := c.do(matrix.ScalarDiv(1, c.do(matrix.Add(c.do(matrix.Add(wK, gCa)), gl))))
		rho := c.do(matrix.DivElem(c.do(matrix.Sub(m, s.rm)), c.do(matrix.Add(m, s.rm))))

		// Source transformation with stimulus and synaptic current.
		if c.err != nil {
			break
		}
		iSyn := c.do(s.syn.current(u))
		j := c.do(matrix.Add(jk, iSyn))
		drive := c.do(matrix.Add(
			c.do(matrix.Add(
				c.do(matrix.Hadamard(nv[settings.ParamEK], wK)),
				c.do(matrix.Hadamard(nv[settings.ParamECa], gCa)))),
			c.do(matrix.Add(c.do(matrix.Hadamard(el, gl)), j))))
		en := c.do(matrix.Hadamard(m, drive))
		ap3 = c.do(matrix.Add(en, c.do(matrix.Hadamard(rho, c.do(matrix.Sub(bp3, en))))))
	}

	// Capacitor delay line.
	bC := c.do(matrix.Sub(
		c.do(matrix.Add(c.do(matrix.Add(base, c.do(matrix.Hadamard(g2, ap3)))), c.do(matrix.Hadamard(g3, ap4)))),
		s.bC))

	// Calcium integrator driven by iCa = −GCa⊙(u − ECa).
	gi := s.gammaI
	iCa := c.do(matrix.Hadamard(c.do(matrix.Negate(gCa)), c.do(matrix.Sub(u, nv[settings.ParamECa]))))
	held := c.do(matrix.AddScalar(c.do(matrix.Scale(s.aCI, gi[0])), gi[1]*s.etaCorr))
	apI3 := c.do(matrix.Add(c.do(matrix.Scale(iCa, 2*s.rpIn)), held))
	bpI1 := c.do(matrix.Sub(c.do(matrix.Add(held, c.do(matrix.Scale(apI3, gi[2])))), s.aCI))
	eta := c.do(matrix.Scale(c.do(matrix.Add(s.aCI, bpI1)), 0.5))
	if c.err != nil {
		return c.err
	}

	if err := s.uLog.SetRow(k, matrix.Of(u)); err != nil {
		return err
	}
	if err := s.etaLog.SetRow(k, matrix.Of(eta)); err != nil {
		return err
	}
	s.bC, s.ap3, s.zK, s.aCI = bC, ap3, zK, bpI1

	return nil
}

// gatingRate returns dzK/dt for the selected potassium gating form.
func (s *Simulator) gatingRate(u, zK *matrix.Dense) (*matrix.Dense, error) {
	var c calc
	nv := &s.neuron
	du := c.do(matrix.Sub(u, nv[settings.ParamUK1]))
	zInf := c.do(matrix.Scale(c.do(matrix.AddScalar(c.do(matrix.Tanh(c.do(matrix.DivElem(du, nv[settings.ParamUK2])))), 1)), 0.5))

	var dzK *matrix.Dense
	switch s.opts.gating {
	case GatingMorrisLecar:
		// FK⊙cosh((u−UK1)/(2·UK2))⊙(zInf−zK)
		arg := c.do(matrix.Scale(c.do(matrix.DivElem(du, nv[settings.ParamUK2])), 0.5))
		rate := c.do(matrix.Hadamard(nv[settings.ParamFK], c.do(matrix.Cosh(arg))))
		dzK = c.do(matrix.Hadamard(rate, c.do(matrix.Sub(zInf, zK))))
	default:
		// zInf − zK⊙FK⊙cosh((u−UK1)/2⊙UK2)
		arg := c.do(matrix.Hadamard(c.do(matrix.Scale(du, 0.5)), nv[settings.ParamUK2]))
		decay := c.do(matrix.Hadamard(c.do(matrix.Hadamard(zK, nv[settings.ParamFK])), c.do(matrix.Cosh(arg))))
		dzK = c.do(matrix.Sub(zInf, decay))
	}
	return dzK, c.err
}
