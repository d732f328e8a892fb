// SPDX-License-Identifier: MIT

package simulator

import (
	"fmt"
	"io"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/network"
)

// Horizon returns the number of samples in the simulated span.
func (s *Simulator) Horizon() int { return s.horizon }

// NextStep returns the step AdvanceStep expects next.
func (s *Simulator) NextStep() int { return s.next }

// NeuronCount returns nN.
func (s *Simulator) NeuronCount() int { return s.n }

// Err returns the fatal error that halted the simulator, or nil.
func (s *Simulator) Err() error { return s.halted }

// Network returns the edited network of the current configuration, or nil
// before the first ApplyConfiguration. The result must not be modified.
func (s *Simulator) Network() *network.Result { return s.edited }

// Time returns the time of sample k in seconds.
func (s *Simulator) Time(k int) (float64, error) {
	if k < 0 || k >= s.horizon {
		return 0, fmt.Errorf("simulator: time %d of %d: %w", k, s.horizon, matrix.ErrOutOfRange)
	}
	return s.timeAt(k), nil
}

func (s *Simulator) timeAt(k int) float64 {
	t, _ := s.times.At(0, k)
	return t
}

// Times returns a copy of the 1×horizon time vector.
func (s *Simulator) Times() *matrix.Dense { return s.times.Clone().(*matrix.Dense) }

// Potential returns the membrane potential of neuron n at sample k, in volts.
func (s *Simulator) Potential(n, k int) (float64, error) { return s.uLog.At(k, n) }

// Calcium returns the calcium concentration of neuron n at sample k, in M.
func (s *Simulator) Calcium(n, k int) (float64, error) { return s.etaLog.At(k, n) }

// PotentialTrace returns the first upTo samples of neuron n's potential.
func (s *Simulator) PotentialTrace(n, upTo int) ([]float64, error) { return trace(s.uLog, n, upTo) }

// CalciumTrace returns the first upTo samples of neuron n's calcium.
func (s *Simulator) CalciumTrace(n, upTo int) ([]float64, error) { return trace(s.etaLog, n, upTo) }

// PotentialSnapshot returns the potentials of all neurons at sample k.
func (s *Simulator) PotentialSnapshot(k int) ([]float64, error) { return snapshot(s.uLog, k) }

// CalciumSnapshot returns the calcium concentrations of all neurons at sample k.
func (s *Simulator) CalciumSnapshot(k int) ([]float64, error) { return snapshot(s.etaLog, k) }

// PotentialLog returns a copy of the horizon×nN potential buffer.
func (s *Simulator) PotentialLog() *matrix.Dense { return s.uLog.Clone().(*matrix.Dense) }

// CalciumLog returns a copy of the horizon×nN calcium buffer.
func (s *Simulator) CalciumLog() *matrix.Dense { return s.etaLog.Clone().(*matrix.Dense) }

// ExportPotential writes the potential buffer as CSV, one row per sample.
func (s *Simulator) ExportPotential(w io.Writer) error { return matrix.WriteCSV(w, s.uLog) }

// ExportCalcium writes the calcium buffer as CSV, one row per sample.
func (s *Simulator) ExportCalcium(w io.Writer) error { return matrix.WriteCSV(w, s.etaLog) }

func trace(log *matrix.Dense, n, upTo int) ([]float64, error) {
	if upTo < 0 || upTo > log.Rows() {
		return nil, fmt.Errorf("simulator: trace length %d of %d: %w", upTo, log.Rows(), matrix.ErrOutOfRange)
	}
	col, err := log.Column(n)
	if err != nil {
		return nil, fmt.Errorf("simulator: trace: %w", err)
	}
	out := make([]float64, upTo)
	for k := range out {
		out[k], _ = col.At(k, 0)
	}
	return out, nil
}

func snapshot(log *matrix.Dense, k int) ([]float64, error) {
	row, err := log.RowView(k)
	if err != nil {
		return nil, fmt.Errorf("simulator: snapshot: %w", err)
	}
	return append([]float64(nil), row...), nil
}
