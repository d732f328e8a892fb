// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/neurowave/matrix"
)

var (
	// ErrConfigParse matches every *ParseError.
	ErrConfigParse = errors.New("settings: value is not a finite decimal number")

	// ErrDuplicateConnection reports two connection records for one ordered pair.
	ErrDuplicateConnection = errors.New("settings: duplicate connection")
)

// ParseError names the field whose string failed to parse.
type ParseError struct {
	Field string // e.g. "neuron.GK1[3]" or "connections[0].gGlu"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("settings: %s: cannot parse %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrConfigParse for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrConfigParse }

// Overrides maps a neuron index to a parsed per-neuron value.
type Overrides map[int]float64

// ParsedConnection is a Connection with its coupling strings parsed. Coupling
// holds only the parameters that were set.
type ParsedConnection struct {
	From, To  int
	Connected bool
	Coupling  map[CouplingParam]float64
}

// Parsed is a validated, numeric view of Settings for n neurons.
type Parsed struct {
	N                int
	Active           []bool
	Stimulated       []bool
	CurrentAmplitude float64
	PulseWidth       float64
	Neuron           [NumNeuronParams]Overrides
	Connections      []ParsedConnection
	Layers           LayerToggles
	Circuit          string
}

// Parse converts every numeric string and validates shapes and indices
// against n neurons.
//
// Errors:
//   - *ParseError (matches ErrConfigParse) naming the first bad field.
//   - matrix.ErrDimensionMismatch when a per-neuron array has the wrong length.
//   - matrix.ErrOutOfRange for a connection endpoint outside [0, n).
//   - ErrDuplicateConnection for a repeated (from, to) pair.
func (s *Settings) Parse(n int) (*Parsed, error) {
	p := &Parsed{N: n, Layers: s.Layers, Circuit: strings.TrimSpace(s.Circuit)}

	var err error
	if p.Active, err = mask("active", s.Active, n, true); err != nil {
		return nil, err
	}
	if p.Stimulated, err = mask("stimulated", s.Stimulated, n, false); err != nil {
		return nil, err
	}
	if p.CurrentAmplitude, err = scalar("current_amplitude", s.CurrentAmplitude, DefaultCurrentAmplitude); err != nil {
		return nil, err
	}
	if p.PulseWidth, err = scalar("pulse_width", s.PulseWidth, DefaultPulseWidth); err != nil {
		return nil, err
	}
	if p.PulseWidth < 0 {
		return nil, &ParseError{Field: "pulse_width", Value: s.PulseWidth, Err: errors.New("must be >= 0")}
	}

	for k := ParamC; k < NumNeuronParams; k++ {
		vals := *s.Neuron.Field(k)
		if len(vals) == 0 {
			continue
		}
		if len(vals) != n {
			return nil, fmt.Errorf("settings: neuron.%s has %d entries for %d neurons: %w",
				k, len(vals), n, matrix.ErrDimensionMismatch)
		}
		for i, v := range vals {
			x, set, perr := parseOptional(fmt.Sprintf("neuron.%s[%d]", k, i), v)
			if perr != nil {
				return nil, perr
			}
			if !set {
				continue
			}
			if p.Neuron[k] == nil {
				p.Neuron[k] = Overrides{}
			}
			p.Neuron[k][i] = x
		}
	}

	type pair struct{ from, to int }
	seen := make(map[pair]int, len(s.Connections))
	p.Connections = make([]ParsedConnection, 0, len(s.Connections))
	for ci := range s.Connections {
		c := &s.Connections[ci]
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			return nil, fmt.Errorf("settings: connections[%d] %d->%d with %d neurons: %w",
				ci, c.From, c.To, n, matrix.ErrOutOfRange)
		}
		key := pair{c.From, c.To}
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("settings: connections[%d] and [%d] both %d->%d: %w",
				first, ci, c.From, c.To, ErrDuplicateConnection)
		}
		seen[key] = ci

		pc := ParsedConnection{From: c.From, To: c.To, Connected: c.Connected, Coupling: map[CouplingParam]float64{}}
		for k := CouplingGGlu; k < NumCouplingParams; k++ {
			x, set, perr := parseOptional(fmt.Sprintf("connections[%d].%s", ci, k), *c.Field(k))
			if perr != nil {
				return nil, perr
			}
			if set {
				pc.Coupling[k] = x
			}
		}
		p.Connections = append(p.Connections, pc)
	}

	return p, nil
}

// Silenced lists the inactive neurons in ascending order.
func (p *Parsed) Silenced() []int { return indices(p.Active, false) }

// StimulatedNeurons lists the stimulated neurons in ascending order.
func (p *Parsed) StimulatedNeurons() []int { return indices(p.Stimulated, true) }

func indices(mask []bool, want bool) []int {
	var out []int
	for i, b := range mask {
		if b == want {
			out = append(out, i)
		}
	}
	return out
}

func mask(field string, in []bool, n int, fill bool) ([]bool, error) {
	out := make([]bool, n)
	if len(in) == 0 {
		for i := range out {
			out[i] = fill
		}
		return out, nil
	}
	if len(in) != n {
		return nil, fmt.Errorf("settings: %s has %d entries for %d neurons: %w",
			field, len(in), n, matrix.ErrDimensionMismatch)
	}
	copy(out, in)
	return out, nil
}

func scalar(field, s, def string) (float64, error) {
	x, set, err := parseOptional(field, s)
	if err != nil {
		return 0, err
	}
	if !set {
		x, _ = strconv.ParseFloat(def, 64)
	}
	return x, nil
}

// parseOptional parses s as a finite float. Blank s is "not set".
func parseOptional(field, s string) (float64, bool, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false, nil
	}
	x, err := strconv.ParseFloat(t, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, false, &ParseError{Field: field, Value: s, Err: err}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false, &ParseError{Field: field, Value: s, Err: matrix.ErrNaNInf}
	}
	return x, true, nil
}
