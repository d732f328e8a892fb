// SPDX-License-Identifier: MIT

// Package settings is the run configuration of one simulation: which neurons
// are active and stimulated, the stimulus pulse, per-neuron Morris–Lecar
// overrides, custom connections and transmission-layer toggles.
//
// Numeric values are kept as decimal strings, as edited by a user, and turned
// into numbers by Parse. An empty string means "population default".
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Stimulus defaults.
const (
	DefaultCurrentAmplitude = "4e-11" // A
	DefaultPulseWidth       = "1"     // s
)

// Settings is the serialisable configuration object.
type Settings struct {
	// Active marks neurons taking part in the simulation; inactive ones are
	// silenced. Empty means every neuron is active.
	Active []bool `yaml:"active,omitempty" json:"active,omitempty"`

	// Stimulated marks neurons receiving the external current pulse.
	// Empty means none.
	Stimulated []bool `yaml:"stimulated,omitempty" json:"stimulated,omitempty"`

	CurrentAmplitude string `yaml:"current_amplitude" json:"current_amplitude"`
	PulseWidth       string `yaml:"pulse_width" json:"pulse_width"`

	Neuron      NeuronParams `yaml:"neuron,omitempty" json:"neuron,omitempty"`
	Connections []Connection `yaml:"connections,omitempty" json:"connections,omitempty"`
	Layers      LayerToggles `yaml:"layers" json:"layers"`

	// Circuit optionally names a neuron group; every neuron outside it is
	// silenced. Empty or "all" keeps the whole network.
	Circuit string `yaml:"circuit,omitempty" json:"circuit,omitempty"`
}

// Default returns settings for n neurons: all active, none stimulated, the
// default pulse, no overrides and every layer enabled.
func Default(n int) *Settings {
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	return &Settings{
		Active:           active,
		Stimulated:       make([]bool, n),
		CurrentAmplitude: DefaultCurrentAmplitude,
		PulseWidth:       DefaultPulseWidth,
		Layers:           AllLayers(),
	}
}

// Read decodes YAML (or JSON, a YAML subset) from r. Keys absent from the
// document keep their defaults. Unknown keys are rejected.
func Read(r io.Reader) (*Settings, error) {
	s := &Settings{
		CurrentAmplitude: DefaultCurrentAmplitude,
		PulseWidth:       DefaultPulseWidth,
		Layers:           AllLayers(),
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Load reads a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	return Read(bytes.NewReader(data))
}

// Save writes s as YAML.
func (s *Settings) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return enc.Close()
}

// Connection returns the custom connection from→to, if any.
func (s *Settings) Connection(from, to int) (*Connection, bool) {
	for i := range s.Connections {
		if s.Connections[i].From == from && s.Connections[i].To == to {
			return &s.Connections[i], true
		}
	}
	return nil, false
}

// SetConnection inserts c or replaces the record with the same (From, To).
func (s *Settings) SetConnection(c Connection) {
	if old, ok := s.Connection(c.From, c.To); ok {
		*old = c
		return
	}
	s.Connections = append(s.Connections, c)
}
