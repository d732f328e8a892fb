// SPDX-License-Identifier: MIT
package settings_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/settings"
	"github.com/stretchr/testify/require"
)

func TestDefaultParses(t *testing.T) {
	s := settings.Default(3)
	p, err := s.Parse(3)
	require.NoError(t, err)

	require.Equal(t, []bool{true, true, true}, p.Active)
	require.Equal(t, []bool{false, false, false}, p.Stimulated)
	require.Equal(t, 4e-11, p.CurrentAmplitude)
	require.Equal(t, 1.0, p.PulseWidth)
	require.Equal(t, settings.AllLayers(), p.Layers)
	require.Empty(t, p.Silenced())
	require.Empty(t, p.StimulatedNeurons())
	for k := range p.Neuron {
		require.Nil(t, p.Neuron[k])
	}
}

func TestParseOverrides(t *testing.T) {
	s := settings.Default(3)
	s.Active[1] = false
	s.Stimulated[0] = true
	s.Stimulated[2] = true
	s.CurrentAmplitude = " 2.5e-11 "
	s.Neuron.GK1 = []string{"", "1e-9", ""}
	s.SetConnection(settings.Connection{From: 0, To: 2, Connected: true, GGlu: "1e-9", Uex2: "0.02"})

	p, err := s.Parse(3)
	require.NoError(t, err)
	require.Equal(t, []int{1}, p.Silenced())
	require.Equal(t, []int{0, 2}, p.StimulatedNeurons())
	require.Equal(t, 2.5e-11, p.CurrentAmplitude)
	require.Equal(t, settings.Overrides{1: 1e-9}, p.Neuron[settings.ParamGK1])
	require.Nil(t, p.Neuron[settings.ParamC])

	require.Len(t, p.Connections, 1)
	c := p.Connections[0]
	require.Equal(t, 0, c.From)
	require.Equal(t, 2, c.To)
	require.True(t, c.Connected)
	require.Equal(t, map[settings.CouplingParam]float64{
		settings.CouplingGGlu: 1e-9,
		settings.CouplingUex2: 0.02,
	}, c.Coupling)
}

func TestParseErrorNamesField(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(s *settings.Settings)
		field string
	}{
		{"amplitude", func(s *settings.Settings) { s.CurrentAmplitude = "4e-11A" }, "current_amplitude"},
		{"pulse", func(s *settings.Settings) { s.PulseWidth = "one" }, "pulse_width"},
		{"negative pulse", func(s *settings.Settings) { s.PulseWidth = "-1" }, "pulse_width"},
		{"neuron", func(s *settings.Settings) { s.Neuron.UK2 = []string{"", "", "0,03"} }, "neuron.UK2[2]"},
		{"non-finite", func(s *settings.Settings) { s.Neuron.C = []string{"NaN", "", ""} }, "neuron.C[0]"},
		{"connection", func(s *settings.Settings) {
			s.SetConnection(settings.Connection{From: 1, To: 0, EMo: "abc"})
		}, "connections[0].EMo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := settings.Default(3)
			tc.edit(s)
			_, err := s.Parse(3)
			require.ErrorIs(t, err, settings.ErrConfigParse)

			var pe *settings.ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tc.field, pe.Field)
			require.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestParseShapeAndIndexErrors(t *testing.T) {
	s := settings.Default(3)
	s.Neuron.EL = []string{"-0.06"}
	_, err := s.Parse(3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	s = settings.Default(3)
	_, err = s.Parse(4)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	s = settings.Default(3)
	s.Connections = []settings.Connection{{From: 0, To: 3}}
	_, err = s.Parse(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	s = settings.Default(3)
	s.Connections = []settings.Connection{{From: 0, To: 1}, {From: 1, To: 0}, {From: 0, To: 1, GACh: "1"}}
	_, err = s.Parse(3)
	require.ErrorIs(t, err, settings.ErrDuplicateConnection)
}

func TestSetConnectionReplaces(t *testing.T) {
	s := settings.Default(2)
	s.SetConnection(settings.Connection{From: 0, To: 1, GMo: "1"})
	s.SetConnection(settings.Connection{From: 1, To: 0})
	s.SetConnection(settings.Connection{From: 0, To: 1, GMo: "2"})

	require.Len(t, s.Connections, 2)
	c, ok := s.Connection(0, 1)
	require.True(t, ok)
	require.Equal(t, "2", c.GMo)
	_, ok = s.Connection(1, 1)
	require.False(t, ok)
}

func TestReadKeepsDefaults(t *testing.T) {
	doc := `
stimulated: [true, false]
layers:
  gaba: false
connections:
  - from: 1
    to: 0
    connected: true
    gGABA: "1e-9"
`
	s, err := settings.Read(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, settings.DefaultCurrentAmplitude, s.CurrentAmplitude)
	require.Equal(t, settings.DefaultPulseWidth, s.PulseWidth)
	require.False(t, s.Layers.GABA)
	require.True(t, s.Layers.Glu)
	require.True(t, s.Layers.El)

	p, err := s.Parse(2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true}, p.Active)
	require.Equal(t, []int{0}, p.StimulatedNeurons())

	// JSON is accepted as well.
	s, err = settings.Read(strings.NewReader(`{"current_amplitude": "1e-12", "circuit": "motor"}`))
	require.NoError(t, err)
	require.Equal(t, "1e-12", s.CurrentAmplitude)
	require.Equal(t, "motor", s.Circuit)

	_, err = settings.Read(strings.NewReader("amplitude: 3\n"))
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := settings.Default(2)
	s.Active[0] = false
	s.Neuron.FK = []string{"", "0.5"}
	s.Layers.NP = false
	s.Circuit = "inter"
	s.SetConnection(settings.Connection{From: 0, To: 1, Connected: true, Us1: "-0.02"})

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := settings.Load(path)
	require.NoError(t, err)
	require.Equal(t, s, got)

	_, err = settings.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParamNames(t *testing.T) {
	require.Equal(t, "GCa1", settings.ParamGCa1.String())
	require.Equal(t, "Uex2", settings.CouplingUex2.String())
	require.Equal(t, "NeuronParam(99)", settings.NeuronParam(99).String())
}
