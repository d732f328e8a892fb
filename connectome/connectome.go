// SPDX-License-Identifier: MIT

// Package connectome loads and owns the static wiring of a nervous system:
// seven nN×nN adjacency layers (gap junction, three chemical transmitters,
// monoamine, neuropeptide and a zero "extra" layer for custom connections),
// the gap-junction incidence matrix and optional neuron-group and name tables.
//
// A Connectome is immutable after construction. Every accessor returns a copy,
// so editors may mutate what they receive.
package connectome

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
)

// Layer names one transmission type.
type Layer int

// Transmission layers, in storage order.
const (
	GapJunction Layer = iota
	ACh
	GABA
	Glu
	Monoamine
	Neuropeptide
	Extra
)

// NumLayers is the number of adjacency layers.
const NumLayers = 7

var layerNames = [NumLayers]string{"el", "ACh", "GABA", "Glu", "mon", "np", "extra"}

// String returns the short layer name used in logs and files.
func (l Layer) String() string {
	if l < 0 || int(l) >= NumLayers {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// Layers holds one matrix per Layer, indexed by Layer.
type Layers [NumLayers]*matrix.Dense

// Clone deep-copies every non-nil layer.
func (ls Layers) Clone() Layers {
	var out Layers
	for i, m := range ls {
		if m != nil {
			out[i] = m.Clone().(*matrix.Dense)
		}
	}
	return out
}

// Resource file names inside a connectome directory.
const (
	FileGapJunction  = "electrical_weights.csv"
	FileACh          = "ACh_weights.csv"
	FileGABA         = "GABA_weights.csv"
	FileGlu          = "Glu_weights.csv"
	FileMonoamine    = "A_mon.csv"
	FileNeuropeptide = "A_np.csv"
	FileGroups       = "groups.yaml"
	FileNames        = "neuron_names.txt"
)

var layerFiles = [...]struct {
	layer Layer
	file  string
}{
	{GapJunction, FileGapJunction},
	{ACh, FileACh},
	{GABA, FileGABA},
	{Glu, FileGlu},
	{Monoamine, FileMonoamine},
	{Neuropeptide, FileNeuropeptide},
}

// ErrMissingLayer is returned by New when a required layer is nil.
var ErrMissingLayer = errors.New("connectome: missing adjacency layer")

// Connectome is the loaded, immutable wiring.
type Connectome struct {
	layers    Layers
	incidence *matrix.Dense
	n         int
	groups    *Groups
	names     []string
}

// New builds a connectome from in-memory layers. Every layer except Extra is
// required; a nil Extra becomes the zero matrix. The inputs are copied.
// Groups default to the single "all" group.
func New(layers Layers) (*Connectome, error) {
	for l := GapJunction; l < Extra; l++ {
		if layers[l] == nil {
			return nil, fmt.Errorf("connectome: layer %s: %w", l, ErrMissingLayer)
		}
	}
	c := &Connectome{layers: layers.Clone()}
	if c.layers[Extra] == nil {
		extra, err := matrix.ZerosLike(c.layers[ACh])
		if err != nil {
			return nil, fmt.Errorf("connectome: %w", err)
		}
		c.layers[Extra] = extra
	}

	// All layers square and the same size.
	n := c.layers[GapJunction].Rows()
	for l, m := range c.layers {
		if err := matrix.ValidateSquare(m); err != nil {
			return nil, fmt.Errorf("connectome: layer %s: %w", Layer(l), err)
		}
		if m.Rows() != n {
			return nil, fmt.Errorf("connectome: layer %s is %dx%d, want %dx%d: %w",
				Layer(l), m.Rows(), m.Cols(), n, n, matrix.ErrDimensionMismatch)
		}
	}

	inc, err := numeric.IncidenceFromAdjacency(c.layers[GapJunction])
	if err != nil {
		return nil, fmt.Errorf("connectome: gap-junction incidence: %w", err)
	}
	c.incidence = inc
	c.n = inc.Rows()

	if c.groups, err = allGroup(c.n); err != nil {
		return nil, fmt.Errorf("connectome: %w", err)
	}

	return c, nil
}

// LoadDir is Load over os.DirFS(dir).
func LoadDir(dir string) (*Connectome, error) {
	return Load(os.DirFS(dir))
}

// Load reads the six adjacency resources from fsys and builds a Connectome.
// FileGroups and FileNames are optional. Without FileGroups, a 279-neuron
// connectome gets the bundled C. elegans groups and any other size gets "all".
func Load(fsys fs.FS) (*Connectome, error) {
	var layers Layers
	for _, lf := range layerFiles {
		m, err := readLayer(fsys, lf.file)
		if err != nil {
			return nil, err
		}
		layers[lf.layer] = m
	}
	c, err := New(layers)
	if err != nil {
		return nil, err
	}

	// Groups.
	switch f, err := fsys.Open(FileGroups); {
	case err == nil:
		g, perr := ParseGroups(f, c.n)
		_ = f.Close()
		if perr != nil {
			return nil, fmt.Errorf("connectome: %s: %w", FileGroups, perr)
		}
		c.groups = g
	case errors.Is(err, fs.ErrNotExist):
		if c.n == DefaultNeuronCount {
			if c.groups, err = DefaultGroups(); err != nil {
				return nil, fmt.Errorf("connectome: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("connectome: %s: %w", FileGroups, err)
	}

	// Names.
	switch f, err := fsys.Open(FileNames); {
	case err == nil:
		names, perr := parseNames(f, c.n)
		_ = f.Close()
		if perr != nil {
			return nil, fmt.Errorf("connectome: %s: %w", FileNames, perr)
		}
		c.names = names
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("connectome: %s: %w", FileNames, err)
	}

	return c, nil
}

func readLayer(fsys fs.FS, name string) (*matrix.Dense, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("connectome: %w", err)
	}
	defer f.Close()

	m, err := matrix.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("connectome: %s: %w", name, err)
	}
	return m, nil
}

// NeuronCount returns nN, the row count of the incidence matrix.
func (c *Connectome) NeuronCount() int { return c.n }

// Layer returns a copy of one adjacency layer.
func (c *Connectome) Layer(l Layer) *matrix.Dense {
	return c.layers[l].Clone().(*matrix.Dense)
}

// Layers returns copies of all seven layers.
func (c *Connectome) Layers() Layers { return c.layers.Clone() }

// Incidence returns a copy of the gap-junction incidence matrix (nN×edges).
func (c *Connectome) Incidence() *matrix.Dense {
	return c.incidence.Clone().(*matrix.Dense)
}

// Groups returns the neuron-group table.
func (c *Connectome) Groups() *Groups { return c.groups }

// Name returns the name of neuron i, or "" when no name table was loaded.
func (c *Connectome) Name(i int) string {
	if i < 0 || i >= len(c.names) {
		return ""
	}
	return c.names[i]
}

// Index returns the neuron index for name (case-insensitive).
func (c *Connectome) Index(name string) (int, bool) {
	for i, n := range c.names {
		if n != "" && strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}
