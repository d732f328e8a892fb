// SPDX-License-Identifier: MIT

package connectome

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/neurowave/matrix"
	"github.com/katalvlaran/neurowave/numeric"
	"gopkg.in/yaml.v3"
)

// DefaultNeuronCount is the size of the bundled C. elegans connectome.
const DefaultNeuronCount = 279

// GroupAll is always present and lists every neuron.
const GroupAll = "all"

//go:embed data/celegans_groups.yaml
var celegansGroups []byte

// ErrUnknownGroup is returned for a group name absent from the table.
var ErrUnknownGroup = errors.New("connectome: unknown neuron group")

// Groups is a table of named neuron index sets.
type Groups struct {
	members map[string][]int
}

type groupsFile struct {
	Groups map[string]groupSpec `yaml:"groups"`
}

// groupSpec lists members explicitly or as an inclusive [lo, hi] range.
type groupSpec struct {
	Members []int `yaml:"members"`
	Range   []int `yaml:"range"`
}

// ParseGroups decodes a YAML group table and validates every index against
// n neurons. Members are sorted and de-duplicated. A missing "all" group is
// added.
func ParseGroups(r io.Reader, n int) (*Groups, error) {
	var doc groupsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode groups: %w", err)
	}

	g := &Groups{members: make(map[string][]int, len(doc.Groups)+1)}
	for name, spec := range doc.Groups {
		idx, err := spec.resolve()
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		for _, i := range idx {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("group %q: neuron %d not in [0,%d): %w", name, i, n, matrix.ErrOutOfRange)
			}
		}
		g.members[name] = normalize(idx)
	}
	if _, ok := g.members[GroupAll]; !ok {
		all, err := allGroup(n)
		if err != nil {
			return nil, err
		}
		g.members[GroupAll] = all.members[GroupAll]
	}

	return g, nil
}

// DefaultGroups returns the bundled C. elegans table.
func DefaultGroups() (*Groups, error) {
	return ParseGroups(bytes.NewReader(celegansGroups), DefaultNeuronCount)
}

func (s groupSpec) resolve() ([]int, error) {
	switch {
	case len(s.Range) == 0:
		return s.Members, nil
	case len(s.Members) != 0:
		return nil, errors.New("members and range are exclusive")
	case len(s.Range) != 2:
		return nil, fmt.Errorf("range needs [lo, hi], got %d values", len(s.Range))
	}
	r, err := numeric.RangeFill(float64(s.Range[0]), 1, float64(s.Range[1]))
	if err != nil {
		return nil, err
	}
	row, _ := r.RowView(0)
	out := make([]int, len(row))
	for i, v := range row {
		out[i] = int(v)
	}
	return out, nil
}

func allGroup(n int) (*Groups, error) {
	spec := groupSpec{Range: []int{0, n - 1}}
	idx, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	return &Groups{members: map[string][]int{GroupAll: idx}}, nil
}

func normalize(idx []int) []int {
	out := append([]int(nil), idx...)
	sort.Ints(out)
	w := 0
	for i, v := range out {
		if i == 0 || v != out[w-1] {
			out[w] = v
			w++
		}
	}
	return out[:w]
}

// Names returns the group names in lexical order.
func (g *Groups) Names() []string {
	names := make([]string, 0, len(g.members))
	for name := range g.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns a copy of the sorted member indices of group name.
func (g *Groups) Members(name string) ([]int, error) {
	m, ok := g.members[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownGroup)
	}
	return append([]int(nil), m...), nil
}
