// SPDX-License-Identifier: MIT
package connectome_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/katalvlaran/neurowave/connectome"
	"github.com/katalvlaran/neurowave/matrix"
	"github.com/stretchr/testify/require"
)

// ring4 is a 4-neuron ring of gap junctions.
const ring4 = "0,1,0,1\n1,0,1,0\n0,1,0,1\n1,0,1,0\n"

// chem4 is a directed chemical layer.
const chem4 = "0,1,0,0\n0,0,1,0\n0,0,0,1\n1,0,0,0\n"

const zero4 = "0,0,0,0\n0,0,0,0\n0,0,0,0\n0,0,0,0\n"

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		connectome.FileGapJunction:  {Data: []byte(ring4)},
		connectome.FileACh:          {Data: []byte(chem4)},
		connectome.FileGABA:         {Data: []byte(zero4)},
		connectome.FileGlu:          {Data: []byte(chem4)},
		connectome.FileMonoamine:    {Data: []byte(zero4)},
		connectome.FileNeuropeptide: {Data: []byte(zero4)},
	}
}

func TestLoad(t *testing.T) {
	c, err := connectome.Load(fixtureFS())
	require.NoError(t, err)
	require.Equal(t, 4, c.NeuronCount())

	inc := c.Incidence()
	require.Equal(t, 4, inc.Rows())
	require.Equal(t, 4, inc.Cols()) // 8 nonzeros / 2

	extra := c.Layer(connectome.Extra)
	require.Equal(t, 4, extra.Rows())
	require.True(t, matrix.Equal(extra, c.Layer(connectome.GABA)))

	// Only the implicit "all" group for a non-default size.
	require.Equal(t, []string{connectome.GroupAll}, c.Groups().Names())
	all, err := c.Groups().Members(connectome.GroupAll)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, all)
}

func TestLayerCopiesAreIndependent(t *testing.T) {
	c, err := connectome.Load(fixtureFS())
	require.NoError(t, err)

	l := c.Layer(connectome.ACh)
	require.NoError(t, l.Set(0, 1, 42))

	again := c.Layer(connectome.ACh)
	v, err := again.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	layers := c.Layers()
	require.NoError(t, layers[connectome.GapJunction].Set(0, 1, 0))
	v, _ = c.Layer(connectome.GapJunction).At(0, 1)
	require.Equal(t, 1.0, v)
}

func TestLoadDimensionMismatch(t *testing.T) {
	fsys := fixtureFS()
	fsys[connectome.FileGABA] = &fstest.MapFile{Data: []byte("0,0,0\n0,0,0\n0,0,0\n")}

	_, err := connectome.Load(fsys)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLoadMissingFile(t *testing.T) {
	fsys := fixtureFS()
	delete(fsys, connectome.FileNeuropeptide)

	_, err := connectome.Load(fsys)
	require.Error(t, err)
	require.Contains(t, err.Error(), connectome.FileNeuropeptide)
}

func TestLoadGroupsAndNames(t *testing.T) {
	fsys := fixtureFS()
	fsys[connectome.FileGroups] = &fstest.MapFile{Data: []byte("groups:\n  left:\n    members: [2, 0, 0]\n  tail:\n    range: [2, 3]\n")}
	fsys[connectome.FileNames] = &fstest.MapFile{Data: []byte("ava;0\navb;1\n\nPVC;3\n")}

	c, err := connectome.Load(fsys)
	require.NoError(t, err)
	require.Equal(t, []string{"all", "left", "tail"}, c.Groups().Names())

	left, err := c.Groups().Members("left")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, left)

	tail, err := c.Groups().Members("tail")
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, tail)

	_, err = c.Groups().Members("pharynx")
	require.ErrorIs(t, err, connectome.ErrUnknownGroup)

	require.Equal(t, "AVA", c.Name(0))
	require.Equal(t, "", c.Name(2))
	idx, ok := c.Index("pvc")
	require.True(t, ok)
	require.Equal(t, 3, idx)
}

func TestParseGroupsRejectsOutOfRange(t *testing.T) {
	_, err := connectome.ParseGroups(strings.NewReader("groups:\n  bad:\n    members: [4]\n"), 4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = connectome.ParseGroups(strings.NewReader("groups:\n  bad:\n    members: [1]\n    range: [0, 1]\n"), 4)
	require.Error(t, err)
}

func TestDefaultGroups(t *testing.T) {
	g, err := connectome.DefaultGroups()
	require.NoError(t, err)
	require.Equal(t, []string{"all", "chemosensory", "inter", "locomotion", "motor", "sensory"}, g.Names())

	all, err := g.Members(connectome.GroupAll)
	require.NoError(t, err)
	require.Len(t, all, connectome.DefaultNeuronCount)

	motor, err := g.Members("motor")
	require.NoError(t, err)
	require.Len(t, motor, 123)
	require.Equal(t, 28, motor[0])
	require.Equal(t, 278, motor[len(motor)-1])
}

func TestNewRequiresLayers(t *testing.T) {
	_, err := connectome.New(connectome.Layers{})
	require.ErrorIs(t, err, connectome.ErrMissingLayer)
	require.Equal(t, "mon", connectome.Monoamine.String())
}
