package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGHZ(t *testing.T) {
	c := GHZ(3)
	require.Len(t, c.Gates, 3)
	assert.Equal(t, Gate{Name: "h", Qubits: []int{0}}, c.Gates[0])
	assert.Equal(t, Gate{Name: "cx", Qubits: []int{0, 1}}, c.Gates[1])
	assert.Equal(t, Gate{Name: "cx", Qubits: []int{0, 2}}, c.Gates[2])
}

func TestGHZ_SingleQubit(t *testing.T) {
	c := GHZ(1)
	require.Len(t, c.Gates, 1)
	assert.Equal(t, "h", c.Gates[0].Name)
}

func TestWState(t *testing.T) {
	c := WState(3)
	require.Len(t, c.Gates, 5) // x + 2*(cry, cx)

	assert.Equal(t, "x", c.Gates[0].Name)

	// First rotation keeps amplitude 1/sqrt(3) on qubit 0.
	cry := c.Gates[1]
	require.Equal(t, "cry", cry.Name)
	assert.Equal(t, []int{0, 1}, cry.Qubits)
	require.Len(t, cry.Params, 1)
	assert.InDelta(t, 2*math.Acos(math.Sqrt(1.0/3)), cry.Params[0], 1e-12)

	assert.Equal(t, Gate{Name: "cx", Qubits: []int{1, 0}}, c.Gates[2])

	// Second rotation splits the remainder evenly between qubits 1 and 2.
	cry = c.Gates[3]
	require.Equal(t, "cry", cry.Name)
	assert.Equal(t, []int{1, 2}, cry.Qubits)
	assert.InDelta(t, 2*math.Acos(math.Sqrt(1.0/2)), cry.Params[0], 1e-12)
}

func TestCluster_1D(t *testing.T) {
	c := Cluster(4, "1d", 0)
	require.Len(t, c.Gates, 7) // 4 h + 3 cz

	for q := 0; q < 4; q++ {
		assert.Equal(t, "h", c.Gates[q].Name)
	}
	assert.Equal(t, []int{0, 1}, c.Gates[4].Qubits)
	assert.Equal(t, []int{1, 2}, c.Gates[5].Qubits)
	assert.Equal(t, []int{2, 3}, c.Gates[6].Qubits)
}

func TestCluster_2DGrid(t *testing.T) {
	// 4 qubits form a 2x2 grid: horizontal edges (0,1), (2,3) and vertical
	// edges (0,2), (1,3).
	c := Cluster(4, "2d", 0)

	var edges [][]int
	for _, g := range c.Gates {
		if g.Name == "cz" {
			edges = append(edges, g.Qubits)
		}
	}
	assert.ElementsMatch(t, [][]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}}, edges)
}

func TestCluster_AngleLayer(t *testing.T) {
	c := Cluster(2, "1d", math.Pi/4)

	var rz int
	for _, g := range c.Gates {
		if g.Name == "rz" {
			rz++
			assert.InDelta(t, math.Pi/4, g.Params[0], 1e-12)
		}
	}
	assert.Equal(t, 2, rz)
}

func TestBuild(t *testing.T) {
	c, err := Build("GHZ", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits)

	c, err = Build("CLUSTER", 3, map[string]any{"lattice": "1d", "angle": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits)

	_, err = Build("BELL", 2, nil)
	assert.Error(t, err)
}

func TestGateNames_FirstUseOrder(t *testing.T) {
	c := GHZ(4)
	assert.Equal(t, []string{"h", "cx"}, c.GateNames())

	c = WState(3)
	assert.Equal(t, []string{"x", "cry", "cx"}, c.GateNames())
}
