package simulator

import (
	"math"
	"testing"

	"github.com/aristath/qlab/internal/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvolveVector_GHZ(t *testing.T) {
	amps, err := evolveVector(circuit.GHZ(3))
	require.NoError(t, err)
	require.Len(t, amps, 8)

	f := 1 / math.Sqrt2
	assert.InDelta(t, f, real(amps[0]), 1e-12)
	assert.InDelta(t, f, real(amps[7]), 1e-12)
	for _, i := range []int{1, 2, 3, 4, 5, 6} {
		assert.InDelta(t, 0, real(amps[i]), 1e-12)
		assert.InDelta(t, 0, imag(amps[i]), 1e-12)
	}
}

func TestEvolveVector_WState(t *testing.T) {
	amps, err := evolveVector(circuit.WState(3))
	require.NoError(t, err)

	probs := probabilities(amps)

	// Exactly the three single-excitation basis states, each 1/3.
	assert.InDelta(t, 1.0/3, probs[1], 1e-12) // |001>
	assert.InDelta(t, 1.0/3, probs[2], 1e-12) // |010>
	assert.InDelta(t, 1.0/3, probs[4], 1e-12) // |100>
	for _, i := range []int{0, 3, 5, 6, 7} {
		assert.InDelta(t, 0, probs[i], 1e-12)
	}
}

func TestEvolveVector_ClusterNormalized(t *testing.T) {
	qc := circuit.Cluster(4, "2d", math.Pi/3)
	amps, err := evolveVector(qc)
	require.NoError(t, err)

	var total float64
	for _, p := range probabilities(amps) {
		total += p
	}
	assert.InDelta(t, 1, total, 1e-12)
}

func TestEvolveVector_UnsupportedGate(t *testing.T) {
	qc := circuit.New(1)
	qc.Add("u3", []float64{0.1, 0.2, 0.3}, 0)

	_, err := evolveVector(qc)
	assert.Error(t, err)
}

func TestApplyToVector_ControlFirst(t *testing.T) {
	// |10> (qubit 1 excited): cx with control 1, target 0 must flip qubit 0.
	amps := make([]complex128, 4)
	amps[2] = 1

	m, err := gateMatrix(circuit.Gate{Name: "cx"})
	require.NoError(t, err)

	applyToVector(amps, m, []int{1, 0})
	assert.InDelta(t, 1, real(amps[3]), 1e-12)
	assert.InDelta(t, 0, real(amps[2]), 1e-12)

	// Control unset leaves the state alone.
	amps = make([]complex128, 4)
	amps[1] = 1 // qubit 0 excited
	applyToVector(amps, m, []int{1, 0})
	assert.InDelta(t, 1, real(amps[1]), 1e-12)
}

func TestBitString(t *testing.T) {
	// Qubit 0 is the rightmost character.
	assert.Equal(t, "000", bitString(0, 3))
	assert.Equal(t, "001", bitString(1, 3))
	assert.Equal(t, "100", bitString(4, 3))
	assert.Equal(t, "111", bitString(7, 3))
	assert.Equal(t, "0101", bitString(5, 4))
}
