package simulator

import (
	"testing"

	"github.com/aristath/qlab/internal/circuit"
	"github.com/aristath/qlab/internal/noise"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trace(rho [][]complex128) float64 {
	var tr float64
	for i := range rho {
		tr += real(rho[i][i])
	}
	return tr
}

func purity(rho [][]complex128) float64 {
	// Tr(rho^2) for Hermitian rho.
	var p complex128
	dim := len(rho)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			p += rho[i][j] * rho[j][i]
		}
	}
	return real(p)
}

func TestEvolveDensity_PureGHZ(t *testing.T) {
	rho, err := evolveDensity(circuit.GHZ(2), nil)
	require.NoError(t, err)

	assert.InDelta(t, 1, trace(rho), 1e-12)
	assert.InDelta(t, 1, purity(rho), 1e-12)

	// (|00>+|11>)/sqrt2: all four corner entries equal 0.5.
	assert.InDelta(t, 0.5, real(rho[0][0]), 1e-12)
	assert.InDelta(t, 0.5, real(rho[3][3]), 1e-12)
	assert.InDelta(t, 0.5, real(rho[0][3]), 1e-12)
	assert.InDelta(t, 0.5, real(rho[3][0]), 1e-12)
}

func TestEvolveDensity_MatchesVectorPath(t *testing.T) {
	qc := circuit.WState(3)

	amps, err := evolveVector(qc)
	require.NoError(t, err)
	want := outer(amps)

	rho, err := evolveDensity(qc, nil)
	require.NoError(t, err)

	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, real(want[i][j]), real(rho[i][j]), 1e-12)
			assert.InDelta(t, imag(want[i][j]), imag(rho[i][j]), 1e-12)
		}
	}
}

func TestEvolveDensity_NoiseReducesPurity(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	catalog := noise.NewCatalog(log)

	qc := circuit.GHZ(2)
	em := noise.NewErrorModel()
	_, err := catalog.Apply(em, noise.FamilyDepolarizing, qc.GateNames(), noise.Params{ErrorRate: 0.2})
	require.NoError(t, err)

	rho, err := evolveDensity(qc, em)
	require.NoError(t, err)

	// A channel keeps the trace but mixes the state.
	assert.InDelta(t, 1, trace(rho), 1e-10)
	assert.Less(t, purity(rho), 0.999)
}

func TestEvolveDensity_SkipsArityMismatchedChannels(t *testing.T) {
	// A single-qubit channel attached to a two-qubit gate identifier must
	// not be applied to that gate.
	qc := circuit.New(2)
	qc.H(0)
	qc.CX(0, 1)

	em := noise.NewErrorModel()
	em.Add(noise.Channel{
		Family: noise.FamilyBitFlip,
		Qubits: 1,
		Kraus:  []noise.Matrix{{{1, 0}, {0, 1}}},
	}, []string{"cx"})

	rho, err := evolveDensity(qc, em)
	require.NoError(t, err)
	assert.InDelta(t, 1, purity(rho), 1e-12)
}

func TestDiagonal(t *testing.T) {
	rho, err := evolveDensity(circuit.GHZ(2), nil)
	require.NoError(t, err)

	d := diagonal(rho)
	require.Len(t, d, 4)
	assert.InDelta(t, 0.5, d[0], 1e-12)
	assert.InDelta(t, 0, d[1], 1e-12)
	assert.InDelta(t, 0, d[2], 1e-12)
	assert.InDelta(t, 0.5, d[3], 1e-12)
}

func TestApplyChannel_BitFlipMixes(t *testing.T) {
	// Full bit flip (p=1) on |0> gives |1>.
	rho := newDensity(1)
	ch := noise.Channel{
		Family: noise.FamilyBitFlip,
		Qubits: 1,
		Kraus:  []noise.Matrix{{{0, 1}, {1, 0}}},
	}

	out := applyChannel(rho, ch, []int{0})
	assert.InDelta(t, 0, real(out[0][0]), 1e-12)
	assert.InDelta(t, 1, real(out[1][1]), 1e-12)
}
