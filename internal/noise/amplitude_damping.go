package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// AmplitudeDamping models energy loss (qubit relaxation towards |0>).
// Single-qubit only, parameterized by one error rate in [0,1].
type AmplitudeDamping struct {
	base
}

// NewAmplitudeDamping creates the amplitude damping model.
func NewAmplitudeDamping(log zerolog.Logger) *AmplitudeDamping {
	return &AmplitudeDamping{base: newBase(FamilyAmplitudeDamping, log)}
}

func (*AmplitudeDamping) Family() string { return FamilyAmplitudeDamping }

func (*AmplitudeDamping) SingleQubitOnly() bool { return true }

func (*AmplitudeDamping) RequiredParams() []string { return []string{"error_rate"} }

// Apply attaches the damping channel to the single-qubit gates in gates.
// An empty eligible set is a logged skip, never a failure.
func (m *AmplitudeDamping) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	eligible := FilterByArity(gates, AritySingle)
	spec := ChannelSpec{
		Family: FamilyAmplitudeDamping,
		Gates:  eligible,
		Params: map[string]float64{"error_rate": p.ErrorRate},
	}

	if len(eligible) == 0 {
		spec.SkipReason = "no eligible single-qubit gates"
		m.record(spec, gates)
		return spec
	}

	gamma := p.ErrorRate
	kraus := []Matrix{
		mat2(1, 0, 0, complex(math.Sqrt(1-gamma), 0)),
		mat2(0, complex(math.Sqrt(gamma), 0), 0, 0),
	}

	em.Add(Channel{Family: FamilyAmplitudeDamping, Qubits: 1, Kraus: kraus}, eligible)
	spec.Applied = true
	m.record(spec, gates)
	return spec
}
