package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// PhaseDamping models loss of phase coherence without energy loss.
// Single-qubit, parameterized by one error rate.
type PhaseDamping struct {
	base
}

// NewPhaseDamping creates the phase damping model.
func NewPhaseDamping(log zerolog.Logger) *PhaseDamping {
	return &PhaseDamping{base: newBase(FamilyPhaseDamping, log)}
}

func (*PhaseDamping) Family() string { return FamilyPhaseDamping }

func (*PhaseDamping) SingleQubitOnly() bool { return true }

func (*PhaseDamping) RequiredParams() []string { return []string{"error_rate"} }

// Apply attaches the phase damping channel to the single-qubit gates in gates.
func (m *PhaseDamping) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	eligible := FilterByArity(gates, AritySingle)
	spec := ChannelSpec{
		Family: FamilyPhaseDamping,
		Gates:  eligible,
		Params: map[string]float64{"error_rate": p.ErrorRate},
	}

	if len(eligible) == 0 {
		spec.SkipReason = "no eligible single-qubit gates"
		m.record(spec, gates)
		return spec
	}

	lambda := p.ErrorRate
	kraus := []Matrix{
		mat2(1, 0, 0, complex(math.Sqrt(1-lambda), 0)),
		mat2(0, 0, 0, complex(math.Sqrt(lambda), 0)),
	}

	em.Add(Channel{Family: FamilyPhaseDamping, Qubits: 1, Kraus: kraus}, eligible)
	spec.Applied = true
	m.record(spec, gates)
	return spec
}
