package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// PhaseFlip models dephasing as a probabilistic Z error. Single-qubit,
// parameterized by the (z_prob, i_prob) pair, which must already satisfy the
// probability simplex before this model is invoked.
type PhaseFlip struct {
	base
}

// NewPhaseFlip creates the phase flip model.
func NewPhaseFlip(log zerolog.Logger) *PhaseFlip {
	return &PhaseFlip{base: newBase(FamilyPhaseFlip, log)}
}

func (*PhaseFlip) Family() string { return FamilyPhaseFlip }

func (*PhaseFlip) SingleQubitOnly() bool { return true }

func (*PhaseFlip) RequiredParams() []string { return []string{"z_prob", "i_prob"} }

// Apply attaches the phase flip channel to the single-qubit gates in gates.
func (m *PhaseFlip) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	eligible := FilterByArity(gates, AritySingle)
	spec := ChannelSpec{
		Family: FamilyPhaseFlip,
		Gates:  eligible,
		Params: map[string]float64{"z_prob": p.ZProb, "i_prob": p.IProb},
	}

	if len(eligible) == 0 {
		spec.SkipReason = "no eligible single-qubit gates"
		m.record(spec, gates)
		return spec
	}

	kraus := []Matrix{
		scale(pauliI, math.Sqrt(p.IProb)),
		scale(pauliZ, math.Sqrt(p.ZProb)),
	}

	em.Add(Channel{Family: FamilyPhaseFlip, Qubits: 1, Kraus: kraus}, eligible)
	spec.Applied = true
	m.record(spec, gates)
	return spec
}
