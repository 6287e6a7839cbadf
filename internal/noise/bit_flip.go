package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// BitFlip models a probabilistic X error. Single-qubit, parameterized by one
// error rate.
type BitFlip struct {
	base
}

// NewBitFlip creates the bit flip model.
func NewBitFlip(log zerolog.Logger) *BitFlip {
	return &BitFlip{base: newBase(FamilyBitFlip, log)}
}

func (*BitFlip) Family() string { return FamilyBitFlip }

func (*BitFlip) SingleQubitOnly() bool { return true }

func (*BitFlip) RequiredParams() []string { return []string{"error_rate"} }

// Apply attaches the bit flip channel to the single-qubit gates in gates.
func (m *BitFlip) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	eligible := FilterByArity(gates, AritySingle)
	spec := ChannelSpec{
		Family: FamilyBitFlip,
		Gates:  eligible,
		Params: map[string]float64{"error_rate": p.ErrorRate},
	}

	if len(eligible) == 0 {
		spec.SkipReason = "no eligible single-qubit gates"
		m.record(spec, gates)
		return spec
	}

	kraus := []Matrix{
		scale(pauliI, math.Sqrt(1-p.ErrorRate)),
		scale(pauliX, math.Sqrt(p.ErrorRate)),
	}

	em.Add(Channel{Family: FamilyBitFlip, Qubits: 1, Kraus: kraus}, eligible)
	spec.Applied = true
	m.record(spec, gates)
	return spec
}
