package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// Depolarizing models uniform Pauli noise. It targets both single- and
// two-qubit gates, parameterized by one error rate.
type Depolarizing struct {
	base
}

// NewDepolarizing creates the depolarizing model.
func NewDepolarizing(log zerolog.Logger) *Depolarizing {
	return &Depolarizing{base: newBase(FamilyDepolarizing, log)}
}

func (*Depolarizing) Family() string { return FamilyDepolarizing }

func (*Depolarizing) SingleQubitOnly() bool { return false }

func (*Depolarizing) RequiredParams() []string { return []string{"error_rate"} }

// Apply attaches a one-qubit channel to the single-qubit gates and a
// two-qubit channel to the two-qubit gates.
func (m *Depolarizing) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	single := FilterByArity(gates, AritySingle)
	double := FilterByQubits(gates, 2)

	spec := ChannelSpec{
		Family: FamilyDepolarizing,
		Gates:  append(append([]string{}, single...), double...),
		Params: map[string]float64{"error_rate": p.ErrorRate},
	}

	if len(single) == 0 && len(double) == 0 {
		spec.SkipReason = "no eligible gates"
		m.record(spec, gates)
		return spec
	}

	if len(single) > 0 {
		em.Add(Channel{Family: FamilyDepolarizing, Qubits: 1, Kraus: depolarizingKraus1(p.ErrorRate)}, single)
	}
	if len(double) > 0 {
		em.Add(Channel{Family: FamilyDepolarizing, Qubits: 2, Kraus: depolarizingKraus2(p.ErrorRate)}, double)
	}

	spec.Applied = true
	m.record(spec, gates)
	return spec
}

// depolarizingKraus1 builds the one-qubit channel: identity with weight
// 1-3p/4 and each non-identity Pauli with weight p/4.
func depolarizingKraus1(p float64) []Matrix {
	return []Matrix{
		scale(pauliI, math.Sqrt(1-3*p/4)),
		scale(pauliX, math.Sqrt(p/4)),
		scale(pauliY, math.Sqrt(p/4)),
		scale(pauliZ, math.Sqrt(p/4)),
	}
}

// depolarizingKraus2 builds the two-qubit channel over the 16 Pauli products.
func depolarizingKraus2(p float64) []Matrix {
	paulis := []Matrix{pauliI, pauliX, pauliY, pauliZ}
	kraus := make([]Matrix, 0, 16)
	for i, a := range paulis {
		for j, b := range paulis {
			w := p / 16
			if i == 0 && j == 0 {
				w = 1 - 15*p/16
			}
			kraus = append(kraus, scale(kron(a, b), math.Sqrt(w)))
		}
	}
	return kraus
}
