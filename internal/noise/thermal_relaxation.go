package noise

import (
	"math"

	"github.com/rs/zerolog"
)

// thermalGateTime is the assumed gate duration used to convert relaxation
// times into per-gate decay probabilities.
const thermalGateTime = 100e-9 // seconds

// ThermalRelaxation models combined energy relaxation (T1) and dephasing
// (T2). Single-qubit, parameterized by (t1, t2) already validated as
// strictly positive with t2 <= t1.
type ThermalRelaxation struct {
	base
}

// NewThermalRelaxation creates the thermal relaxation model.
func NewThermalRelaxation(log zerolog.Logger) *ThermalRelaxation {
	return &ThermalRelaxation{base: newBase(FamilyThermalRelaxation, log)}
}

func (*ThermalRelaxation) Family() string { return FamilyThermalRelaxation }

func (*ThermalRelaxation) SingleQubitOnly() bool { return true }

func (*ThermalRelaxation) RequiredParams() []string { return []string{"t1", "t2"} }

// Apply attaches the relaxation channel to the single-qubit gates in gates.
//
// The channel composes amplitude damping with rate 1-exp(-tg/T1) and pure
// dephasing chosen so the total coherence decay over one gate matches
// exp(-tg/T2). With t2 <= t1 both rates stay in [0,1).
func (m *ThermalRelaxation) Apply(em *ErrorModel, gates []string, p Params) ChannelSpec {
	eligible := FilterByArity(gates, AritySingle)
	spec := ChannelSpec{
		Family: FamilyThermalRelaxation,
		Gates:  eligible,
		Params: map[string]float64{"t1": p.T1, "t2": p.T2},
	}

	if len(eligible) == 0 {
		spec.SkipReason = "no eligible single-qubit gates"
		m.record(spec, gates)
		return spec
	}

	tg := thermalGateTime
	gamma := 1 - math.Exp(-tg/p.T1)
	lambda := 1 - math.Exp(tg/p.T1-2*tg/p.T2)

	kraus := []Matrix{
		mat2(1, 0, 0, complex(math.Sqrt((1-gamma)*(1-lambda)), 0)),
		mat2(0, complex(math.Sqrt(gamma), 0), 0, 0),
		mat2(0, 0, 0, complex(math.Sqrt((1-gamma)*lambda), 0)),
	}

	em.Add(Channel{Family: FamilyThermalRelaxation, Qubits: 1, Kraus: kraus}, eligible)
	spec.Applied = true
	m.record(spec, gates)
	return spec
}
