// Package noise implements the noise catalog: a registry of quantum error
// channel families, each able to build Kraus operators from validated
// parameters and attach them to the eligible gates of an error model.
package noise

import "fmt"

// Canonical noise family tokens.
const (
	FamilyDepolarizing      = "DEPOLARIZING"
	FamilyPhaseFlip         = "PHASE_FLIP"
	FamilyAmplitudeDamping  = "AMPLITUDE_DAMPING"
	FamilyPhaseDamping      = "PHASE_DAMPING"
	FamilyThermalRelaxation = "THERMAL_RELAXATION"
	FamilyBitFlip           = "BIT_FLIP"
)

// Params carries the resolved numeric channel parameters. Each family reads
// only the fields it declares; values are assumed validated upstream.
type Params struct {
	ErrorRate float64
	ZProb     float64
	IProb     float64
	T1        float64 // seconds
	T2        float64 // seconds
}

// Matrix is a dense complex matrix (row major slices). Kraus operators and
// gate unitaries share this representation.
type Matrix [][]complex128

// Channel is a quantum error channel expressed as Kraus operators acting on
// a fixed number of qubits.
type Channel struct {
	Family string
	Qubits int
	Kraus  []Matrix
}

// ChannelSpec is the structured record of one channel application: the
// family, the resolved gate target set, and the parameters used. Applied is
// false when no eligible gates remained and the attachment was skipped.
type ChannelSpec struct {
	Family     string             `json:"family"`
	Gates      []string           `json:"gates"`
	Params     map[string]float64 `json:"params"`
	Applied    bool               `json:"applied"`
	SkipReason string             `json:"skip_reason,omitempty"`
}

// ErrorModel collects the channels attached to gate identifiers. The
// simulation backend consults it after every gate it executes.
type ErrorModel struct {
	channels map[string][]Channel
}

// NewErrorModel creates an empty error model.
func NewErrorModel() *ErrorModel {
	return &ErrorModel{channels: make(map[string][]Channel)}
}

// Add attaches a channel to all listed gates.
func (m *ErrorModel) Add(ch Channel, gates []string) {
	for _, g := range gates {
		m.channels[g] = append(m.channels[g], ch)
	}
}

// ChannelsFor returns the channels attached to a gate, nil when none.
func (m *ErrorModel) ChannelsFor(gate string) []Channel {
	return m.channels[gate]
}

// Empty reports whether no channels are attached at all.
func (m *ErrorModel) Empty() bool {
	return len(m.channels) == 0
}

// UnknownFamilyError reports a noise family the catalog has no model for.
type UnknownFamilyError struct {
	Family string
}

func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("unknown noise family: %s", e.Family)
}

// Pauli matrices, the building blocks for most channels.
var (
	pauliI = Matrix{{1, 0}, {0, 1}}
	pauliX = Matrix{{0, 1}, {1, 0}}
	pauliY = Matrix{{0, -1i}, {1i, 0}}
	pauliZ = Matrix{{1, 0}, {0, -1}}
)

func mat2(a, b, c, d complex128) Matrix {
	return Matrix{{a, b}, {c, d}}
}

// scale returns f*m.
func scale(m Matrix, f float64) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		for j, v := range row {
			out[i][j] = v * complex(f, 0)
		}
	}
	return out
}

// kron returns the Kronecker product a⊗b.
func kron(a, b Matrix) Matrix {
	ra, ca := len(a), len(a[0])
	rb, cb := len(b), len(b[0])
	out := make(Matrix, ra*rb)
	for i := range out {
		out[i] = make([]complex128, ca*cb)
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			for k := 0; k < rb; k++ {
				for l := 0; l < cb; l++ {
					out[i*rb+k][j*cb+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}
