package simulator

import (
	"math/cmplx"

	"github.com/aristath/qlab/internal/circuit"
	"github.com/aristath/qlab/internal/noise"
)

// newDensity returns |0...0><0...0| over n qubits.
func newDensity(n int) [][]complex128 {
	dim := 1 << n
	rho := make([][]complex128, dim)
	for i := range rho {
		rho[i] = make([]complex128, dim)
	}
	rho[0][0] = 1
	return rho
}

// outer returns |psi><psi| for a state vector.
func outer(amps []complex128) [][]complex128 {
	dim := len(amps)
	rho := make([][]complex128, dim)
	for i := range rho {
		rho[i] = make([]complex128, dim)
		for j := range rho[i] {
			rho[i][j] = amps[i] * cmplx.Conj(amps[j])
		}
	}
	return rho
}

// applyOperator maps rho to A rho A† for an operator A on the listed qubits:
// A is applied down the columns, then its conjugate along the rows.
func applyOperator(rho [][]complex128, m noise.Matrix, qubits []int) {
	dim := len(rho)

	// A rho: transform each column vector.
	col := make([]complex128, dim)
	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			col[i] = rho[i][j]
		}
		applyToVector(col, m, qubits)
		for i := 0; i < dim; i++ {
			rho[i][j] = col[i]
		}
	}

	// (A rho) A†: transform each row vector with conj(A).
	mc := conjMatrix(m)
	for i := 0; i < dim; i++ {
		applyToVector(rho[i], mc, qubits)
	}
}

func conjMatrix(m noise.Matrix) noise.Matrix {
	out := make(noise.Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		for j, v := range row {
			out[i][j] = cmplx.Conj(v)
		}
	}
	return out
}

// applyChannel maps rho to the Kraus sum Σ K rho K† on the listed qubits.
func applyChannel(rho [][]complex128, ch noise.Channel, qubits []int) [][]complex128 {
	dim := len(rho)
	out := make([][]complex128, dim)
	for i := range out {
		out[i] = make([]complex128, dim)
	}

	for _, k := range ch.Kraus {
		term := cloneDensity(rho)
		applyOperator(term, k, qubits)
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				out[i][j] += term[i][j]
			}
		}
	}

	return out
}

func cloneDensity(rho [][]complex128) [][]complex128 {
	out := make([][]complex128, len(rho))
	for i, row := range rho {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

// evolveDensity runs the circuit on a fresh density matrix, applying any
// channels the error model attaches to each executed gate.
func evolveDensity(qc *circuit.Circuit, em *noise.ErrorModel) ([][]complex128, error) {
	rho := newDensity(qc.NumQubits)
	for _, g := range qc.Gates {
		m, err := gateMatrix(g)
		if err != nil {
			return nil, err
		}
		applyOperator(rho, m, g.Qubits)

		if em == nil {
			continue
		}
		for _, ch := range em.ChannelsFor(g.Name) {
			if ch.Qubits != len(g.Qubits) {
				continue
			}
			rho = applyChannel(rho, ch, g.Qubits)
		}
	}
	return rho, nil
}

// diagonal extracts the real diagonal of rho, the measurement distribution.
func diagonal(rho [][]complex128) []float64 {
	out := make([]float64, len(rho))
	for i := range rho {
		out[i] = real(rho[i][i])
	}
	return out
}
