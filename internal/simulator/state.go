// Package simulator implements the execution backend: it turns a validated
// experiment configuration into sampled measurement counts or an exact
// density matrix, attaching noise channels from the catalog along the way.
package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/aristath/qlab/internal/circuit"
	"github.com/aristath/qlab/internal/noise"
)

// newStateVector returns |0...0> over n qubits.
func newStateVector(n int) []complex128 {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return amps
}

// gateMatrix builds the unitary for a gate. Rotation angles default to 0
// when params are absent.
func gateMatrix(g circuit.Gate) (noise.Matrix, error) {
	theta := 0.0
	if len(g.Params) > 0 {
		theta = g.Params[0]
	}

	switch g.Name {
	case "id":
		return noise.Matrix{{1, 0}, {0, 1}}, nil
	case "x":
		return noise.Matrix{{0, 1}, {1, 0}}, nil
	case "y":
		return noise.Matrix{{0, -1i}, {1i, 0}}, nil
	case "z":
		return noise.Matrix{{1, 0}, {0, -1}}, nil
	case "h":
		f := complex(1/math.Sqrt2, 0)
		return noise.Matrix{{f, f}, {f, -f}}, nil
	case "s":
		return noise.Matrix{{1, 0}, {0, 1i}}, nil
	case "ry":
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return noise.Matrix{{c, -s}, {s, c}}, nil
	case "rz":
		return noise.Matrix{
			{cmplx.Exp(complex(0, -theta/2)), 0},
			{0, cmplx.Exp(complex(0, theta/2))},
		}, nil
	case "cx":
		return noise.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}, nil
	case "cz":
		return noise.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, nil
	case "cry":
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return noise.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, c, -s},
			{0, 0, s, c},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported gate: %s", g.Name)
	}
}

// applyToVector applies a 2^k x 2^k matrix to the listed qubits of the state
// vector in place. qubits[0] is the most significant bit of the matrix index,
// so controlled gates list the control first.
func applyToVector(amps []complex128, m noise.Matrix, qubits []int) {
	k := len(qubits)
	dim := 1 << k

	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}

	idx := make([]int, dim)
	buf := make([]complex128, dim)

	for base := range amps {
		if base&mask != 0 {
			continue
		}
		for li := 0; li < dim; li++ {
			g := base
			for j, q := range qubits {
				if li&(1<<(k-1-j)) != 0 {
					g |= 1 << q
				}
			}
			idx[li] = g
			buf[li] = amps[g]
		}
		for r := 0; r < dim; r++ {
			var acc complex128
			for c := 0; c < dim; c++ {
				acc += m[r][c] * buf[c]
			}
			amps[idx[r]] = acc
		}
	}
}

// evolveVector runs the circuit on a fresh |0...0> state.
func evolveVector(qc *circuit.Circuit) ([]complex128, error) {
	amps := newStateVector(qc.NumQubits)
	for _, g := range qc.Gates {
		m, err := gateMatrix(g)
		if err != nil {
			return nil, err
		}
		applyToVector(amps, m, g.Qubits)
	}
	return amps, nil
}

// probabilities returns |amp|^2 for every basis state.
func probabilities(amps []complex128) []float64 {
	out := make([]float64, len(amps))
	for i, a := range amps {
		out[i] = real(a * cmplx.Conj(a))
	}
	return out
}

// bitString formats a basis index with qubit 0 rightmost.
func bitString(idx, n int) string {
	b := make([]byte, n)
	for q := 0; q < n; q++ {
		if idx&(1<<q) != 0 {
			b[n-1-q] = '1'
		} else {
			b[n-1-q] = '0'
		}
	}
	return string(b)
}
