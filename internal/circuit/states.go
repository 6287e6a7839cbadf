package circuit

import (
	"fmt"
	"math"
)

// Build constructs the preparation circuit for a state family. Custom
// parameters are family-specific (e.g. lattice topology and entangling angle
// for CLUSTER) and assumed validated by the configuration core.
func Build(family string, numQubits int, custom map[string]any) (*Circuit, error) {
	switch family {
	case "GHZ":
		return GHZ(numQubits), nil
	case "W":
		return WState(numQubits), nil
	case "CLUSTER":
		lattice := "1d"
		if v, ok := custom["lattice"].(string); ok {
			lattice = v
		}
		angle := 0.0
		if v, ok := custom["angle"].(float64); ok {
			angle = v
		}
		return Cluster(numQubits, lattice, angle), nil
	default:
		return nil, fmt.Errorf("no circuit builder for state family: %s", family)
	}
}

// GHZ prepares (|0...0> + |1...1>)/√2: Hadamard on qubit 0, then a CNOT
// chain fanning the superposition out.
func GHZ(n int) *Circuit {
	c := New(n)
	c.H(0)
	for q := 1; q < n; q++ {
		c.CX(0, q)
	}
	return c
}

// WState prepares the equal superposition of all single-excitation basis
// states. The excitation starts on qubit 0 and is distributed down the
// register with controlled rotations followed by CNOTs.
func WState(n int) *Circuit {
	c := New(n)
	c.X(0)
	for k := 0; k < n-1; k++ {
		// Keep amplitude sqrt(1/(n-k)) on qubit k, pass the rest on.
		theta := 2 * math.Acos(math.Sqrt(1.0/float64(n-k)))
		c.CRY(theta, k, k+1)
		c.CX(k+1, k)
	}
	return c
}

// Cluster prepares a cluster state on a 1d chain or a 2d grid: Hadamard on
// every qubit, controlled-Z between lattice neighbors, and an optional RZ
// layer when an entangling angle is supplied.
func Cluster(n int, lattice string, angle float64) *Circuit {
	c := New(n)
	for q := 0; q < n; q++ {
		c.H(q)
	}

	if lattice == "2d" && n > 2 {
		rows := int(math.Floor(math.Sqrt(float64(n))))
		if rows < 1 {
			rows = 1
		}
		cols := (n + rows - 1) / rows
		for q := 0; q < n; q++ {
			if (q+1)%cols != 0 && q+1 < n {
				c.CZ(q, q+1)
			}
			if q+cols < n {
				c.CZ(q, q+cols)
			}
		}
	} else {
		for q := 0; q < n-1; q++ {
			c.CZ(q, q+1)
		}
	}

	if angle != 0 {
		for q := 0; q < n; q++ {
			c.RZ(angle, q)
		}
	}

	return c
}
