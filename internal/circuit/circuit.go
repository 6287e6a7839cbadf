// Package circuit provides a minimal quantum circuit model and builders for
// the supported state families.
package circuit

// Gate is one operation placed on the circuit. Qubits are listed
// control-first for controlled gates.
type Gate struct {
	Name   string
	Qubits []int
	Params []float64
}

// Circuit holds an ordered gate sequence over a fixed qubit register.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// New creates an empty circuit over n qubits.
func New(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Add appends a gate to the circuit.
func (c *Circuit) Add(name string, params []float64, qubits ...int) {
	c.Gates = append(c.Gates, Gate{Name: name, Qubits: qubits, Params: params})
}

// I appends an identity gate.
func (c *Circuit) I(q int) { c.Add("id", nil, q) }

// H appends a Hadamard gate.
func (c *Circuit) H(q int) { c.Add("h", nil, q) }

// X appends a Pauli-X gate.
func (c *Circuit) X(q int) { c.Add("x", nil, q) }

// RY appends a Y-axis rotation.
func (c *Circuit) RY(theta float64, q int) { c.Add("ry", []float64{theta}, q) }

// RZ appends a Z-axis rotation.
func (c *Circuit) RZ(theta float64, q int) { c.Add("rz", []float64{theta}, q) }

// CX appends a controlled-X gate.
func (c *Circuit) CX(control, target int) { c.Add("cx", nil, control, target) }

// CZ appends a controlled-Z gate.
func (c *Circuit) CZ(a, b int) { c.Add("cz", nil, a, b) }

// CRY appends a controlled Y-axis rotation.
func (c *Circuit) CRY(theta float64, control, target int) {
	c.Add("cry", []float64{theta}, control, target)
}

// GateNames returns the distinct gate identifiers used by the circuit, in
// first-use order. This is the operation set noise channels are matched
// against.
func (c *Circuit) GateNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range c.Gates {
		if !seen[g.Name] {
			seen[g.Name] = true
			out = append(out, g.Name)
		}
	}
	return out
}
