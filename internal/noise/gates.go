package noise

// Gate arity classes. Anything that is not a known single-qubit gate is
// classified as multi-qubit/other and excluded from single-qubit-only
// channels.
const (
	AritySingle = "single"
	ArityMulti  = "multi"
)

// gateQubits maps known gate identifiers to the number of qubits they act on.
var gateQubits = map[string]int{
	"id": 1, "x": 1, "y": 1, "z": 1, "h": 1, "s": 1, "sdg": 1, "t": 1, "tdg": 1,
	"rx": 1, "ry": 1, "rz": 1, "u1": 1, "u2": 1, "u3": 1,
	"cx": 2, "cy": 2, "cz": 2, "swap": 2, "crx": 2, "cry": 2, "crz": 2,
	"ccx": 3, "cswap": 3,
}

// GateQubits returns the qubit count of a gate identifier, 0 when unknown.
func GateQubits(gate string) int {
	return gateQubits[gate]
}

// GateArity classifies a gate identifier as single- or multi-qubit. Unknown
// gates count as multi/other so single-qubit channels never attach to them.
func GateArity(gate string) string {
	if gateQubits[gate] == 1 {
		return AritySingle
	}
	return ArityMulti
}

// FilterByArity returns the subset of gates with the requested arity,
// preserving order.
func FilterByArity(gates []string, arity string) []string {
	var out []string
	for _, g := range gates {
		if GateArity(g) == arity {
			out = append(out, g)
		}
	}
	return out
}

// FilterByQubits returns the subset of gates acting on exactly n qubits.
func FilterByQubits(gates []string, n int) []string {
	var out []string
	for _, g := range gates {
		if gateQubits[g] == n {
			out = append(out, g)
		}
	}
	return out
}
