package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateArity(t *testing.T) {
	tests := []struct {
		gate string
		want string
	}{
		{"h", AritySingle},
		{"x", AritySingle},
		{"rz", AritySingle},
		{"sdg", AritySingle},
		{"cx", ArityMulti},
		{"cry", ArityMulti},
		{"ccx", ArityMulti},
		{"cswap", ArityMulti},
		// Unknown gates never qualify for single-qubit channels.
		{"frobnicate", ArityMulti},
		{"", ArityMulti},
	}

	for _, tt := range tests {
		t.Run(tt.gate, func(t *testing.T) {
			assert.Equal(t, tt.want, GateArity(tt.gate))
		})
	}
}

func TestGateQubits(t *testing.T) {
	assert.Equal(t, 1, GateQubits("h"))
	assert.Equal(t, 2, GateQubits("swap"))
	assert.Equal(t, 3, GateQubits("ccx"))
	assert.Equal(t, 0, GateQubits("nope"))
}

func TestFilterByArity_PreservesOrder(t *testing.T) {
	gates := []string{"cx", "h", "ry", "cz", "x"}
	assert.Equal(t, []string{"h", "ry", "x"}, FilterByArity(gates, AritySingle))
	assert.Equal(t, []string{"cx", "cz"}, FilterByArity(gates, ArityMulti))
}

func TestFilterByQubits(t *testing.T) {
	gates := []string{"h", "cx", "ccx", "cz"}
	assert.Equal(t, []string{"cx", "cz"}, FilterByQubits(gates, 2))
	assert.Equal(t, []string{"ccx"}, FilterByQubits(gates, 3))
	assert.Nil(t, FilterByQubits([]string{"h"}, 2))
}
