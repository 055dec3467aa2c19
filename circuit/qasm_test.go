package circuit

import (
	"math"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamedCregs(t *testing.T) {
	qasm := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";

		qreg q[3];
		creg c0[1];
		creg c1[1];

		h q[1];
		cx q[1], q[2];
		cx q[0], q[1];
		h q[0];
		measure q[0] -> c0[0];
		measure q[1] -> c1[0];

		if(c1==1) x q[2];
		if(c0==1) z q[2];
	`)

	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, c.Ops, 8)
	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, 2, c.NumClbits())

	assert.Equal(t, CX, c.Ops[1].Gate)
	assert.Equal(t, []int{1, 2}, c.Ops[1].Qubits)

	x := c.Ops[6]
	assert.Equal(t, X, x.Gate)
	assert.Equal(t, []int{2}, x.Qubits)
	require.NotNil(t, x.Condition)
	assert.Equal(t, []int{1}, x.Condition.Clbits)
	assert.Equal(t, 1, x.Condition.Value)

	z := c.Ops[7]
	assert.Equal(t, Z, z.Gate)
	require.NotNil(t, z.Condition)
	assert.Equal(t, []int{0}, z.Condition.Clbits)
}

func TestParseRegisterBroadcast(t *testing.T) {
	qasm := heredoc.Doc(`
		OPENQASM 2.0;
		qreg q[2];
		creg c[2];
		h q;
		measure q -> c;
	`)

	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"h": 2, "measure": 2}, c.Count())
	assert.Equal(t, []int{1}, c.Ops[3].Qubits)
	assert.Equal(t, []int{1}, c.Ops[3].Clbits)
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want string
	}{
		{"unknown gate", "qreg q[1];\nfoo q[0];", "line 2"},
		{"unknown register", "qreg q[1];\nh r[0];", "unknown quantum register"},
		{"index out of range", "qreg q[1];\nh q[3];", "out of range"},
		{"bad parameter", "qreg q[1];\nrx(1+) q[0];", "invalid parameter"},
		{"measure size mismatch", "qreg q[2];\ncreg c[1];\nmeasure q -> c;", "2 qubits but 1 clbits"},
		{"unknown creg in if", "qreg q[1];\nif(d==1) x q[0];", "unknown classical register"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.qasm)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTeleportQASMRoundTrip(t *testing.T) {
	c := NewEmpty()
	alice := c.AddQuantumRegister("alice", 2)
	bob := c.AddQuantumRegister("bob", 1)
	ac := c.AddClassicalRegister("alice-c", 2)
	bc := c.AddClassicalRegister("bob-c", 1)

	c.InitializeReal([]float64{math.Sqrt(0.8), math.Sqrt(0.2)}, alice.Q(0)).
		H(alice.Q(1)).CX(alice.Q(1), bob.Q(0)).Barrier().
		CX(alice.Q(0), alice.Q(1)).H(alice.Q(0)).Barrier().
		MeasureRegister(alice, ac).
		X(bob.Q(0)).CIf(ac.C(1), 1).
		Z(bob.Q(0)).CIf(ac.C(0), 1).
		Measure(bob.Q(0), bc.C(0))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "qreg alice[2];")
	assert.Contains(t, qasm, "creg alice_c[2];")
	assert.Contains(t, qasm, "if(alice_c[1]==1) x bob[0];")
	assert.Contains(t, qasm, "measure bob[0] -> bob_c[0];")
	assert.Contains(t, qasm, "// initialize alice[0] amps=")

	c2, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, c2.Ops, len(c.Ops))
	for i := range c.Ops {
		assert.Equal(t, c.Ops[i].Kind, c2.Ops[i].Kind, "op %d", i)
		assert.Equal(t, c.Ops[i].Gate, c2.Ops[i].Gate, "op %d", i)
		assert.Equal(t, c.Ops[i].Qubits, c2.Ops[i].Qubits, "op %d", i)
		assert.Equal(t, c.Ops[i].Condition, c2.Ops[i].Condition, "op %d", i)
	}
	init := c2.Ops[0]
	require.Len(t, init.Amplitudes, 2)
	assert.InDelta(t, math.Sqrt(0.8), real(init.Amplitudes[0]), 1e-12)
	assert.InDelta(t, math.Sqrt(0.2), real(init.Amplitudes[1]), 1e-12)
	assert.NoError(t, c2.Validate())
}

func TestPiParamQASMRoundTrip(t *testing.T) {
	c := New(2, 0)
	c.RX(Radians(math.Pi/2), 0).RY(Radians(3*math.Pi/4), 1).RZ(Radians(-math.Pi), 0)

	qasm := c.ToQASM()
	for _, want := range []string{"rx(pi/2) q[0];", "ry(3*pi/4) q[1];", "rz(-pi) q[0];"} {
		assert.Contains(t, qasm, want)
	}

	c2, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, c2.Ops, 3)
	assert.InDelta(t, math.Pi/2, c2.Ops[0].Params[0].Value, 1e-10)
	assert.InDelta(t, 3*math.Pi/4, c2.Ops[1].Params[0].Value, 1e-10)
	assert.InDelta(t, -math.Pi, c2.Ops[2].Params[0].Value, 1e-10)
}

func TestSymbolicParamQASMRoundTrip(t *testing.T) {
	theta := ParameterVector("theta", 2)
	c := New(2, 0)
	c.RY(theta[0], 0).RY(theta[1], 1).RZ(theta[0], 1)

	qasm := c.ToQASM()
	assert.True(t, strings.Contains(qasm, "ry(theta[1]) q[1];"), qasm)

	c2, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, []string{"theta[0]", "theta[1]"}, c2.Parameters())
	assert.Same(t, c2.Ops[0].Params[0].Symbol, c2.Ops[2].Params[0].Symbol)
}

func TestPartialRegisterConditionRoundTrip(t *testing.T) {
	c := New(2, 3)
	c.Append(Op{
		Kind: KindGate, Gate: RX, Qubits: []int{1}, Params: []Param{{Value: math.Pi / 2}},
		Condition: &Condition{Clbits: []int{0, 2}, Value: 3},
	})
	c.H(0)

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "// c_if c[0],c[2]==3 rx(pi/2) q[1];\nh q[0];")
	for _, line := range strings.Split(qasm, "\n") {
		// no executable line carries the conditioned gate
		assert.NotEqual(t, "rx(pi/2) q[1];", line)
	}

	back, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, back.Ops, 2)
	assert.Equal(t, &Condition{Clbits: []int{0, 2}, Value: 3}, back.Ops[0].Condition)
	assert.Equal(t, RX, back.Ops[0].Gate)
	assert.Equal(t, []int{1}, back.Ops[0].Qubits)
	assert.Nil(t, back.Ops[1].Condition)
	assert.NoError(t, back.Validate())
}

func TestEmptyConditionQASM(t *testing.T) {
	c := New(1, 0)
	e := c.AddClassicalRegister("e", 0)
	c.X(0).CIfRegister(e, 0)

	var qasm string
	require.NotPanics(t, func() { qasm = c.ToQASM() })
	assert.Contains(t, qasm, "// c_if ==0 x q[0];")

	_, err := ParseQASM(qasm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c_if without classical bits")
}
