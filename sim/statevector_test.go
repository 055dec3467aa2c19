package sim

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlab/circuit"
)

const tol = 1e-12

func assertAmps(t *testing.T, want []complex128, sv *StateVector) {
	t.Helper()
	require.Len(t, sv.Amplitudes, len(want))
	for i := range want {
		assert.InDelta(t, 0, cmplx.Abs(want[i]-sv.Amplitudes[i]), tol, "amplitude %d: want %v, got %v", i, want[i], sv.Amplitudes[i])
	}
}

func TestSingleQubitGates(t *testing.T) {
	r := complex(1/math.Sqrt2, 0)
	tests := []struct {
		name  string
		gates func(*StateVector)
		want  []complex128
	}{
		{"H", func(s *StateVector) { s.ApplyGate(circuit.H, []int{0}, nil) }, []complex128{r, r}},
		{"X", func(s *StateVector) { s.ApplyGate(circuit.X, []int{0}, nil) }, []complex128{0, 1}},
		{"Y", func(s *StateVector) { s.ApplyGate(circuit.Y, []int{0}, nil) }, []complex128{0, 1i}},
		{"HZ", func(s *StateVector) {
			s.ApplyGate(circuit.H, []int{0}, nil)
			s.ApplyGate(circuit.Z, []int{0}, nil)
		}, []complex128{r, -r}},
		{"XS", func(s *StateVector) {
			s.ApplyGate(circuit.X, []int{0}, nil)
			s.ApplyGate(circuit.S, []int{0}, nil)
		}, []complex128{0, 1i}},
		{"XP", func(s *StateVector) {
			s.ApplyGate(circuit.X, []int{0}, nil)
			s.ApplyGate(circuit.P, []int{0}, []float64{math.Pi / 2})
		}, []complex128{0, 1i}},
		{"XTT†", func(s *StateVector) {
			s.ApplyGate(circuit.X, []int{0}, nil)
			s.ApplyGate(circuit.T, []int{0}, nil)
			s.ApplyGate(circuit.TDG, []int{0}, nil)
		}, []complex128{0, 1}},
		{"RX(pi)", func(s *StateVector) { s.ApplyGate(circuit.RX, []int{0}, []float64{math.Pi}) }, []complex128{0, -1i}},
		{"RY(pi/2)", func(s *StateVector) { s.ApplyGate(circuit.RY, []int{0}, []float64{math.Pi / 2}) }, []complex128{r, r}},
		{"RZ(pi)", func(s *StateVector) { s.ApplyGate(circuit.RZ, []int{0}, []float64{math.Pi}) }, []complex128{-1i, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := NewStateVector(1)
			tt.gates(sv)
			assertAmps(t, tt.want, sv)
		})
	}
}

func TestMultiQubitGates(t *testing.T) {
	sv := NewStateVector(3)
	require.NoError(t, sv.ApplyGate(circuit.X, []int{0}, nil))
	require.NoError(t, sv.ApplyGate(circuit.X, []int{1}, nil))
	require.NoError(t, sv.ApplyGate(circuit.CCX, []int{0, 1, 2}, nil))
	assert.InDelta(t, 1, real(sv.Amplitudes[7]), tol)

	sv = NewStateVector(2)
	sv.ApplyGate(circuit.X, []int{0}, nil)
	sv.ApplyGate(circuit.SWAP, []int{0, 1}, nil)
	assertAmps(t, []complex128{0, 0, 1, 0}, sv)

	sv.ApplyGate(circuit.X, []int{0}, nil)
	sv.ApplyGate(circuit.CZ, []int{0, 1}, nil)
	assertAmps(t, []complex128{0, 0, 0, -1}, sv)

	assert.Error(t, sv.ApplyGate("U3", []int{0}, nil))
}

func TestLabel(t *testing.T) {
	sv := NewStateVector(3)
	assert.Equal(t, "000", sv.Label(0))
	assert.Equal(t, "001", sv.Label(1))
	assert.Equal(t, "110", sv.Label(6))
}

func TestMeasureCollapses(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for range 20 {
		sv := NewStateVector(2)
		sv.ApplyGate(circuit.H, []int{0}, nil)
		sv.ApplyGate(circuit.CX, []int{0, 1}, nil)
		b0 := sv.Measure(0, rng)
		// the partner qubit is now fixed
		assert.Equal(t, b0, sv.Measure(1, rng))
		assert.InDelta(t, 1, sv.Norm(), tol)
	}
}

func TestResetAndInitialize(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	sv := NewStateVector(1)
	sv.ApplyGate(circuit.X, []int{0}, nil)
	sv.Reset(0, rng)
	assertAmps(t, []complex128{1, 0}, sv)

	sv = NewStateVector(1)
	amps := []complex128{complex(math.Sqrt(0.8), 0), complex(math.Sqrt(0.2), 0)}
	sv.Initialize([]int{0}, amps, rng)
	assertAmps(t, amps, sv)

	// initializing one half of a Bell pair leaves the other half collapsed
	sv = NewStateVector(2)
	sv.ApplyGate(circuit.H, []int{0}, nil)
	sv.ApplyGate(circuit.CX, []int{0, 1}, nil)
	sv.Initialize([]int{0}, []complex128{0, 1}, rng)
	probs := sv.GetQubitProbabilities()
	assert.InDelta(t, 1, probs[0].Prob1, tol)
	assert.InDelta(t, 1, probs[1].Prob0+probs[1].Prob1, tol)
	assert.True(t, probs[1].Prob1 < tol || probs[1].Prob0 < tol)
	assert.InDelta(t, 1, sv.Norm(), tol)

	// two qubits in reverse order: amps[k] bit j belongs to qubits[j]
	sv = NewStateVector(2)
	sv.Initialize([]int{1, 0}, []complex128{0, 1, 0, 0}, rng)
	assertAmps(t, []complex128{0, 0, 1, 0}, sv)
}
