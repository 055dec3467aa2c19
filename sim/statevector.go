package sim

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"qlab/circuit"
)

// StateVector holds the 2^n amplitudes of an n-qubit register. Basis index i
// has qubit q set when i&(1<<q) != 0, so qubit 0 is the rightmost label bit.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0...0⟩ on numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]complex128, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Label returns the basis bit-string for index i, qubit n-1 leftmost.
func (s *StateVector) Label(i int) string {
	if s.NumQubits == 0 {
		return ""
	}
	b := strconv.FormatInt(int64(i), 2)
	return strings.Repeat("0", s.NumQubits-len(b)) + b
}

// ApplyGate applies a unitary gate. qubits lists controls first and the target last.
func (s *StateVector) ApplyGate(g circuit.GateType, qubits []int, angles []float64) error {
	target := qubits[len(qubits)-1]
	theta := 0.0
	if len(angles) > 0 {
		theta = angles[0]
	}
	switch g {
	case circuit.H:
		s.applyH(target)
	case circuit.X:
		s.applyX(target)
	case circuit.Y:
		s.applyY(target)
	case circuit.Z:
		s.applyPhase(target, -1)
	case circuit.S:
		s.applyPhase(target, 1i)
	case circuit.SDG:
		s.applyPhase(target, -1i)
	case circuit.T:
		s.applyPhase(target, cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.TDG:
		s.applyPhase(target, cmplx.Exp(complex(0, -math.Pi/4)))
	case circuit.RX:
		s.applyRX(target, theta)
	case circuit.RY:
		s.applyRY(target, theta)
	case circuit.RZ:
		s.applyRZ(target, theta)
	case circuit.P:
		s.applyPhase(target, cmplx.Exp(complex(0, theta)))
	case circuit.CX:
		s.applyMCX(qubits[:1], target)
	case circuit.CCX:
		s.applyMCX(qubits[:2], target)
	case circuit.CZ:
		s.applyCZ(qubits[0], target)
	case circuit.SWAP:
		s.applySWAP(qubits[0], target)
	default:
		return errors.Errorf("unsupported gate %q", g)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

// applyPhase multiplies the |1⟩ component of q by factor. Z, S, T and P are all phase gates.
func (s *StateVector) applyPhase(q int, factor complex128) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + js*b
			s.Amplitudes[j] = js*a + c*b
		}
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a - sn*b
			s.Amplitudes[j] = sn*a + c*b
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

// applyMCX flips target on every basis state where all controls are set.
func (s *StateVector) applyMCX(controls []int, target int) {
	n := len(s.Amplitudes)
	cMask := 0
	for _, c := range controls {
		cMask |= 1 << c
	}
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cMask == cMask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// probOne returns the probability of reading 1 on qubit q.
func (s *StateVector) probOne(q int) float64 {
	bit := 1 << q
	p := 0.0
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p += real(a * cmplx.Conj(a))
		}
	}
	return p
}

// Measure collapses qubit q and returns the observed bit.
func (s *StateVector) Measure(q int, rng *rand.Rand) int {
	p1 := s.probOne(q)
	outcome := 0
	if rng.Float64() < p1 {
		outcome = 1
	}
	s.project(q, outcome, p1)
	return outcome
}

// project keeps the branch where qubit q equals outcome and renormalizes.
func (s *StateVector) project(q, outcome int, p1 float64) {
	bit := 1 << q
	p := p1
	if outcome == 0 {
		p = 1 - p1
	}
	norm := complex(math.Sqrt(p), 0)
	for i := range s.Amplitudes {
		if (i&bit != 0) == (outcome == 1) {
			s.Amplitudes[i] /= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// Reset returns qubit q to |0⟩: it is measured and flipped when it read 1.
func (s *StateVector) Reset(q int, rng *rand.Rand) {
	if s.Measure(q, rng) == 1 {
		s.applyX(q)
	}
}

// Initialize resets qubits and prepares them in amps, where amps[k] belongs
// to the basis state whose j-th bit is the state of qubits[j].
func (s *StateVector) Initialize(qubits []int, amps []complex128, rng *rand.Rand) {
	for _, q := range qubits {
		s.Reset(q, rng)
	}
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}
	out := make([]complex128, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		if i&mask != 0 || a == 0 {
			continue
		}
		for k, v := range amps {
			j := i
			for pos, q := range qubits {
				if k&(1<<pos) != 0 {
					j |= 1 << q
				}
			}
			out[j] = a * v
		}
	}
	s.Amplitudes = out
}

// Probabilities returns |a_i|² for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Norm returns Σ|a_i|², which stays 1 for a valid state.
func (s *StateVector) Norm() float64 {
	sum := 0.0
	for _, p := range s.Probabilities() {
		sum += p
	}
	return sum
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, prob := range s.Probabilities() {
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}
