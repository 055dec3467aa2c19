package circuit

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/mohae/deepcopy"
)

// Circuit holds registers and the ordered list of instructions applied to them.
// Builders append without validation; Validate reports every problem at once.
type Circuit struct {
	Name  string
	QRegs []QuantumRegister
	CRegs []ClassicalRegister
	Ops   []Op

	// buildErrs collects misuse of the builder, such as CIf without a gate.
	buildErrs []error
}

// NewEmpty returns a circuit without registers.
func NewEmpty() *Circuit {
	return &Circuit{}
}

// New returns a circuit with a quantum register "q" and a classical register
// "c" of the given sizes. A zero size skips the register.
func New(numQubits, numClbits int) *Circuit {
	c := NewEmpty()
	if numQubits > 0 {
		c.AddQuantumRegister("q", numQubits)
	}
	if numClbits > 0 {
		c.AddClassicalRegister("c", numClbits)
	}
	return c
}

// AddQuantumRegister declares a quantum register after the existing ones.
func (c *Circuit) AddQuantumRegister(name string, size int) QuantumRegister {
	r := QuantumRegister{Name: name, Size: size, Offset: c.NumQubits()}
	c.QRegs = append(c.QRegs, r)
	return r
}

// AddClassicalRegister declares a classical register after the existing ones.
func (c *Circuit) AddClassicalRegister(name string, size int) ClassicalRegister {
	r := ClassicalRegister{Name: name, Size: size, Offset: c.NumClbits()}
	c.CRegs = append(c.CRegs, r)
	return r
}

// NumQubits returns the total number of declared qubits.
func (c *Circuit) NumQubits() int {
	n := 0
	for _, r := range c.QRegs {
		n += r.Size
	}
	return n
}

// NumClbits returns the total number of declared classical bits.
func (c *Circuit) NumClbits() int {
	n := 0
	for _, r := range c.CRegs {
		n += r.Size
	}
	return n
}

// QubitRegister returns the register owning flat qubit q and the position within it.
func (c *Circuit) QubitRegister(q int) (QuantumRegister, int, bool) {
	for _, r := range c.QRegs {
		if q >= r.Offset && q < r.Offset+r.Size {
			return r, q - r.Offset, true
		}
	}
	return QuantumRegister{}, 0, false
}

// ClbitRegister returns the register owning flat classical bit b and the position within it.
func (c *Circuit) ClbitRegister(b int) (ClassicalRegister, int, bool) {
	for _, r := range c.CRegs {
		if b >= r.Offset && b < r.Offset+r.Size {
			return r, b - r.Offset, true
		}
	}
	return ClassicalRegister{}, 0, false
}

// Append adds an already built op.
func (c *Circuit) Append(op Op) *Circuit {
	c.Ops = append(c.Ops, op)
	return c
}

func (c *Circuit) gate(g GateType, params []Param, qubits ...int) *Circuit {
	return c.Append(Op{Kind: KindGate, Gate: g, Qubits: qubits, Params: params})
}

func (c *Circuit) H(q int) *Circuit   { return c.gate(H, nil, q) }
func (c *Circuit) X(q int) *Circuit   { return c.gate(X, nil, q) }
func (c *Circuit) Y(q int) *Circuit   { return c.gate(Y, nil, q) }
func (c *Circuit) Z(q int) *Circuit   { return c.gate(Z, nil, q) }
func (c *Circuit) S(q int) *Circuit   { return c.gate(S, nil, q) }
func (c *Circuit) Sdg(q int) *Circuit { return c.gate(SDG, nil, q) }
func (c *Circuit) T(q int) *Circuit   { return c.gate(T, nil, q) }
func (c *Circuit) Tdg(q int) *Circuit { return c.gate(TDG, nil, q) }

// RX appends a rotation about the X axis.
func (c *Circuit) RX(theta Angle, q int) *Circuit { return c.gate(RX, []Param{theta.param()}, q) }

// RY appends a rotation about the Y axis.
func (c *Circuit) RY(theta Angle, q int) *Circuit { return c.gate(RY, []Param{theta.param()}, q) }

// RZ appends a rotation about the Z axis.
func (c *Circuit) RZ(theta Angle, q int) *Circuit { return c.gate(RZ, []Param{theta.param()}, q) }

// P appends a phase gate diag(1, e^{iλ}).
func (c *Circuit) P(lambda Angle, q int) *Circuit { return c.gate(P, []Param{lambda.param()}, q) }

// CX appends a controlled NOT.
func (c *Circuit) CX(control, target int) *Circuit { return c.gate(CX, nil, control, target) }

// CNOT is an alias for CX.
func (c *Circuit) CNOT(control, target int) *Circuit { return c.CX(control, target) }

func (c *Circuit) CZ(control, target int) *Circuit { return c.gate(CZ, nil, control, target) }
func (c *Circuit) Swap(a, b int) *Circuit          { return c.gate(SWAP, nil, a, b) }

// CCX appends a Toffoli gate.
func (c *Circuit) CCX(c1, c2, target int) *Circuit { return c.gate(CCX, nil, c1, c2, target) }

// Measure records qubit q into classical bit b.
func (c *Circuit) Measure(q, b int) *Circuit {
	return c.Append(Op{Kind: KindMeasure, Qubits: []int{q}, Clbits: []int{b}})
}

// MeasureRegister measures every qubit of qr into the matching bit of cr.
func (c *Circuit) MeasureRegister(qr QuantumRegister, cr ClassicalRegister) *Circuit {
	if qr.Size != cr.Size {
		c.buildErrs = append(c.buildErrs, errors.Errorf(
			"measure %s -> %s: register sizes differ (%d != %d)", qr.Name, cr.Name, qr.Size, cr.Size))
		return c
	}
	for i := range qr.Size {
		c.Measure(qr.Q(i), cr.C(i))
	}
	return c
}

// MeasureAll measures qubit i into classical bit i for every qubit.
func (c *Circuit) MeasureAll() *Circuit {
	for q := range c.NumQubits() {
		c.Measure(q, q)
	}
	return c
}

// Barrier inserts a visual grouping marker. With no arguments it spans all qubits.
func (c *Circuit) Barrier(qubits ...int) *Circuit {
	if len(qubits) == 0 {
		qubits = span(0, c.NumQubits())
	}
	return c.Append(Op{Kind: KindBarrier, Qubits: qubits})
}

// Reset returns qubit q to |0⟩.
func (c *Circuit) Reset(q int) *Circuit {
	return c.Append(Op{Kind: KindReset, Qubits: []int{q}})
}

// Initialize prepares the given qubits in the state described by amps.
func (c *Circuit) Initialize(amps []complex128, qubits ...int) *Circuit {
	return c.Append(Op{Kind: KindInitialize, Qubits: qubits, Amplitudes: slices.Clone(amps)})
}

// InitializeReal is Initialize for real amplitude vectors.
func (c *Circuit) InitializeReal(amps []float64, qubits ...int) *Circuit {
	cs := make([]complex128, len(amps))
	for i, a := range amps {
		cs[i] = complex(a, 0)
	}
	return c.Initialize(cs, qubits...)
}

// CIf conditions the most recently appended gate on a single classical bit.
func (c *Circuit) CIf(clbit, value int) *Circuit {
	return c.condition(&Condition{Clbits: []int{clbit}, Value: value})
}

// CIfRegister conditions the most recently appended gate on a whole register.
func (c *Circuit) CIfRegister(cr ClassicalRegister, value int) *Circuit {
	return c.condition(&Condition{Clbits: cr.All(), Value: value})
}

func (c *Circuit) condition(cond *Condition) *Circuit {
	if len(c.Ops) == 0 || c.Ops[len(c.Ops)-1].Kind != KindGate {
		c.buildErrs = append(c.buildErrs, errors.New("c_if must follow a gate"))
		return c
	}
	c.Ops[len(c.Ops)-1].Condition = cond
	return c
}

// Compose appends all ops of other, which must use the same register layout.
func (c *Circuit) Compose(other *Circuit) *Circuit {
	cp := other.Copy()
	c.Ops = append(c.Ops, cp.Ops...)
	c.buildErrs = append(c.buildErrs, cp.buildErrs...)
	return c
}

// Copy returns a deep copy of the circuit.
func (c *Circuit) Copy() *Circuit {
	cp := deepcopy.Copy(c).(*Circuit)
	cp.buildErrs = slices.Clone(c.buildErrs)
	return cp
}

// Count returns how many ops of each kind/gate the circuit holds, keyed by
// the lower case QASM mnemonic.
func (c *Circuit) Count() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		if op.Kind == KindGate {
			counts[op.Gate.QASMName()]++
		} else {
			counts[op.Kind.String()]++
		}
	}
	return counts
}

// HasMidCircuitMeasurement reports whether some qubit is acted on after it has
// been measured, or a gate is classically conditioned. Such circuits cannot be
// sampled from a single final state.
func (c *Circuit) HasMidCircuitMeasurement() bool {
	measured := make(map[int]bool)
	for _, op := range c.Ops {
		switch op.Kind {
		case KindMeasure:
			for _, q := range op.Qubits {
				if measured[q] {
					return true
				}
				measured[q] = true
			}
		case KindBarrier:
		default:
			if op.Condition != nil {
				return true
			}
			for _, q := range op.Qubits {
				if measured[q] {
					return true
				}
			}
		}
	}
	return false
}
