package circuit

import "strings"

// GateType names a unitary gate.
type GateType string

const (
	H    GateType = "H"
	X    GateType = "X"
	Y    GateType = "Y"
	Z    GateType = "Z"
	S    GateType = "S"
	SDG  GateType = "SDG"
	T    GateType = "T"
	TDG  GateType = "TDG"
	RX   GateType = "RX"
	RY   GateType = "RY"
	RZ   GateType = "RZ"
	P    GateType = "P"
	CX   GateType = "CX"
	CZ   GateType = "CZ"
	SWAP GateType = "SWAP"
	CCX  GateType = "CCX"
)

// gateShape is the number of qubit operands and angle parameters a gate takes.
type gateShape struct {
	qubits int
	params int
}

var gateShapes = map[GateType]gateShape{
	H: {1, 0}, X: {1, 0}, Y: {1, 0}, Z: {1, 0},
	S: {1, 0}, SDG: {1, 0}, T: {1, 0}, TDG: {1, 0},
	RX: {1, 1}, RY: {1, 1}, RZ: {1, 1}, P: {1, 1},
	CX: {2, 0}, CZ: {2, 0}, SWAP: {2, 0},
	CCX: {3, 0},
}

// Known reports whether g is a gate the simulator understands.
func (g GateType) Known() bool {
	_, ok := gateShapes[g]
	return ok
}

// Controlled reports whether the leading operands of g are controls.
func (g GateType) Controlled() bool {
	return g == CX || g == CZ || g == CCX
}

// QASMName returns the OpenQASM 2.0 mnemonic for g.
func (g GateType) QASMName() string {
	return strings.ToLower(string(g))
}

// OpKind tags the variant held by an Op.
type OpKind int

const (
	KindGate OpKind = iota
	KindMeasure
	KindBarrier
	KindReset
	KindInitialize
)

func (k OpKind) String() string {
	switch k {
	case KindGate:
		return "gate"
	case KindMeasure:
		return "measure"
	case KindBarrier:
		return "barrier"
	case KindReset:
		return "reset"
	case KindInitialize:
		return "initialize"
	default:
		return "unknown"
	}
}

// Op is a single circuit instruction.
//
// For gates, Qubits lists controls first and the target last. Measurements
// pair Qubits[i] with Clbits[i]. Initialize prepares Qubits (Qubits[0] is the
// least significant) in the state given by Amplitudes.
type Op struct {
	Kind       OpKind
	Gate       GateType
	Qubits     []int
	Clbits     []int
	Params     []Param
	Amplitudes []complex128
	Condition  *Condition
}

// Condition makes a gate run only when the classical bits, read as an
// unsigned integer with Clbits[0] least significant, equal Value.
type Condition struct {
	Clbits []int
	Value  int
}

// Satisfied reports whether the condition holds for the given classical memory.
func (c *Condition) Satisfied(memory []int) bool {
	if c == nil {
		return true
	}
	v := 0
	for i, b := range c.Clbits {
		if memory[b] != 0 {
			v |= 1 << i
		}
	}
	return v == c.Value
}

// References reports whether the op touches the given qubit.
func (o Op) References(qubit int) bool {
	for _, q := range o.Qubits {
		if q == qubit {
			return true
		}
	}
	return false
}

// Angles returns the numeric value of every parameter. It must only be
// called on bound ops.
func (o Op) Angles() []float64 {
	out := make([]float64, len(o.Params))
	for i, p := range o.Params {
		out[i] = p.Value
	}
	return out
}

// DisplayName is the short label used in drawings.
func (o Op) DisplayName() string {
	switch o.Kind {
	case KindMeasure:
		return "M"
	case KindReset:
		return "|0⟩"
	case KindInitialize:
		return "Init"
	case KindBarrier:
		return "░"
	}
	switch o.Gate {
	case SDG:
		return "S†"
	case TDG:
		return "T†"
	}
	return string(o.Gate)
}
