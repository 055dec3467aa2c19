package circuit

// QuantumRegister is a named, contiguous block of qubits inside a circuit.
// Offset is the flat index of the register's first qubit.
type QuantumRegister struct {
	Name   string
	Size   int
	Offset int
}

// Q returns the flat qubit index of the i-th qubit of the register.
func (r QuantumRegister) Q(i int) int {
	return r.Offset + i
}

// All returns the flat indices of every qubit in the register.
func (r QuantumRegister) All() []int {
	return span(r.Offset, r.Size)
}

// ClassicalRegister is a named, contiguous block of classical bits.
type ClassicalRegister struct {
	Name   string
	Size   int
	Offset int
}

// C returns the flat classical bit index of the i-th bit of the register.
func (r ClassicalRegister) C(i int) int {
	return r.Offset + i
}

// All returns the flat indices of every bit in the register.
func (r ClassicalRegister) All() []int {
	return span(r.Offset, r.Size)
}

func span(offset, size int) []int {
	idx := make([]int, size)
	for i := range size {
		idx[i] = offset + i
	}
	return idx
}
