package circuit

// Layers groups op indices into drawing columns. An op lands in the first
// column after every earlier op it overlaps with. An op covers the wire range
// between its lowest and highest qubit; measurements and conditioned gates
// also cover every wire below, down to the classical wires. Barriers start a
// fresh column across all qubits. The circuit must be valid.
func (c *Circuit) Layers() [][]int {
	nq := c.NumQubits()
	// wire nq stands for the classical wires
	depth := make([]int, nq+1)
	var layers [][]int

	for i, op := range c.Ops {
		lo, hi := c.opSpan(op)
		if op.Kind == KindBarrier {
			lo, hi = 0, nq
		}
		col := 0
		for w := lo; w <= hi; w++ {
			col = max(col, depth[w])
		}
		for w := lo; w <= hi; w++ {
			depth[w] = col + 1
		}
		for len(layers) <= col {
			layers = append(layers, nil)
		}
		layers[col] = append(layers[col], i)
	}
	return layers
}

// opSpan returns the inclusive wire range covered by op.
func (c *Circuit) opSpan(op Op) (lo, hi int) {
	if len(op.Qubits) == 0 {
		return 0, c.NumQubits()
	}
	lo, hi = op.Qubits[0], op.Qubits[0]
	for _, q := range op.Qubits[1:] {
		lo = min(lo, q)
		hi = max(hi, q)
	}
	if op.Kind == KindMeasure || op.Condition != nil {
		hi = c.NumQubits()
	}
	return lo, hi
}
