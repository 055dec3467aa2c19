package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	measureRegex = regexp.MustCompile(`^measure\s+(.+?)\s*->\s*(.+)$`)
	barrierRegex = regexp.MustCompile(`^barrier\s+(.+)$`)
	resetRegex   = regexp.MustCompile(`^reset\s+(.+)$`)
	ifRegex      = regexp.MustCompile(`^if\s*\(\s*(\w+)(?:\s*\[\s*(\d+)\s*\])?\s*==\s*(\d+)\s*\)\s*(.+)$`)
	gateRegex    = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	operandRegex = regexp.MustCompile(`^(\w+)(?:\s*\[\s*(\d+)\s*\])?$`)
	symbolRegex  = regexp.MustCompile(`^[A-Za-z_]\w*(?:\[\d+\])?$`)
	initRegex    = regexp.MustCompile(`^//\s*initialize\s+(.+?)\s+amps=(.+)$`)
	cifRegex     = regexp.MustCompile(`^//\s*c_if\s+(.*?)\s*==\s*(\d+)\s+(.+?);?$`)
	identRegex   = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// qasmGates maps QASM mnemonics to gate types.
var qasmGates = map[string]GateType{
	"h": H, "x": X, "y": Y, "z": Z,
	"s": S, "sdg": SDG, "t": T, "tdg": TDG,
	"rx": RX, "ry": RY, "rz": RZ, "p": P, "u1": P,
	"cx": CX, "cz": CZ, "swap": SWAP, "ccx": CCX,
}

// qasmIdent turns a register name into a valid QASM identifier.
func qasmIdent(name string) string {
	return identRegex.ReplaceAllString(name, "_")
}

// ToQASM generates OpenQASM 2.0 output from the circuit. Initialize and
// conditions on arbitrary bit sets have no QASM 2.0 form; they are written as
// structured comments ("// initialize", "// c_if") that ParseQASM reads back.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	for _, r := range c.QRegs {
		fmt.Fprintf(&sb, "qreg %s[%d];\n", qasmIdent(r.Name), r.Size)
	}
	for _, r := range c.CRegs {
		fmt.Fprintf(&sb, "creg %s[%d];\n", qasmIdent(r.Name), r.Size)
	}
	sb.WriteString("\n")

	for _, op := range c.Ops {
		switch op.Kind {
		case KindGate:
			gate := c.gateQASM(op)
			if op.Condition == nil {
				sb.WriteString(gate + "\n")
			} else if prefix, ok := c.conditionQASM(op.Condition); ok {
				sb.WriteString(prefix + gate + "\n")
			} else {
				fmt.Fprintf(&sb, "// c_if %s==%d %s\n", c.clbitList(op.Condition.Clbits), op.Condition.Value, gate)
			}
		case KindMeasure:
			for i, q := range op.Qubits {
				fmt.Fprintf(&sb, "measure %s -> %s;\n", c.qubitName(q), c.clbitName(op.Clbits[i]))
			}
		case KindBarrier:
			fmt.Fprintf(&sb, "barrier %s;\n", c.qubitList(op.Qubits))
		case KindReset:
			for _, q := range op.Qubits {
				fmt.Fprintf(&sb, "reset %s;\n", c.qubitName(q))
			}
		case KindInitialize:
			amps := make([]string, len(op.Amplitudes))
			for i, a := range op.Amplitudes {
				amps[i] = strconv.FormatComplex(a, 'g', -1, 128)
			}
			fmt.Fprintf(&sb, "// initialize %s amps=%s\n", c.qubitList(op.Qubits), strings.Join(amps, ","))
		}
	}
	return sb.String()
}

func (c *Circuit) gateQASM(op Op) string {
	var sb strings.Builder
	sb.WriteString(op.Gate.QASMName())
	if len(op.Params) > 0 {
		ps := make([]string, len(op.Params))
		for i, p := range op.Params {
			ps[i] = p.String()
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(ps, ", "))
	}
	fmt.Fprintf(&sb, " %s;", c.qubitList(op.Qubits))
	return sb.String()
}

// conditionQASM returns the if(...) prefix for cond, or false when QASM 2.0
// cannot express it.
func (c *Circuit) conditionQASM(cond *Condition) (string, bool) {
	switch len(cond.Clbits) {
	case 0:
		return "", false
	case 1:
		return fmt.Sprintf("if(%s==%d) ", c.clbitName(cond.Clbits[0]), cond.Value), true
	}
	r, _, ok := c.ClbitRegister(cond.Clbits[0])
	if !ok || r.Size != len(cond.Clbits) {
		return "", false
	}
	for i, b := range cond.Clbits {
		if b != r.C(i) {
			return "", false
		}
	}
	return fmt.Sprintf("if(%s==%d) ", qasmIdent(r.Name), cond.Value), true
}

func (c *Circuit) qubitName(q int) string {
	if r, i, ok := c.QubitRegister(q); ok {
		return fmt.Sprintf("%s[%d]", qasmIdent(r.Name), i)
	}
	return fmt.Sprintf("q[%d]", q)
}

func (c *Circuit) clbitName(b int) string {
	if r, i, ok := c.ClbitRegister(b); ok {
		return fmt.Sprintf("%s[%d]", qasmIdent(r.Name), i)
	}
	return fmt.Sprintf("c[%d]", b)
}

func (c *Circuit) clbitList(bs []int) string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = c.clbitName(b)
	}
	return strings.Join(names, ",")
}

func (c *Circuit) qubitList(qs []int) string {
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = c.qubitName(q)
	}
	return strings.Join(names, ", ")
}

// qasmParser carries register tables and parameter symbols while reading QASM.
type qasmParser struct {
	c       *Circuit
	qregs   map[string]QuantumRegister
	cregs   map[string]ClassicalRegister
	symbols map[string]*Parameter
}

// ParseQASM parses the OpenQASM 2.0 subset produced by ToQASM into a new circuit.
func ParseQASM(qasm string) (*Circuit, error) {
	p := &qasmParser{
		c:       NewEmpty(),
		qregs:   make(map[string]QuantumRegister),
		cregs:   make(map[string]ClassicalRegister),
		symbols: make(map[string]*Parameter),
	}
	for n, raw := range strings.Split(qasm, "\n") {
		if err := p.parseLine(strings.TrimSpace(raw)); err != nil {
			return nil, errors.Wrapf(err, "line %d", n+1)
		}
	}
	return p.c, nil
}

func (p *qasmParser) parseLine(line string) error {
	if matches := initRegex.FindStringSubmatch(line); matches != nil {
		return p.parseInitialize(matches[1], matches[2])
	}
	if matches := cifRegex.FindStringSubmatch(line); matches != nil {
		cond, err := p.bitsCondition(matches[1], matches[2])
		if err != nil {
			return err
		}
		return p.conditioned(cond, matches[3])
	}
	if line == "" || strings.HasPrefix(line, "//") {
		return nil
	}
	line = strings.TrimSpace(strings.TrimSuffix(line, ";"))
	if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
		return nil
	}

	if matches := qregRegex.FindStringSubmatch(line); matches != nil {
		size, _ := strconv.Atoi(matches[2])
		p.qregs[matches[1]] = p.c.AddQuantumRegister(matches[1], size)
		return nil
	}
	if matches := cregRegex.FindStringSubmatch(line); matches != nil {
		size, _ := strconv.Atoi(matches[2])
		p.cregs[matches[1]] = p.c.AddClassicalRegister(matches[1], size)
		return nil
	}

	if matches := measureRegex.FindStringSubmatch(line); matches != nil {
		qs, err := p.qubits(matches[1])
		if err != nil {
			return err
		}
		bs, err := p.clbits(matches[2])
		if err != nil {
			return err
		}
		if len(qs) != len(bs) {
			return errors.Errorf("measure: %d qubits but %d clbits", len(qs), len(bs))
		}
		for i := range qs {
			p.c.Measure(qs[i], bs[i])
		}
		return nil
	}

	if matches := barrierRegex.FindStringSubmatch(line); matches != nil {
		qs, err := p.operandList(matches[1])
		if err != nil {
			return err
		}
		p.c.Barrier(qs...)
		return nil
	}

	if matches := resetRegex.FindStringSubmatch(line); matches != nil {
		qs, err := p.operandList(matches[1])
		if err != nil {
			return err
		}
		for _, q := range qs {
			p.c.Reset(q)
		}
		return nil
	}

	if matches := ifRegex.FindStringSubmatch(line); matches != nil {
		cond, err := p.condition(matches[1], matches[2], matches[3])
		if err != nil {
			return err
		}
		return p.conditioned(cond, matches[4])
	}

	return p.parseGate(line)
}

func (p *qasmParser) parseGate(line string) error {
	matches := gateRegex.FindStringSubmatch(line)
	if matches == nil {
		return errors.Errorf("cannot parse %q", line)
	}
	g, ok := qasmGates[strings.ToLower(matches[1])]
	if !ok {
		return errors.Errorf("unsupported gate %q", matches[1])
	}

	var params []Param
	if strings.TrimSpace(matches[2]) != "" {
		for _, expr := range strings.Split(matches[2], ",") {
			prm, err := p.param(expr)
			if err != nil {
				return err
			}
			params = append(params, prm)
		}
	}

	operands := strings.Split(matches[3], ",")
	shape := gateShapes[g]
	if shape.qubits == 1 && len(operands) == 1 {
		// a whole register broadcasts a single-qubit gate
		qs, err := p.qubits(operands[0])
		if err != nil {
			return err
		}
		for _, q := range qs {
			p.c.gate(g, params, q)
		}
		return nil
	}

	qs := make([]int, 0, len(operands))
	for _, operand := range operands {
		q, err := p.qubits(operand)
		if err != nil {
			return err
		}
		if len(q) != 1 {
			return errors.Errorf("%s: register operand %q needs an index", matches[1], strings.TrimSpace(operand))
		}
		qs = append(qs, q[0])
	}
	p.c.gate(g, params, qs...)
	return nil
}

func (p *qasmParser) param(expr string) (Param, error) {
	expr = strings.TrimSpace(expr)
	if v, ok := ParseAngle(expr); ok {
		return Param{Value: v}, nil
	}
	if !symbolRegex.MatchString(expr) {
		return Param{}, errors.Errorf("invalid parameter %q", expr)
	}
	sym, ok := p.symbols[expr]
	if !ok {
		sym = NewParameter(expr)
		p.symbols[expr] = sym
	}
	return Param{Symbol: sym}, nil
}

func (p *qasmParser) condition(reg, idx, value string) (*Condition, error) {
	r, ok := p.cregs[reg]
	if !ok {
		return nil, errors.Errorf("unknown classical register %q", reg)
	}
	v, _ := strconv.Atoi(value)
	if idx == "" {
		return &Condition{Clbits: r.All(), Value: v}, nil
	}
	i, _ := strconv.Atoi(idx)
	if i >= r.Size {
		return nil, errors.Errorf("%s[%d] out of range", reg, i)
	}
	return &Condition{Clbits: []int{r.C(i)}, Value: v}, nil
}

// conditioned parses a gate and attaches cond to every op it expands to.
func (p *qasmParser) conditioned(cond *Condition, gate string) error {
	before := len(p.c.Ops)
	if err := p.parseGate(strings.TrimSpace(gate)); err != nil {
		return err
	}
	for i := before; i < len(p.c.Ops); i++ {
		p.c.Ops[i].Condition = cond
	}
	return nil
}

// bitsCondition reads the bit list of a "// c_if" line, e.g. "c[0],c[2]".
func (p *qasmParser) bitsCondition(list, value string) (*Condition, error) {
	if strings.TrimSpace(list) == "" {
		return nil, errors.New("c_if without classical bits")
	}
	var bits []int
	for _, operand := range strings.Split(list, ",") {
		bs, err := p.clbits(operand)
		if err != nil {
			return nil, err
		}
		bits = append(bits, bs...)
	}
	v, _ := strconv.Atoi(value)
	return &Condition{Clbits: bits, Value: v}, nil
}

func (p *qasmParser) parseInitialize(operands, amps string) error {
	qs, err := p.operandList(operands)
	if err != nil {
		return err
	}
	var vals []complex128
	for _, a := range strings.Split(amps, ",") {
		v, err := strconv.ParseComplex(strings.TrimSpace(a), 128)
		if err != nil {
			return errors.Wrapf(err, "initialize amplitude %q", a)
		}
		vals = append(vals, v)
	}
	p.c.Initialize(vals, qs...)
	return nil
}

// operandList expands a comma separated list of qubit operands.
func (p *qasmParser) operandList(s string) ([]int, error) {
	var qs []int
	for _, operand := range strings.Split(s, ",") {
		q, err := p.qubits(operand)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q...)
	}
	return qs, nil
}

// qubits resolves "reg[i]" to one flat index and "reg" to the whole register.
func (p *qasmParser) qubits(operand string) ([]int, error) {
	name, idx, err := splitOperand(operand)
	if err != nil {
		return nil, err
	}
	r, ok := p.qregs[name]
	if !ok {
		return nil, errors.Errorf("unknown quantum register %q", name)
	}
	if idx < 0 {
		return r.All(), nil
	}
	if idx >= r.Size {
		return nil, errors.Errorf("%s[%d] out of range", name, idx)
	}
	return []int{r.Q(idx)}, nil
}

func (p *qasmParser) clbits(operand string) ([]int, error) {
	name, idx, err := splitOperand(operand)
	if err != nil {
		return nil, err
	}
	r, ok := p.cregs[name]
	if !ok {
		return nil, errors.Errorf("unknown classical register %q", name)
	}
	if idx < 0 {
		return r.All(), nil
	}
	if idx >= r.Size {
		return nil, errors.Errorf("%s[%d] out of range", name, idx)
	}
	return []int{r.C(idx)}, nil
}

// splitOperand returns the register name and index, or -1 for a bare register.
func splitOperand(operand string) (string, int, error) {
	matches := operandRegex.FindStringSubmatch(strings.TrimSpace(operand))
	if matches == nil {
		return "", 0, errors.Errorf("invalid operand %q", operand)
	}
	if matches[2] == "" {
		return matches[1], -1, nil
	}
	idx, _ := strconv.Atoi(matches[2])
	return matches[1], idx, nil
}
