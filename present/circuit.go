package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qlab/circuit"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given visual width.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// padRight left-aligns s within the given visual width.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

// boxName is the label drawn inside a gate box.
func boxName(op circuit.Op) string {
	name := op.DisplayName()
	if len(op.Params) == 0 {
		return name
	}
	ps := make([]string, len(op.Params))
	for i, p := range op.Params {
		ps[i] = p.String()
	}
	return name + "(" + strings.Join(ps, ",") + ")"
}

// ──────────────────────────── Column layout ────────────────────────────

// cellInfo describes what occupies a single qubit wire in one column.
type cellInfo struct {
	name          string // boxed label
	symbol        string // bare wire symbol for controls and targets
	vertAbove     bool
	vertBelow     bool
	passThrough   bool
	measureBelow  bool // a double line leaves this cell towards the classical wires
	classicalPass bool // a double line crosses this wire
	isBarrier     bool
}

// column is one drawing layer. At most one op per column reaches the
// classical wires, so a single landing is enough.
type column struct {
	cells   []cellInfo
	width   int
	nameW   int
	landing int // classical register index the column lands on, -1 for none
	mark    string
}

func cregIndex(c *circuit.Circuit, b int) (int, int) {
	for i, r := range c.CRegs {
		if b >= r.Offset && b < r.Offset+r.Size {
			return i, b - r.Offset
		}
	}
	return -1, 0
}

func buildColumn(c *circuit.Circuit, layer []int) column {
	nq := c.NumQubits()
	col := column{cells: make([]cellInfo, nq), nameW: gateNameW, landing: -1}

	for _, idx := range layer {
		op := c.Ops[idx]
		if op.Kind == circuit.KindBarrier {
			for _, q := range op.Qubits {
				col.cells[q].isBarrier = true
			}
			continue
		}
		if len(op.Qubits) == 0 {
			continue
		}

		lo, hi := op.Qubits[0], op.Qubits[0]
		for _, q := range op.Qubits {
			lo = min(lo, q)
			hi = max(hi, q)
		}

		last := len(op.Qubits) - 1
		for k, q := range op.Qubits {
			cell := &col.cells[q]
			cell.vertAbove = q > lo
			cell.vertBelow = q < hi
			switch {
			case op.Kind != circuit.KindGate:
				cell.name = op.DisplayName()
			case op.Gate == circuit.SWAP:
				cell.symbol = "×"
			case op.Gate.Controlled() && (k < last || op.Gate == circuit.CZ):
				cell.symbol = "●"
			case op.Gate.Controlled():
				cell.symbol = "⊕"
			default:
				cell.name = boxName(op)
			}
			col.nameW = max(col.nameW, lipgloss.Width(cell.name))
		}
		for q := lo + 1; q < hi; q++ {
			if !op.References(q) {
				col.cells[q] = cellInfo{passThrough: true, vertAbove: true, vertBelow: true}
			}
		}

		switch {
		case op.Kind == circuit.KindMeasure:
			reg, bit := cregIndex(c, op.Clbits[0])
			col.landing = reg
			col.mark = "╩" + strconv.Itoa(bit)
		case op.Condition != nil && len(op.Condition.Clbits) > 0:
			reg, bit := cregIndex(c, op.Condition.Clbits[0])
			col.landing = reg
			if len(op.Condition.Clbits) == 1 {
				col.mark = fmt.Sprintf("■%d=%d", bit, op.Condition.Value)
			} else {
				col.mark = fmt.Sprintf("■=%d", op.Condition.Value)
			}
		default:
			continue
		}
		col.cells[hi].measureBelow = true
		for q := hi + 1; q < nq; q++ {
			col.cells[q].classicalPass = true
		}
	}

	col.width = max(cellW, col.nameW+6)
	if col.width%2 == 0 {
		col.width++
	}
	return col
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell, each exactly
// col.width visual characters wide.
func renderCell(info cellInfo, col column) (top, mid, bot string) {
	w := col.width
	emptyRow := strings.Repeat(" ", w)
	halfW := w / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", w-halfW-1)
	dblVertRow := strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", w-halfW-1)
	dashL := (w - 1) / 2
	dashR := w - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + dimStyle.Render("░") + strings.Repeat("─", dashR)
		bot = vertRow

	case info.symbol != "":
		mid = strings.Repeat("─", dashL) + gateStyle.Render(info.symbol) + strings.Repeat("─", dashR)

	case info.name != "":
		boxW := col.nameW + 2
		margin := (w - boxW) / 2
		rightMargin := w - margin - boxW
		name := padCenter(info.name, col.nameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", col.nameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", col.nameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	case info.classicalPass:
		// No gate here, but a classical connection passes through vertically
		top = dblVertRow
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)

	default:
		mid = strings.Repeat("─", w)
	}

	if info.measureBelow || info.classicalPass {
		bot = dblVertRow
	}
	return
}

// ──────────────────────────── Circuit rendering ────────────────────────────

func qubitLabel(c *circuit.Circuit, q int) string {
	if r, i, ok := c.QubitRegister(q); ok {
		return fmt.Sprintf("%s[%d]", r.Name, i)
	}
	return fmt.Sprintf("q[%d]", q)
}

// DrawCircuit renders the circuit as a text diagram: one wire per qubit, one
// per classical register, columns numbered from 0. The circuit must be valid.
func DrawCircuit(c *circuit.Circuit) string {
	nq := c.NumQubits()
	layers := c.Layers()
	cols := make([]column, len(layers))
	for k, layer := range layers {
		cols[k] = buildColumn(c, layer)
	}

	labelW := 0
	for q := range nq {
		labelW = max(labelW, lipgloss.Width(qubitLabel(c, q)))
	}
	for _, r := range c.CRegs {
		labelW = max(labelW, lipgloss.Width(r.Name))
	}
	indent := strings.Repeat(" ", labelW+2)

	var sb strings.Builder

	// Column number header
	header := indent
	for k, col := range cols {
		header += dimStyle.Render(padCenter(strconv.Itoa(k), col.width))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for q := range nq {
		topLine := indent
		midLine := qubitLabelStyle.Render(padRight(qubitLabel(c, q), labelW)) + "──"
		botLine := indent
		for _, col := range cols {
			top, mid, bot := renderCell(col.cells[q], col)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// ── Classical wires, one per register ──
	for r, reg := range c.CRegs {
		sepLine := indent
		cbitLine := cbitLabelStyle.Render(padRight(reg.Name, labelW)) + cbitWireStyle.Render("══")
		for _, col := range cols {
			halfW := col.width / 2
			if col.landing >= r {
				sepLine += strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", col.width-halfW-1)
			} else {
				sepLine += strings.Repeat(" ", col.width)
			}

			switch {
			case col.landing == r:
				dashR := max(col.width-halfW-lipgloss.Width(col.mark), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", halfW)) +
					cbitConnectorStyle.Render(col.mark) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			case col.landing > r:
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", halfW)) +
					cbitConnectorStyle.Render("╬") +
					cbitWireStyle.Render(strings.Repeat("═", col.width-halfW-1))
			default:
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", col.width))
			}
		}
		sb.WriteString(sepLine + "\n")
		sb.WriteString(cbitLine + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
