package present

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/go-faster/errors"

	"qlab/sim"
)

// BlochVector returns the Bloch coordinates of one qubit, taken from its
// reduced density matrix. Entangled qubits land inside the sphere.
func BlochVector(sv *sim.StateVector, qubit int) (x, y, z float64, err error) {
	if qubit < 0 || qubit >= sv.NumQubits {
		return 0, 0, 0, errors.Errorf("qubit %d out of range [0,%d)", qubit, sv.NumQubits)
	}
	bit := 1 << qubit
	var rho00, rho11 float64
	var rho01 complex128
	for i, a := range sv.Amplitudes {
		if i&bit != 0 {
			continue
		}
		b := sv.Amplitudes[i|bit]
		rho00 += real(a * cmplx.Conj(a))
		rho11 += real(b * cmplx.Conj(b))
		rho01 += a * cmplx.Conj(b)
	}
	return 2 * real(rho01), -2 * imag(rho01), rho00 - rho11, nil
}

// Bloch renders a qubit's Bloch vector as coordinates, polar angles and an
// X-Z projection of the sphere.
func Bloch(sv *sim.StateVector, qubit int) (string, error) {
	x, y, z, err := BlochVector(sv, qubit)
	if err != nil {
		return "", err
	}
	r := math.Sqrt(x*x + y*y + z*z)
	theta := math.Acos(max(-1, min(1, z/max(r, 1e-12))))
	phi := math.Atan2(y, x)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s x=%s y=%s z=%s\n", titleStyle.Render(fmt.Sprintf("qubit %d", qubit)),
		valueStyle.Render(fmt.Sprintf("%+.3f", clean(x))),
		valueStyle.Render(fmt.Sprintf("%+.3f", clean(y))),
		valueStyle.Render(fmt.Sprintf("%+.3f", clean(z))))
	fmt.Fprintf(&sb, "θ=%s φ=%s |r|=%.3f\n",
		valueStyle.Render(fmt.Sprintf("%.3f", clean(theta))),
		valueStyle.Render(fmt.Sprintf("%.3f", clean(phi))), r)
	sb.WriteString(blochProjection(x, z))
	return sb.String(), nil
}

// clean folds tiny rounding noise to zero so -0.000 is not printed.
func clean(v float64) float64 {
	if math.Abs(v) < 5e-4 {
		return 0
	}
	return v
}

// blochProjection draws the great circle in the X-Z plane with |0⟩ on top and
// marks the projected state. Columns are doubled to keep the circle round.
func blochProjection(x, z float64) string {
	const rows = 2*blochR + 1
	const colsN = 4*blochR + 1
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, colsN)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}
	for k := 0; k < 96; k++ {
		a := 2 * math.Pi * float64(k) / 96
		row := blochR - int(math.Round(blochR*math.Sin(a)))
		col := 2*blochR + int(math.Round(2*blochR*math.Cos(a)))
		grid[row][col] = dimStyle.Render("·")
	}
	for j := 0; j < colsN; j++ {
		if grid[blochR][j] == " " {
			grid[blochR][j] = dimStyle.Render("─")
		}
	}
	for i := 0; i < rows; i++ {
		if grid[i][2*blochR] == " " {
			grid[i][2*blochR] = dimStyle.Render("│")
		}
	}
	grid[blochR][2*blochR] = dimStyle.Render("┼")

	row := blochR - int(math.Round(blochR*z))
	col := 2*blochR + int(math.Round(2*blochR*x))
	grid[row][col] = markerStyle.Render("●")

	var sb strings.Builder
	sb.WriteString(padCenter("|0⟩", colsN) + "\n")
	for i := range grid {
		sb.WriteString(strings.Join(grid[i], ""))
		if i == blochR {
			sb.WriteString(" x")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(padCenter("|1⟩", colsN))
	return sb.String()
}
