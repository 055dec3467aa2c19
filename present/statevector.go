package present

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qlab/sim"
)

// ampTolerance hides basis states whose amplitude is rounding noise.
const ampTolerance = 1e-10

// StatevectorText renders the state in Dirac notation, for example
// "0.70711|00⟩ + 0.70711|11⟩".
func StatevectorText(sv *sim.StateVector) string {
	var terms []string
	for i, a := range sv.Amplitudes {
		if cabs(a) < ampTolerance {
			continue
		}
		terms = append(terms, decimalAmp(a)+"|"+sv.Label(i)+"⟩")
	}
	return joinTerms(terms)
}

// StatevectorLatex renders the state as a LaTeX sum over kets. Amplitudes that
// are square roots of small fractions are written as surds, so √0.8 becomes
// \frac{2\sqrt{5}}{5}.
func StatevectorLatex(sv *sim.StateVector) string {
	var terms []string
	for i, a := range sv.Amplitudes {
		if cabs(a) < ampTolerance {
			continue
		}
		terms = append(terms, latexAmp(a)+`|`+sv.Label(i)+`\rangle`)
	}
	return joinTerms(terms)
}

// StatevectorTable renders basis state, amplitude and probability per row.
func StatevectorTable(sv *sim.StateVector) string {
	probs := sv.Probabilities()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("basis", "amplitude", "probability")
	for i, a := range sv.Amplitudes {
		t.Row("|"+sv.Label(i)+"⟩", decimalAmp(a), strconv.FormatFloat(probs[i], 'f', 4, 64))
	}
	return t.Render()
}

func cabs(a complex128) float64 {
	return math.Hypot(real(a), imag(a))
}

// joinTerms joins signed terms so that "a + -b" reads "a - b".
func joinTerms(terms []string) string {
	if len(terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.WriteString(terms[0])
	for _, t := range terms[1:] {
		if strings.HasPrefix(t, "-") {
			sb.WriteString(" - " + t[1:])
		} else {
			sb.WriteString(" + " + t)
		}
	}
	return sb.String()
}

func decimalAmp(a complex128) string {
	re, im := real(a), imag(a)
	switch {
	case math.Abs(im) < ampTolerance:
		return trimFloat(re)
	case math.Abs(re) < ampTolerance:
		return trimFloat(im) + "i"
	case im < 0:
		return fmt.Sprintf("(%s - %si)", trimFloat(re), trimFloat(-im))
	default:
		return fmt.Sprintf("(%s + %si)", trimFloat(re), trimFloat(im))
	}
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 5, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func latexAmp(a complex128) string {
	re, im := real(a), imag(a)
	switch {
	case math.Abs(im) < ampTolerance:
		return latexReal(re, false)
	case math.Abs(re) < ampTolerance:
		return latexReal(im, true)
	case im < 0:
		return `(` + latexReal(re, false) + ` - ` + latexReal(-im, true) + `)`
	default:
		return `(` + latexReal(re, false) + ` + ` + latexReal(im, true) + `)`
	}
}

// latexReal formats v, suffixed with i when imaginary. Unit coefficients are
// dropped, so 1 gives "" and -i gives "-i".
func latexReal(v float64, imaginary bool) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := surd(v)
	if imaginary {
		if s == "1" {
			s = ""
		}
		return sign + s + "i"
	}
	if s == "1" {
		s = ""
	}
	return sign + s
}

// maxSurdDenominator bounds the search for v² = p/q.
const maxSurdDenominator = 64

// surd writes v ≥ 0 as k√s/d when v² is a fraction with a small denominator,
// and as a decimal otherwise.
func surd(v float64) string {
	sq := v * v
	for q := 1; q <= maxSurdDenominator; q++ {
		p := math.Round(sq * float64(q))
		if p == 0 || math.Abs(sq-p/float64(q)) > 1e-10 {
			continue
		}
		// v = √(p/q) = √(p·q)/q
		k, s := squareFree(int(p) * q)
		d := q
		g := gcd(k, d)
		k, d = k/g, d/g
		num := ""
		switch {
		case s == 1:
			num = strconv.Itoa(k)
		case k == 1:
			num = `\sqrt{` + strconv.Itoa(s) + `}`
		default:
			num = strconv.Itoa(k) + `\sqrt{` + strconv.Itoa(s) + `}`
		}
		if d == 1 {
			return num
		}
		return `\frac{` + num + `}{` + strconv.Itoa(d) + `}`
	}
	return trimFloat(v)
}

// squareFree splits n into k²·s with s square free.
func squareFree(n int) (k, s int) {
	k, s = 1, n
	for f := 2; f*f <= s; f++ {
		for s%(f*f) == 0 {
			s /= f * f
			k *= f
		}
	}
	return k, s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
