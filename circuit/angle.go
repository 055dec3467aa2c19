package circuit

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// maxPiDenominator bounds the fractions of pi FormatAngle writes symbolically.
const maxPiDenominator = 12

// ParseAngle reads a number or a multiple of pi: "0.5", "pi", "-pi/2",
// "3pi/4", "3*pi/4". Case and blanks are ignored. A denominator may follow
// either form, so "1/2" is accepted too.
func ParseAngle(s string) (float64, bool) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if s == "" {
		return 0, false
	}
	num, den, fraction := strings.Cut(s, "/")

	sign := 1.0
	if rest, ok := strings.CutPrefix(num, "-"); ok {
		sign, num = -1, rest
	}
	var v float64
	if coeff, ok := strings.CutSuffix(num, "pi"); ok {
		coeff = strings.TrimSuffix(coeff, "*")
		c := 1.0
		if coeff != "" {
			var err error
			if c, err = strconv.ParseFloat(coeff, 64); err != nil || c < 0 {
				return 0, false
			}
		}
		v = c * math.Pi
	} else {
		var err error
		if v, err = strconv.ParseFloat(num, 64); err != nil {
			return 0, false
		}
	}

	if fraction {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		v /= d
	}
	v *= sign
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatAngle writes val as n*pi/d in lowest terms when it is such a multiple
// with d up to 12, and as a plain number otherwise.
func FormatAngle(val float64) string {
	if val == 0 {
		return "0"
	}
	for d := 1; d <= maxPiDenominator; d++ {
		n := math.Round(val * float64(d) / math.Pi)
		if n == 0 || math.Abs(val-n*math.Pi/float64(d)) > 1e-10 {
			continue
		}
		var sb strings.Builder
		if n < 0 {
			sb.WriteByte('-')
			n = -n
		}
		if n != 1 {
			sb.WriteString(strconv.Itoa(int(n)) + "*")
		}
		sb.WriteString("pi")
		if d != 1 {
			sb.WriteString("/" + strconv.Itoa(d))
		}
		return sb.String()
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// ParseAngles reads a comma separated list such as "pi/2, 0.3, -pi".
func ParseAngles(list string) ([]float64, error) {
	var vals []float64
	for i, part := range strings.Split(list, ",") {
		v, ok := ParseAngle(part)
		if !ok {
			return nil, errors.Errorf("angle %d: cannot parse %q", i, strings.TrimSpace(part))
		}
		vals = append(vals, v)
	}
	return vals, nil
}
