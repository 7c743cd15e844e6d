package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Operand is the text of a number while it is being entered.
// It is only converted to a float64 at compute time (see Float).
type Operand string

// Zero is the initial operand.
const Zero Operand = "0"

// numericPrefix matches the longest leading number, the same prefix a
// browser's parseFloat accepts.
var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// Float parses the leading numeric part of the operand.
// Returns false if there is none, or if it parses to NaN.
func (o Operand) Float() (float64, bool) {
	s := strings.TrimLeft(string(o), " \t\n\r\v\f\u00a0\ufeff")
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// ErrRange still carries ±Inf or ±0, which is what we want.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// HasDecimalPoint reports whether the operand already contains a '.'.
func (o Operand) HasDecimalPoint() bool {
	return strings.Contains(string(o), ".")
}

// String implements fmt.Stringer.
func (o Operand) String() string {
	return string(o)
}

// FormatNumber renders f as the shortest decimal text that round-trips.
// Plain notation is used while the decimal exponent is in [-6, 21),
// exponent notation ("1e+21", "1.5e-7") outside it.
func FormatNumber(f float64) Operand {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f < 0:
		return "-" + FormatNumber(-f)
	}

	// d.ddddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)

	k := len(digits)
	n := exp + 1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		sign := "+"
		if e < 0 {
			sign = "-"
			e = -e
		}
		if k == 1 {
			out = digits + "e" + sign + strconv.Itoa(e)
		} else {
			out = digits[:1] + "." + digits[1:] + "e" + sign + strconv.Itoa(e)
		}
	}
	return Operand(out)
}
