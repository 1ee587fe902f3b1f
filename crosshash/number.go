package crosshash

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// MaxSafeInteger is 2^53-1, the largest integer n such that n and n+1 are
// both exactly representable as a 64-bit IEEE-754 double.
const MaxSafeInteger = 1<<53 - 1

// Number is a JSON number holding either an exact integer or a double.
// Which of the two it holds depends on how it was produced and never
// changes its canonical text: Int(1) and Float(1.0) are the same number.
type Number struct {
	f        float64
	i        int64
	integer  bool
	overflow bool   // integer literal beyond the int64 range
	literal  string // source text when parsed
}

// Int returns an exact integer Number.
func Int(i int64) Number {
	return Number{i: i, integer: true}
}

// Float returns a double-precision Number.
func Float(f float64) Number {
	return Number{f: f}
}

// ParseNumber parses a JSON number literal. Literals without a fraction or
// exponent are kept as exact integers, even when they do not fit in an
// int64; everything else is parsed as a double.
func ParseNumber(lit string) (Number, error) {
	if !isNumberLiteral(lit) {
		return Number{}, &DecodeError{Err: fmt.Errorf("invalid number literal %q", lit)}
	}
	if !strings.ContainsAny(lit, ".eE") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err == nil {
			return Number{i: i, integer: true, literal: lit}, nil
		}
		f, _ := strconv.ParseFloat(lit, 64)
		return Number{f: f, integer: true, overflow: true, literal: lit}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, &DecodeError{Err: err}
	}
	// Out-of-range exponents saturate to ±Inf and fail the safety check.
	return Number{f: f, literal: lit}, nil
}

// IsIntegral reports whether n has no fractional part.
func (n Number) IsIntegral() bool {
	if n.integer {
		return true
	}
	return !math.IsInf(n.f, 0) && n.f == math.Trunc(n.f)
}

// IsSafe reports whether n lies within [-MaxSafeInteger, MaxSafeInteger].
// NaN and infinities are never safe.
func (n Number) IsSafe() bool {
	switch {
	case n.overflow:
		return false
	case n.integer:
		return -MaxSafeInteger <= n.i && n.i <= MaxSafeInteger
	default:
		return -MaxSafeInteger <= n.f && n.f <= MaxSafeInteger
	}
}

// Float64 returns n as a double, rounding integers beyond 2^53.
func (n Number) Float64() float64 {
	if n.integer && !n.overflow {
		return float64(n.i)
	}
	return n.f
}

// Int64 returns n as an int64 when n is integral and fits.
func (n Number) Int64() (int64, bool) {
	switch {
	case n.overflow:
		return 0, false
	case n.integer:
		return n.i, true
	case n.IsIntegral() && n.f >= math.MinInt64 && n.f < math.MaxInt64:
		return int64(n.f), true
	default:
		return 0, false
	}
}

// Literal returns the source text n was parsed from, or "" when n was
// built with Int or Float.
func (n Number) Literal() string {
	return n.literal
}

// String formats n for diagnostics. Integers print in decimal, doubles in
// the ECMAScript number format, and integer literals too large for an int64
// print as they were written.
func (n Number) String() string {
	switch {
	case n.overflow:
		return n.literal
	case n.integer:
		return strconv.FormatInt(n.i, 10)
	case math.IsNaN(n.f):
		return "NaN"
	case math.IsInf(n.f, 1):
		return "Infinity"
	case math.IsInf(n.f, -1):
		return "-Infinity"
	}
	s, _ := jsoncanonicalizer.NumberToJSON(n.f)
	return s
}

// ValidateNumber returns an *UnsafeNumberError when n is not safe.
func ValidateNumber(n Number) error {
	if !n.IsSafe() {
		return &UnsafeNumberError{Number: n}
	}
	return nil
}

// appendCanonical appends the canonical token for a safe number.
func (n Number) appendCanonical(dst []byte) []byte {
	if n.integer {
		return strconv.AppendInt(dst, n.i, 10)
	}
	if n.f == math.Trunc(n.f) {
		// also folds -0 into 0
		return strconv.AppendInt(dst, int64(n.f), 10)
	}
	s, _ := jsoncanonicalizer.NumberToJSON(n.f)
	return append(dst, s...)
}

// isNumberLiteral reports whether s matches the JSON number grammar.
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && '1' <= s[i] && s[i] <= '9':
		i = skipDigits(s, i)
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		j := skipDigits(s, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := skipDigits(s, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}
