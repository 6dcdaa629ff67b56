package beautify

import (
	"fmt"
	"math"
	"strconv"
)

// formatNumber returns the shortest decimal text that round-trips f, laid out
// the way ECMAScript's Number::toString does: plain notation for magnitudes in
// [1e-6, 1e21), exponent notation otherwise. Non-finite values become null.
func formatNumber(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	format := byte('f')
	if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
		bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(make([]byte, 0, 24), f, format, -1, bits)
	if format == 'e' {
		// e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

// numberLiteral builds a number that renders as s verbatim. An empty literal
// is treated as 0.
func numberLiteral(s string) (Value, error) {
	if s == "" {
		return Value{kind: KindNumber, str: "0"}, nil
	}
	if !isValidNumber(s) {
		return Value{}, fmt.Errorf("%w: invalid number literal %q", ErrUnsupportedValue, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of float64 range; the literal still renders verbatim.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Value{}, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
		}
	}
	return Value{kind: KindNumber, num: f, str: s}, nil
}

func isValidNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case '1' <= s[0] && s[0] <= '9':
		s = s[1:]
		for len(s) > 0 && isDigit(s[0]) {
			s = s[1:]
		}
	default:
		return false
	}
	if len(s) >= 2 && s[0] == '.' && isDigit(s[1]) {
		s = s[2:]
		for len(s) > 0 && isDigit(s[0]) {
			s = s[1:]
		}
	}
	if len(s) >= 2 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if s[0] == '+' || s[0] == '-' {
			s = s[1:]
			if s == "" {
				return false
			}
		}
		for len(s) > 0 && isDigit(s[0]) {
			s = s[1:]
		}
	}
	return s == ""
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
