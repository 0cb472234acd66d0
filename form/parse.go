package form

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseFloat reads the longest decimal prefix of s the way a browser's
// parseFloat does: leading space is skipped, trailing garbage is ignored
// ("12abc" is 12) and "Infinity" is accepted. NaN is returned when no
// number can be read.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, isSpace)
	n := floatPrefix(s)
	if n == 0 {
		return math.NaN()
	}

	lit := s[:n]
	switch strings.TrimLeft(lit, "+-") {
	case "Infinity":
		if lit[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// ErrRange still carries ±Inf or ±0, which is what we want
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// ParseInt reads a base-10 integer prefix of s like parseInt(s, 10):
// "10.9" is 10, "7x" is 7. ok is false when there are no digits.
// Values outside the int range are clamped.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, isSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:i], 10, 0)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(v), true
}

// floatPrefix returns the length of the longest prefix of s that is a
// decimal literal (optionally signed), or zero.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// exponent only counts when it has at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
