package scanner

import (
	"fmt"
	"strconv"
	"strings"
)

// ConstValue converts the lexeme of a numeric constant to a float64.
// Besides decimal and exponent notation it accepts fractions "a/b", an optional
// sign, and exponent shorthands "e+n" (meaning 1e+n).
func ConstValue(s string) (float64, error) {
	lexeme := s
	var f float64 = 1.0
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		f *= -1.0
		s = s[1:]
	}
	if strings.HasPrefix(s, "e") {
		s = "1" + s
	}
	if strings.Contains(s, "/") {
		a := strings.Split(s, "/")
		if len(a) != 2 {
			return 0, fmt.Errorf("malformed fraction: %q", lexeme)
		}
		nom, err1 := strconv.Atoi(a[0])
		denom, err2 := strconv.Atoi(a[1])
		if err1 != nil || err2 != nil || denom == 0 {
			return 0, fmt.Errorf("malformed fraction: %q", lexeme)
		}
		return f * (float64(nom) / float64(denom)), nil
	}
	a, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number: %q", lexeme)
	}
	return f * a, nil
}
