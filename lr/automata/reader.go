package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/frontgen/lr"
)

// LineError is returned by ReadRightLinear for malformed lines.
type LineError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ReadRightLinear reads a right-linear grammar, one production per line:
//
//     I->aJ      edge I to J, labeled 'a'
//     J->1       edge J to the end state, labeled '1'
//     J->ε       J is accepting
//     K->εJ      unit production
//     J->[a-z0-9]J
//
// Everything left of "->" is the LHS non-terminal. The first character after the
// arrow is the terminal, the rest of the line (if any) is a non-terminal. A
// character class in brackets stands for a set of productions, one per
// character. Empty lines and lines starting with "//" are ignored.
func ReadRightLinear(r io.Reader) ([]*lr.Production, error) {
	var prods []*lr.Production
	lineno := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineno++
		text := sc.Text()
		line := strings.TrimSpace(text)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		ps, reason := parseRightLinear(line)
		if reason != "" {
			return nil, &LineError{Line: lineno, Text: text, Reason: reason}
		}
		prods = append(prods, ps...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(prods) == 0 {
		return nil, lr.ErrNoProductions
	}
	tracer().Debugf("read %d right-linear productions", len(prods))
	return prods, nil
}

func parseRightLinear(line string) ([]*lr.Production, string) {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		return nil, "missing '->'"
	}
	lhs := line[:arrow]
	if lhs == "" {
		return nil, "missing LHS non-terminal"
	}
	rest := line[arrow+2:]
	if rest == "" {
		return nil, "missing terminal character"
	}
	var chars []string
	if rest[0] == '[' {
		end := strings.IndexByte(rest[1:], ']')
		if end < 0 {
			return nil, "unterminated character class"
		}
		class := rest[1 : end+1]
		var ok bool
		if chars, ok = expandClass(class); !ok {
			return nil, "malformed character class"
		}
		rest = rest[end+2:]
	} else {
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError {
			return nil, "invalid terminal character"
		}
		chars = []string{string(r)}
		rest = rest[size:]
	}
	A := lr.N(lhs)
	var prods []*lr.Production
	for _, c := range chars {
		var rhs []lr.Symbol
		switch {
		case c == lr.EpsilonName && rest == "":
			rhs = []lr.Symbol{lr.Epsilon}
		case c == lr.EpsilonName:
			rhs = []lr.Symbol{lr.N(rest)}
		case rest == "":
			rhs = []lr.Symbol{lr.T(c)}
		default:
			rhs = []lr.Symbol{lr.T(c), lr.N(rest)}
		}
		p, err := lr.NewProduction(A, rhs...)
		if err != nil {
			return nil, err.Error()
		}
		prods = append(prods, p)
	}
	return prods, ""
}

// expandClass expands the contents of a character class like "a-z_" into
// single characters, in order of appearance.
func expandClass(class string) ([]string, bool) {
	runes := []rune(class)
	if len(runes) == 0 {
		return nil, false
	}
	var chars []string
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			chars = append(chars, string(r))
		}
	}
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '-' {
			from, to := runes[i], runes[i+2]
			if from > to {
				return nil, false
			}
			for r := from; r <= to; r++ {
				add(r)
			}
			i += 2
			continue
		}
		add(runes[i])
	}
	return chars, true
}
