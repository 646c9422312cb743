package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// SyntaxLineError is returned by ReadGrammar for malformed lines.
type SyntaxLineError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *SyntaxLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ReadGrammar reads a grammar in a line-oriented text format:
//
//     // comment
//     S -> a A d | b A c
//     A -> e
//     B -> ε
//
// Every line holds one or more alternatives for a LHS non-terminal, separated
// by '|'. If an alternative contains blanks, it is a blank-separated list of
// symbols. An alternative without blanks is a single symbol if it is the
// name of a LHS of the grammar; otherwise every character is a symbol of its
// own. Symbol roles follow the naming convention of NewSymbol. The LHS of the
// first line is the start symbol.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	type rule struct {
		lineno int
		text   string
		lhs    Symbol
		alts   []string
	}
	var rules []rule
	lhsNames := make(map[string]bool)
	lineno := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		line := text
		if k := strings.Index(line, "//"); k >= 0 {
			line = line[:k]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineErr := &SyntaxLineError{Line: lineno, Text: text}
		arrow := strings.Index(line, "->")
		if arrow < 0 {
			lineErr.Reason = "missing '->'"
			return nil, lineErr
		}
		lhs := strings.TrimSpace(line[:arrow])
		if lhs == "" || strings.IndexFunc(lhs, unicode.IsSpace) >= 0 {
			lineErr.Reason = "LHS must be a single symbol"
			return nil, lineErr
		}
		A := NewSymbol(lhs)
		if A.IsTerminal() {
			lineErr.Reason = "LHS must be a non-terminal"
			return nil, lineErr
		}
		lhsNames[lhs] = true
		rules = append(rules, rule{lineno: lineno, text: text, lhs: A,
			alts: strings.Split(line[arrow+2:], "|")})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	var prods []*Production
	for _, ru := range rules {
		for _, alt := range ru.alts {
			rhs := splitAlternative(strings.TrimSpace(alt), lhsNames)
			if len(rhs) == 0 {
				return nil, &SyntaxLineError{Line: ru.lineno, Text: ru.text, Reason: "empty alternative (use ε)"}
			}
			p, err := NewProduction(ru.lhs, rhs...)
			if err != nil {
				return nil, &SyntaxLineError{Line: ru.lineno, Text: ru.text, Reason: err.Error()}
			}
			prods = append(prods, p)
		}
	}
	if len(prods) == 0 {
		return nil, &GrammarError{Grammar: name, Err: ErrNoProductions}
	}
	return NewGrammar(name, prods[0].LHS, prods...)
}

func splitAlternative(alt string, lhsNames map[string]bool) []Symbol {
	var syms []Symbol
	if strings.IndexFunc(alt, unicode.IsSpace) >= 0 {
		for _, f := range strings.Fields(alt) {
			syms = append(syms, NewSymbol(f))
		}
		return syms
	}
	if lhsNames[alt] {
		return []Symbol{NewSymbol(alt)}
	}
	for _, r := range alt {
		syms = append(syms, NewSymbol(string(r)))
	}
	return syms
}
