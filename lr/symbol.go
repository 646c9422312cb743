package lr

import (
	"sort"
	"unicode/utf8"
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are small values and are compared by value, i.e. two symbols with
// the same name and role are interchangeable.
//
// The zero value is not a valid symbol; it is used to signal "no symbol".
type Symbol struct {
	Name     string
	terminal bool
	end      bool
}

// Reserved names for the end-of-input marker and for epsilon.
const (
	EndName     = "#"
	EpsilonName = "ε"
)

// EndMarker is the reserved end-of-input symbol.
var EndMarker = Symbol{Name: EndName, terminal: true, end: true}

// Epsilon is the reserved symbol for the empty word. It may only be used as the
// sole right-hand-side symbol of a production.
var Epsilon = Symbol{Name: EpsilonName, terminal: true}

// NewSymbol creates a symbol, deciding its role from its name: names starting
// with an upper-case ASCII letter are non-terminals, everything else is a terminal.
// The reserved names for the end marker and epsilon return the reserved symbols.
func NewSymbol(name string) Symbol {
	switch name {
	case EndName:
		return EndMarker
	case EpsilonName:
		return Epsilon
	}
	return Symbol{Name: name, terminal: !isNonTermName(name)}
}

// T creates a terminal symbol, regardless of the case of its name.
func T(name string) Symbol {
	if name == EndName {
		return EndMarker
	}
	return Symbol{Name: name, terminal: true}
}

// N creates a non-terminal symbol, regardless of the case of its name.
func N(name string) Symbol {
	return Symbol{Name: name}
}

func isNonTermName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r >= 'A' && r <= 'Z'
}

// IsTerminal is true for terminals, including the end marker and epsilon.
func (A Symbol) IsTerminal() bool {
	return A.terminal
}

// IsEnd is true for the end-of-input marker only.
func (A Symbol) IsEnd() bool {
	return A.end
}

// IsEpsilon is true for the epsilon symbol.
func (A Symbol) IsEpsilon() bool {
	return A == Epsilon
}

// IsNull is true for the zero value, which is not a valid symbol.
func (A Symbol) IsNull() bool {
	return A.Name == ""
}

func (A Symbol) String() string {
	return A.Name
}

// symbols is a sortable slice of symbols, ordered by name, with the end marker last.
type symbols []Symbol

func (s symbols) Len() int      { return len(s) }
func (s symbols) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s symbols) Less(i, j int) bool {
	if s[i].end != s[j].end {
		return s[j].end
	}
	return s[i].Name < s[j].Name
}

func sortSymbols(syms []Symbol) []Symbol {
	sort.Sort(symbols(syms))
	return syms
}
