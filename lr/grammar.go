package lr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS ➞ RHS. Productions are immutable.
type Production struct {
	Serial int    // creation-order index within its grammar
	LHS    Symbol // left hand side
	rhs    []Symbol
}

// NewProduction creates a production which is not yet part of a grammar.
// Its serial number will be assigned when a grammar is created from it.
func NewProduction(lhs Symbol, rhs ...Symbol) (*Production, error) {
	if lhs.IsNull() {
		return nil, &GrammarError{Err: ErrTerminalLHS}
	}
	if len(rhs) == 0 {
		return nil, &GrammarError{Symbol: lhs, Err: ErrEmptyRHS}
	}
	p := &Production{Serial: -1, LHS: lhs, rhs: make([]Symbol, len(rhs))}
	copy(p.rhs, rhs)
	return p, nil
}

// RHS returns a copy of the right hand side symbols. For an epsilon production
// this is [ε].
func (p *Production) RHS() []Symbol {
	r := make([]Symbol, len(p.rhs))
	copy(r, p.rhs)
	return r
}

// Len is the number of symbols a reduce by p pops off a stack, i.e. 0 for epsilon
// productions.
func (p *Production) Len() int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.rhs)
}

// At returns the RHS symbol at position i. Epsilon productions do not have any.
func (p *Production) At(i int) (Symbol, bool) {
	if i < 0 || i >= p.Len() {
		return Symbol{}, false
	}
	return p.rhs[i], true
}

// IsEpsilon is true iff the RHS is exactly [ε].
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

func (p *Production) contains(A Symbol) bool {
	for _, B := range p.rhs {
		if B == A {
			return true
		}
	}
	return false
}

func (p *Production) withSerial(serial int) *Production {
	return &Production{Serial: serial, LHS: p.LHS, rhs: p.rhs}
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" ➞")
	for _, A := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammar errors --------------------------------------------------------

// Grammar definition errors. They are fatal and reported at construction time.
var (
	ErrNoProductions        = errors.New("grammar has no productions")
	ErrStartMismatch        = errors.New("start symbol differs from LHS of first production")
	ErrUndefinedNonTerminal = errors.New("non-terminal has no productions")
	ErrSymbolClash          = errors.New("name used as terminal and as non-terminal")
	ErrEmptyRHS             = errors.New("production has an empty right hand side")
	ErrTerminalLHS          = errors.New("LHS of production must be a non-terminal")
	ErrMisplacedEpsilon     = errors.New("ε must be the only symbol of a right hand side")
	ErrReservedSymbol       = errors.New("end marker may not be used within productions")
)

// GrammarError is returned for invalid grammar definitions.
type GrammarError struct {
	Grammar    string
	Production *Production // offending production, if any
	Symbol     Symbol      // offending symbol, if any
	Err        error
}

func (e *GrammarError) Error() string {
	var b strings.Builder
	if e.Grammar != "" {
		fmt.Fprintf(&b, "grammar %s: ", e.Grammar)
	}
	b.WriteString(e.Err.Error())
	if !e.Symbol.IsNull() {
		fmt.Fprintf(&b, ": %q", e.Symbol.Name)
	}
	if e.Production != nil {
		fmt.Fprintf(&b, " (in %v)", e.Production)
	}
	return b.String()
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Non-terminals are exactly the LHS symbols
// of the productions, terminals are derived from the right hand sides.
// Create one with NewGrammar or with a GrammarBuilder.
type Grammar struct {
	Name      string
	start     Symbol
	rules     *linkedhashmap.Map // Symbol -> []*Production, insertion ordered
	prods     []*Production      // all productions, index == serial
	terminals []Symbol           // sorted, ε excluded
	firstOnce sync.Once
	first     map[Symbol]*FirstSet
	follOnce  sync.Once
	follow    map[Symbol]*FirstSet
}

// NewGrammar creates a grammar from a list of productions. The first
// production's LHS has to be the start symbol. Productions are copied and
// receive their serial numbers in list order.
func NewGrammar(name string, start Symbol, prods ...*Production) (*Grammar, error) {
	if len(prods) == 0 {
		return nil, &GrammarError{Grammar: name, Err: ErrNoProductions}
	}
	if prods[0].LHS != start {
		return nil, &GrammarError{Grammar: name, Symbol: start, Err: ErrStartMismatch}
	}
	g := &Grammar{
		Name:  name,
		start: start,
		rules: linkedhashmap.New(),
		prods: make([]*Production, 0, len(prods)),
	}
	for i, p := range prods {
		p = p.withSerial(i)
		g.prods = append(g.prods, p)
		var rules []*Production
		if r, found := g.rules.Get(p.LHS); found {
			rules = r.([]*Production)
		}
		g.rules.Put(p.LHS, append(rules, p))
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	g.terminals = g.collectTerminals()
	return g, nil
}

func (g *Grammar) check() error {
	roles := make(map[string]bool) // name -> is terminal
	clash := func(A Symbol) bool {
		if t, seen := roles[A.Name]; seen && t != A.IsTerminal() {
			return true
		}
		roles[A.Name] = A.IsTerminal()
		return false
	}
	for _, p := range g.prods {
		if p.LHS.IsTerminal() {
			return &GrammarError{Grammar: g.Name, Production: p, Symbol: p.LHS, Err: ErrTerminalLHS}
		}
		if clash(p.LHS) {
			return &GrammarError{Grammar: g.Name, Production: p, Symbol: p.LHS, Err: ErrSymbolClash}
		}
	}
	for _, p := range g.prods {
		for _, A := range p.rhs {
			switch {
			case A.IsNull():
				return &GrammarError{Grammar: g.Name, Production: p, Err: ErrEmptyRHS}
			case A.IsEnd():
				return &GrammarError{Grammar: g.Name, Production: p, Symbol: A, Err: ErrReservedSymbol}
			case A.IsEpsilon() && len(p.rhs) > 1:
				return &GrammarError{Grammar: g.Name, Production: p, Err: ErrMisplacedEpsilon}
			case clash(A):
				return &GrammarError{Grammar: g.Name, Production: p, Symbol: A, Err: ErrSymbolClash}
			case !A.IsTerminal():
				if _, defined := g.rules.Get(A); !defined {
					return &GrammarError{Grammar: g.Name, Production: p, Symbol: A, Err: ErrUndefinedNonTerminal}
				}
			}
		}
	}
	return nil
}

func (g *Grammar) collectTerminals() []Symbol {
	seen := make(map[Symbol]bool)
	var terms []Symbol
	for _, p := range g.prods {
		for _, A := range p.rhs {
			if A.IsTerminal() && !A.IsEpsilon() && !seen[A] {
				seen[A] = true
				terms = append(terms, A)
			}
		}
	}
	return sortSymbols(terms)
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.prods)
}

// Rule returns production no. i.
func (g *Grammar) Rule(i int) *Production {
	if i < 0 || i >= len(g.prods) {
		return nil
	}
	return g.prods[i]
}

// Rules returns all productions in creation order.
func (g *Grammar) Rules() []*Production {
	r := make([]*Production, len(g.prods))
	copy(r, g.prods)
	return r
}

// RulesFor returns the productions for a non-terminal, in insertion order.
func (g *Grammar) RulesFor(A Symbol) []*Production {
	if r, found := g.rules.Get(A); found {
		return r.([]*Production)
	}
	return nil
}

// NonTerminals returns all non-terminals, in order of their first definition.
func (g *Grammar) NonTerminals() []Symbol {
	keys := g.rules.Keys()
	nonterms := make([]Symbol, len(keys))
	for i, k := range keys {
		nonterms[i] = k.(Symbol)
	}
	return nonterms
}

// Terminals returns all terminals occuring in the grammar, sorted by name.
// Epsilon is not considered a terminal here; the end marker is not part of the
// grammar's productions and therefore not included either.
func (g *Grammar) Terminals() []Symbol {
	t := make([]Symbol, len(g.terminals))
	copy(t, g.terminals)
	return t
}

// SymbolByName finds a grammar symbol by name.
func (g *Grammar) SymbolByName(name string) (Symbol, bool) {
	for _, A := range g.NonTerminals() {
		if A.Name == name {
			return A, true
		}
	}
	for _, a := range g.terminals {
		if a.Name == name {
			return a, true
		}
	}
	if name == EndName {
		return EndMarker, true
	}
	return Symbol{}, false
}

// Fingerprint returns a content hash of the grammar's productions.
// Grammars with identical productions in identical order share a fingerprint.
func (g *Grammar) Fingerprint() string {
	rendered := struct {
		Start string
		Rules []string
	}{Start: g.start.Name}
	for _, p := range g.prods {
		rendered.Rules = append(rendered.Rules, p.String())
	}
	h, err := structhash.Hash(rendered, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint grammar %s: %v", g.Name, err)
		return ""
	}
	return h
}

// Dump is a debugging helper, tracing all productions.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, p := range g.prods {
		tracer().Debugf("%3d: %v", p.Serial, p)
	}
	tracer().Debugf("-----------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for i, A := range g.NonTerminals() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(A.Name)
		b.WriteString(" ➞")
		for j, p := range g.RulesFor(A) {
			if j > 0 {
				b.WriteString(" |")
			}
			for _, B := range p.rhs {
				b.WriteByte(' ')
				b.WriteString(B.Name)
			}
		}
	}
	return b.String()
}

// --- Augmentation ----------------------------------------------------------

// IsAugmented is true if the start symbol has a single production S' ➞ S, with S
// being a non-terminal, and S' does not occur on any right hand side.
func (g *Grammar) IsAugmented() bool {
	rules := g.RulesFor(g.start)
	if len(rules) != 1 || len(rules[0].rhs) != 1 || rules[0].rhs[0].IsTerminal() {
		return false
	}
	for _, p := range g.prods {
		if p.contains(g.start) {
			return false
		}
	}
	return true
}

// Augment returns g if it already is augmented. Otherwise a new grammar is created
// with an additional start production S' ➞ S prepended.
func Augment(g *Grammar) *Grammar {
	if g.IsAugmented() {
		return g
	}
	name := g.start.Name + "'"
	for {
		if _, taken := g.SymbolByName(name); !taken {
			break
		}
		name += "'"
	}
	start := N(name)
	sprod := &Production{LHS: start, rhs: []Symbol{g.start}}
	prods := append([]*Production{sprod}, g.prods...)
	ga, err := NewGrammar(g.Name, start, prods...)
	if err != nil { // cannot happen for a valid grammar
		panic(fmt.Sprintf("augmenting grammar %s: %v", g.Name, err))
	}
	return ga
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. The LHS of the first rule is
// the start symbol.
type GrammarBuilder struct {
	name  string
	rules []*Production
	err   error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// RuleBuilder is a builder type for a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: N(name)}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, N(name))
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, T(name))
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() *Production {
	p, err := NewProduction(rb.lhs, rb.rhs...)
	if err != nil {
		if rb.gb.err == nil {
			rb.gb.err = err
		}
		return nil
	}
	rb.gb.rules = append(rb.gb.rules, p)
	return p
}

// Epsilon sets ε as the RHS of a production and ends the rule.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = []Symbol{Epsilon}
	return rb.End()
}

// Grammar returns the (completed) grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, &GrammarError{Grammar: gb.name, Err: ErrNoProductions}
	}
	return NewGrammar(gb.name, gb.rules[0].LHS, gb.rules...)
}
