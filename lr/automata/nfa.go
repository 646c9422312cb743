package automata

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/frontgen/lr"
)

// EpsilonLabel labels epsilon edges.
const EpsilonLabel = lr.EpsilonName

// NFAState is a state of a non-deterministic finite automaton. Every state but
// the end state represents a non-terminal of a right-linear grammar.
type NFAState struct {
	Serial int
	Label  lr.Symbol // non-terminal; zero symbol for the end state
	Start  bool
	End    bool
	edges  *linkedhashmap.Map // label string -> []*NFAState, insertion ordered
}

func newNFAState(serial int, label lr.Symbol) *NFAState {
	return &NFAState{Serial: serial, Label: label, edges: linkedhashmap.New()}
}

func (s *NFAState) addEdge(label string, to *NFAState) {
	var targets []*NFAState
	if t, ok := s.edges.Get(label); ok {
		targets = t.([]*NFAState)
		for _, x := range targets {
			if x == to {
				return
			}
		}
	}
	s.edges.Put(label, append(targets, to))
}

// Next returns the successors of s for an edge label.
func (s *NFAState) Next(label string) []*NFAState {
	if t, ok := s.edges.Get(label); ok {
		return t.([]*NFAState)
	}
	return nil
}

// Labels returns the labels of all outgoing edges, in order of creation.
func (s *NFAState) Labels() []string {
	keys := s.edges.Keys()
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = k.(string)
	}
	return labels
}

func (s *NFAState) name() string {
	if s.End {
		return "END"
	}
	return s.Label.Name
}

// String renders a state with its edges, e.g. "NFAState1{a->2;b->3;}".
func (s *NFAState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFAState%d(%s){", s.Serial, s.name())
	for _, label := range s.Labels() {
		for _, t := range s.Next(label) {
			fmt.Fprintf(&b, "%s->%d;", label, t.Serial)
		}
	}
	b.WriteString("}")
	return b.String()
}

// NFA is a non-deterministic finite automaton with a single start state and a
// single accepting end state.
type NFA struct {
	Start    *NFAState
	End      *NFAState
	states   []*NFAState // index == serial
	alphabet []lr.Symbol
}

// ShapeError is returned for productions which are not right-linear.
type ShapeError struct {
	Production *lr.Production
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("production is not right-linear: %v", e.Production)
}

// BuildNFA creates an NFA from an ordered list of right-linear productions.
// The LHS of the first production is the start state. Besides the forms
// A ➞ c B and A ➞ c, productions A ➞ ε and unit productions A ➞ B are accepted;
// they produce epsilon edges.
func BuildNFA(prods []*lr.Production) (*NFA, error) {
	if len(prods) == 0 {
		return nil, lr.ErrNoProductions
	}
	nfa := &NFA{}
	nfa.End = nfa.newState(lr.Symbol{})
	nfa.End.End = true
	bySymbol := make(map[lr.Symbol]*NFAState)
	stateFor := func(A lr.Symbol) *NFAState {
		if s, ok := bySymbol[A]; ok {
			return s
		}
		s := nfa.newState(A)
		bySymbol[A] = s
		return s
	}
	alphabet := make(map[lr.Symbol]bool)
	for i, p := range prods {
		if p.LHS.IsTerminal() {
			return nil, &ShapeError{Production: p}
		}
		from := stateFor(p.LHS)
		if i == 0 {
			from.Start = true
			nfa.Start = from
		}
		rhs := p.RHS()
		switch {
		case p.IsEpsilon():
			from.addEdge(EpsilonLabel, nfa.End)
		case len(rhs) == 1 && rhs[0].IsTerminal():
			from.addEdge(rhs[0].Name, nfa.End)
			alphabet[rhs[0]] = true
		case len(rhs) == 1:
			from.addEdge(EpsilonLabel, stateFor(rhs[0]))
		case len(rhs) == 2 && rhs[0].IsTerminal() && !rhs[0].IsEpsilon() && !rhs[1].IsTerminal():
			from.addEdge(rhs[0].Name, stateFor(rhs[1]))
			alphabet[rhs[0]] = true
		default:
			return nil, &ShapeError{Production: p}
		}
	}
	for a := range alphabet {
		nfa.alphabet = append(nfa.alphabet, a)
	}
	nfa.alphabet = sortedSymbols(nfa.alphabet)
	tracer().Debugf("NFA has %d states, alphabet of size %d", len(nfa.states), len(nfa.alphabet))
	return nfa, nil
}

func (nfa *NFA) newState(label lr.Symbol) *NFAState {
	s := newNFAState(len(nfa.states), label)
	nfa.states = append(nfa.states, s)
	return s
}

// States returns all states, ordered by serial number.
func (nfa *NFA) States() []*NFAState {
	r := make([]*NFAState, len(nfa.states))
	copy(r, nfa.states)
	return r
}

// Size returns the number of states.
func (nfa *NFA) Size() int {
	return len(nfa.states)
}

// Alphabet returns the terminal labels of the NFA, sorted by name. Epsilon is
// not part of the alphabet.
func (nfa *NFA) Alphabet() []lr.Symbol {
	r := make([]lr.Symbol, len(nfa.alphabet))
	copy(r, nfa.alphabet)
	return r
}

// Dump is a debugging helper.
func (nfa *NFA) Dump() {
	tracer().Debugf("--- NFA -------------------------------")
	for _, s := range nfa.states {
		tracer().Debugf("    %v", s)
	}
	tracer().Debugf("---------------------------------------")
}
