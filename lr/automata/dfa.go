package automata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/frontgen/lr"
)

// DFAState is a state of a deterministic finite automaton, i.e. a set of NFA
// states. DFA states are interned by a Context: equal sets of NFA states always
// result in the same *DFAState.
type DFAState struct {
	ID        int // creation order within its context
	members   []*NFAState
	key       string
	Start     bool
	Accepting bool
}

// Key is the canonical rendering of the member set: sorted NFA serials, joined with ','.
func (d *DFAState) Key() string {
	return d.key
}

// Members returns the NFA states of d, sorted by serial.
func (d *DFAState) Members() []*NFAState {
	r := make([]*NFAState, len(d.members))
	copy(r, d.members)
	return r
}

func (d *DFAState) String() string {
	flags := ""
	if d.Start {
		flags += "S"
	}
	if d.Accepting {
		flags += "E"
	}
	return fmt.Sprintf("DFAState%d{%s}%s", d.ID, d.key, flags)
}

// Context holds the intern table for DFA states and the cache for moves.
// A context is bound to a single NFA.
type Context struct {
	mx        sync.Mutex
	states    map[string]*DFAState
	created   []*DFAState
	moveCache map[moveKey]*DFAState
}

type moveKey struct {
	from  int
	label string
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		states:    make(map[string]*DFAState),
		moveCache: make(map[moveKey]*DFAState),
	}
}

// Intern returns the canonical DFA state for a set of NFA states.
// Duplicates in states are ignored.
func (ctx *Context) Intern(states []*NFAState) *DFAState {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	return ctx.intern(states)
}

func (ctx *Context) intern(states []*NFAState) *DFAState {
	serials := treeset.NewWith(utils.IntComparator)
	byserial := make(map[int]*NFAState, len(states))
	for _, s := range states {
		serials.Add(s.Serial)
		byserial[s.Serial] = s
	}
	keys := make([]string, 0, serials.Size())
	members := make([]*NFAState, 0, serials.Size())
	for _, v := range serials.Values() {
		keys = append(keys, strconv.Itoa(v.(int)))
		members = append(members, byserial[v.(int)])
	}
	key := strings.Join(keys, ",")
	if d, ok := ctx.states[key]; ok {
		return d
	}
	d := &DFAState{ID: len(ctx.created), members: members, key: key}
	for _, s := range members {
		d.Start = d.Start || s.Start
		d.Accepting = d.Accepting || s.End
	}
	ctx.states[key] = d
	ctx.created = append(ctx.created, d)
	tracer().Debugf("new DFA state %v", d)
	return d
}

// States returns all DFA states interned so far, in order of creation.
func (ctx *Context) States() []*DFAState {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	r := make([]*DFAState, len(ctx.created))
	copy(r, ctx.created)
	return r
}

// EpsilonClosure returns the set of NFA states reachable from states by
// following epsilon edges only. The result contains states and is sorted by serial.
func (ctx *Context) EpsilonClosure(states []*NFAState) []*NFAState {
	seen := make(map[*NFAState]bool, len(states))
	closure := make([]*NFAState, 0, len(states))
	stack := arraystack.New()
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			closure = append(closure, s)
			stack.Push(s)
		}
	}
	for !stack.Empty() {
		x, _ := stack.Pop()
		for _, t := range x.(*NFAState).Next(EpsilonLabel) {
			if !seen[t] {
				seen[t] = true
				closure = append(closure, t)
				stack.Push(t)
			}
		}
	}
	sort.Slice(closure, func(i, j int) bool { return closure[i].Serial < closure[j].Serial })
	return closure
}

// Move computes the DFA state reached from d with input label c, i.e. the
// epsilon closure of all c-successors of d's members. It returns false if no
// member of d has an edge labeled c.
func (ctx *Context) Move(d *DFAState, c string) (*DFAState, bool) {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	key := moveKey{from: d.ID, label: c}
	if t, ok := ctx.moveCache[key]; ok {
		return t, t != nil
	}
	var targets []*NFAState
	for _, s := range d.members {
		targets = append(targets, s.Next(c)...)
	}
	if len(targets) == 0 {
		ctx.moveCache[key] = nil
		return nil, false
	}
	t := ctx.intern(ctx.EpsilonClosure(targets))
	ctx.moveCache[key] = t
	return t, true
}

// --- DFA -------------------------------------------------------------------

// DFA is a deterministic finite automaton. There is no explicit dead state: a
// missing transition means the input is rejected from that state on.
type DFA struct {
	Start    *DFAState
	states   []*DFAState
	trans    map[*DFAState]map[string]*DFAState
	alphabet []lr.Symbol
}

// BuildDFA converts an NFA into a DFA by subset construction. States are
// discovered breadth first and interned in ctx.
func BuildDFA(ctx *Context, nfa *NFA) *DFA {
	dfa := &DFA{
		trans:    make(map[*DFAState]map[string]*DFAState),
		alphabet: nfa.Alphabet(),
	}
	dfa.Start = ctx.Intern(ctx.EpsilonClosure([]*NFAState{nfa.Start}))
	dfa.states = append(dfa.states, dfa.Start)
	known := map[*DFAState]bool{dfa.Start: true}
	for i := 0; i < len(dfa.states); i++ {
		d := dfa.states[i]
		for _, a := range dfa.alphabet {
			t, ok := ctx.Move(d, a.Name)
			if !ok {
				continue
			}
			dfa.addEdge(d, a.Name, t)
			if !known[t] {
				known[t] = true
				dfa.states = append(dfa.states, t)
			}
		}
	}
	tracer().Infof("DFA has %d states", len(dfa.states))
	return dfa
}

func (dfa *DFA) addEdge(from *DFAState, label string, to *DFAState) {
	m, ok := dfa.trans[from]
	if !ok {
		m = make(map[string]*DFAState)
		dfa.trans[from] = m
	}
	m[label] = to
}

// Next returns the transition from state d for input c.
func (dfa *DFA) Next(d *DFAState, c string) (*DFAState, bool) {
	t, ok := dfa.trans[d][c]
	return t, ok
}

// States returns the states of the DFA in order of discovery, starting with
// the start state.
func (dfa *DFA) States() []*DFAState {
	r := make([]*DFAState, len(dfa.states))
	copy(r, dfa.states)
	return r
}

// Size returns the number of states.
func (dfa *DFA) Size() int {
	return len(dfa.states)
}

// Alphabet returns the input labels of the DFA.
func (dfa *DFA) Alphabet() []lr.Symbol {
	r := make([]lr.Symbol, len(dfa.alphabet))
	copy(r, dfa.alphabet)
	return r
}

// Dump is a debugging helper.
func (dfa *DFA) Dump() {
	tracer().Debugf("--- DFA -------------------------------")
	for _, d := range dfa.states {
		var edges []string
		for _, a := range dfa.alphabet {
			if t, ok := dfa.Next(d, a.Name); ok {
				edges = append(edges, fmt.Sprintf("%s->%d", a.Name, t.ID))
			}
		}
		tracer().Debugf("    %v  %s", d, strings.Join(edges, " "))
	}
	tracer().Debugf("---------------------------------------")
}

func sortedSymbols(syms []lr.Symbol) []lr.Symbol {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}
