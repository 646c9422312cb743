package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/frontgen/lr/sparse"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state, in order of discovery
	Items  *ItemSet // LR(1) items of this state
	Accept bool     // contains the completed start item
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.Items.items {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.Items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.Items.items {
		if i.prod.Serial == 0 && i.IsCompleted() && i.la.IsEnd() {
			return true
		}
	}
	return false
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label Symbol
}

type transition struct {
	from  int
	label Symbol
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) item sets together with their GOTO transitions.
// It is constructed by BuildCFSM or by a TableGenerator.
type CFSM struct {
	g      *Grammar
	states *treeset.Set    // all the states, ordered by ID
	edges  *arraylist.List // all the edges between states, in creation order
	S0     *CFSMState      // start state
	byid   []*CFSMState
	byset  map[*ItemSet]*CFSMState
	next   map[transition]*CFSMState
}

func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
		byset:  make(map[*ItemSet]*CFSMState),
		next:   make(map[transition]*CFSMState),
	}
}

// addState adds a state for an (interned) item set, if not yet present.
// It returns the state and true if it has been created.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	if s, ok := c.byset[iset]; ok {
		return s, false
	}
	s := &CFSMState{ID: c.states.Size(), Items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.byset[iset] = s
	c.byid = append(c.byid, s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
	c.next[transition{from: s0.ID, label: sym}] = s1
}

// Grammar returns the (augmented) grammar of the CFSM.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size is the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	r := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		r = append(r, x.(*CFSMState))
	}
	return r
}

// State returns the state with ID id.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	return c.byid[id]
}

// StateFor finds the state for an item set.
func (c *CFSM) StateFor(iset *ItemSet) (*CFSMState, bool) {
	s, ok := c.byset[iset]
	return s, ok
}

// Next returns the successor of state s for symbol A.
func (c *CFSM) Next(s *CFSMState, A Symbol) (*CFSMState, bool) {
	t, ok := c.next[transition{from: s.ID, label: A}]
	return t, ok
}

// Edges returns the outgoing transitions of a state as a mapping from symbol
// to target state.
func (c *CFSM) Edges(s *CFSMState) map[Symbol]*CFSMState {
	r := make(map[Symbol]*CFSMState)
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r[e.label] = e.to
		}
	}
	return r
}

// EdgeCount is the number of transitions.
func (c *CFSM) EdgeCount() int {
	return c.edges.Size()
}

// BuildCFSM constructs the canonical collection of LR(1) item sets for the
// grammar of ctx. State 0 is the closure of [S' ➞ • S, #]; further states are
// numbered in order of discovery, processing states breadth-first and, within
// a state, the symbols after dots in canonical item order.
func BuildCFSM(ctx *Context) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(ctx.Grammar())
	closure0 := ctx.Closure([]Item{ctx.StartItem()})
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range s.Items.symbolsAfterDot() {
			gotoset, ok := ctx.Goto(s.Items, A)
			if !ok {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
				snew.Dump()
			}
			tracer().Debugf("edge %d --%v--> %d", s.ID, A, snew.ID)
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for grammar %s has %d states and %d edges", cfsm.g.Name,
		cfsm.Size(), cfsm.EdgeCount())
	return cfsm
}

// === Parser actions ========================================================

// Action is an entry of an ACTION table. It is one of Shift, Reduce or Accept.
type Action interface {
	isAction()
	String() string
}

// Shift pushes the lookahead and moves to state State.
type Shift struct {
	State  int
	Target *ItemSet
}

// Reduce pops the RHS of Production and pushes its LHS.
type Reduce struct {
	Production *Production
}

// Accept completes a successful parse.
type Accept struct{}

func (Shift) isAction()  {}
func (Reduce) isAction() {}
func (Accept) isAction() {}

func (a Shift) String() string  { return fmt.Sprintf("s%d", a.State) }
func (a Reduce) String() string { return fmt.Sprintf("r%d", a.Production.Serial) }
func (a Accept) String() string { return "acc" }

// GotoItem is an entry of a GOTO table.
type GotoItem struct {
	Target *ItemSet
	State  int
}

func (g GotoItem) String() string {
	return fmt.Sprintf("%d", g.State)
}

// Actions are encoded in the sparse ACTION matrix as
//
//     accept   = -1
//     shift(s) = s+1
//     reduce(p)= -(p+2)
const acceptCode = -1

func encodeAction(a Action) int32 {
	switch x := a.(type) {
	case Shift:
		return int32(x.State + 1)
	case Reduce:
		return int32(-(x.Production.Serial + 2))
	}
	return acceptCode
}

// === Conflicts =============================================================

// ConflictPolicy decides what happens if two different actions compete for the
// same ACTION table entry.
type ConflictPolicy int

const (
	// ReportConflicts keeps the first action and makes CreateTables fail with a
	// *NotLR1Error listing all conflicts.
	ReportConflicts ConflictPolicy = iota
	// LastWriteWins silently keeps the later action.
	LastWriteWins
)

// Conflict describes two competing actions for a (state, terminal) entry.
type Conflict struct {
	State    int
	Symbol   Symbol
	Existing Action
	Incoming Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d on %q: %v/%v", c.State, c.Symbol.Name, c.Existing, c.Incoming)
}

// ErrNotLR1 is wrapped by NotLR1Error.
var ErrNotLR1 = errors.New("grammar is not LR(1)")

// NotLR1Error is returned by CreateTables for grammars with conflicts.
type NotLR1Error struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *NotLR1Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar %s is not LR(1): %d conflict(s)", e.Grammar, len(e.Conflicts))
	for i, c := range e.Conflicts {
		if i == 3 {
			b.WriteString(", …")
			break
		}
		b.WriteString("; ")
		b.WriteString(c.String())
	}
	return b.String()
}

func (e *NotLR1Error) Unwrap() error {
	return ErrNotLR1
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G, then a Context for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	ctx          *Context
	g            *Grammar
	policy       ConflictPolicy
	cfsm         *CFSM
	tables       *Tables
	conflicts    []Conflict
	HasConflicts bool
}

// Option configures a TableGenerator.
type Option func(*TableGenerator)

// WithConflictPolicy sets the policy for conflicting table entries.
// Default is ReportConflicts.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(lrgen *TableGenerator) {
		lrgen.policy = p
	}
}

// NewTableGenerator creates a new TableGenerator for the grammar of a context.
func NewTableGenerator(ctx *Context, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{ctx: ctx, g: ctx.Grammar()}
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// It will be created if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.cfsm == nil {
		lrgen.cfsm = BuildCFSM(lrgen.ctx)
	}
	return lrgen.cfsm
}

// Tables returns the parser tables, or nil if CreateTables has not been called.
func (lrgen *TableGenerator) Tables() *Tables {
	return lrgen.tables
}

// ActionTable returns the raw ACTION matrix.
func (lrgen *TableGenerator) ActionTable() *sparse.IntMatrix {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet initialized")
		return nil
	}
	return lrgen.tables.action
}

// GotoTable returns the raw GOTO matrix.
func (lrgen *TableGenerator) GotoTable() *sparse.IntMatrix {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet initialized")
		return nil
	}
	return lrgen.tables.gotos
}

// Conflicts returns all conflicts detected by CreateTables.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables builds the CFSM and the ACTION and GOTO tables. With policy
// ReportConflicts (the default), a grammar with conflicts results in a
// *NotLR1Error; the tables are available nevertheless, holding the first
// action written for each entry.
func (lrgen *TableGenerator) CreateTables() error {
	cfsm := lrgen.CFSM()
	t := newTables(lrgen.g, cfsm)
	lrgen.conflicts = nil
	for _, s := range cfsm.States() {
		for _, i := range s.Items.items {
			A, ok := i.PeekSymbol()
			switch {
			case !ok && i.prod.Serial == 0:
				if i.la.IsEnd() {
					lrgen.setAction(t, s.ID, EndMarker, Accept{})
				}
			case !ok:
				lrgen.setAction(t, s.ID, i.la, Reduce{Production: i.prod})
			case A.IsTerminal() && !A.IsEnd():
				target, found := cfsm.Next(s, A)
				if !found {
					tracer().Errorf("CFSM has no transition for %v from state %d", A, s.ID)
					continue
				}
				lrgen.setAction(t, s.ID, A, Shift{State: target.ID, Target: target.Items})
			case !A.IsTerminal():
				if target, found := cfsm.Next(s, A); found {
					t.gotos.Set(s.ID, t.ncols[A], int32(target.ID))
				}
			}
		}
	}
	lrgen.tables = t
	tracer().Infof("ACTION table has %d entries, GOTO table has %d entries",
		t.action.ValueCount(), t.gotos.ValueCount())
	if len(lrgen.conflicts) > 0 && lrgen.policy == ReportConflicts {
		return &NotLR1Error{Grammar: lrgen.g.Name, Conflicts: lrgen.conflicts}
	}
	return nil
}

func (lrgen *TableGenerator) setAction(t *Tables, state int, a Symbol, act Action) {
	j := t.tcols[a]
	code := encodeAction(act)
	old := t.action.Value(state, j)
	if old == t.action.NullValue() {
		t.action.Set(state, j, code)
		return
	}
	if old == code {
		return
	}
	existing, _ := t.decode(old)
	c := Conflict{State: state, Symbol: a, Existing: existing, Incoming: act}
	tracer().Infof("conflict in %v", c)
	lrgen.conflicts = append(lrgen.conflicts, c)
	lrgen.HasConflicts = true
	if lrgen.policy == LastWriteWins {
		t.action.Set(state, j, code)
	} else {
		t.action.Add(state, j, code)
	}
}

// === Tables ================================================================

// Tables holds the ACTION and GOTO tables for an LR(1) parser. Rows are CFSM
// states; ACTION columns are the grammar's terminals plus the end marker, GOTO
// columns are its non-terminals without the augmented start symbol.
type Tables struct {
	g        *Grammar
	cfsm     *CFSM
	action   *sparse.IntMatrix
	gotos    *sparse.IntMatrix
	terms    []Symbol
	nonterms []Symbol
	tcols    map[Symbol]int
	ncols    map[Symbol]int
}

func newTables(g *Grammar, cfsm *CFSM) *Tables {
	t := &Tables{
		g:     g,
		cfsm:  cfsm,
		terms: append(g.Terminals(), EndMarker),
		tcols: make(map[Symbol]int),
		ncols: make(map[Symbol]int),
	}
	for j, a := range t.terms {
		t.tcols[a] = j
	}
	for _, A := range g.NonTerminals() {
		if A != g.Start() {
			t.ncols[A] = len(t.nonterms)
			t.nonterms = append(t.nonterms, A)
		}
	}
	n := cfsm.Size()
	t.action = sparse.NewIntMatrix(n, len(t.terms), sparse.DefaultNullValue)
	t.gotos = sparse.NewIntMatrix(n, len(t.nonterms), sparse.DefaultNullValue)
	tracer().Infof("ACTION table of size %d x %d, GOTO table of size %d x %d",
		n, len(t.terms), n, len(t.nonterms))
	return t
}

func (t *Tables) decode(code int32) (Action, bool) {
	switch {
	case code == t.action.NullValue():
		return nil, false
	case code == acceptCode:
		return Accept{}, true
	case code > 0:
		s := t.cfsm.State(int(code) - 1)
		if s == nil {
			return nil, false
		}
		return Shift{State: s.ID, Target: s.Items}, true
	}
	p := t.g.Rule(int(-code) - 2)
	if p == nil {
		return nil, false
	}
	return Reduce{Production: p}, true
}

// Action returns ACTION[state, a]. It returns false for an error entry.
func (t *Tables) Action(state int, a Symbol) (Action, bool) {
	j, ok := t.tcols[a]
	if !ok || state < 0 || state >= t.action.M() {
		return nil, false
	}
	return t.decode(t.action.Value(state, j))
}

// Goto returns GOTO[state, A]. It returns false for an error entry.
func (t *Tables) Goto(state int, A Symbol) (GotoItem, bool) {
	j, ok := t.ncols[A]
	if !ok || state < 0 || state >= t.gotos.M() {
		return GotoItem{}, false
	}
	v := t.gotos.Value(state, j)
	if v == t.gotos.NullValue() {
		return GotoItem{}, false
	}
	s := t.cfsm.State(int(v))
	return GotoItem{Target: s.Items, State: s.ID}, true
}

// Expected returns the terminals with a non-error ACTION entry for state.
func (t *Tables) Expected(state int) []Symbol {
	var r []Symbol
	for _, a := range t.terms {
		if _, ok := t.Action(state, a); ok {
			r = append(r, a)
		}
	}
	return r
}

// Terminals returns the ACTION columns.
func (t *Tables) Terminals() []Symbol {
	r := make([]Symbol, len(t.terms))
	copy(r, t.terms)
	return r
}

// NonTerminals returns the GOTO columns.
func (t *Tables) NonTerminals() []Symbol {
	r := make([]Symbol, len(t.nonterms))
	copy(r, t.nonterms)
	return r
}

// StateCount is the number of rows of both tables.
func (t *Tables) StateCount() int {
	return t.cfsm.Size()
}

// Grammar returns the augmented grammar the tables have been built for.
func (t *Tables) Grammar() *Grammar {
	return t.g
}

// CFSM returns the CFSM the tables have been built from.
func (t *Tables) CFSM() *CFSM {
	return t.cfsm
}

// Fingerprint returns the grammar's fingerprint.
func (t *Tables) Fingerprint() string {
	return t.g.Fingerprint()
}

// ActionRows renders the ACTION table as rows of strings, including a header row.
// Conflicting entries are shown as "x/y".
func (t *Tables) ActionRows() [][]string {
	header := []string{""}
	for _, a := range t.terms {
		header = append(header, a.Name)
	}
	rows := [][]string{header}
	for i := 0; i < t.StateCount(); i++ {
		row := []string{fmt.Sprintf("%d", i)}
		for j := range t.terms {
			row = append(row, t.actionCell(i, j))
		}
		rows = append(rows, row)
	}
	return rows
}

func (t *Tables) actionCell(i, j int) string {
	a1, a2 := t.action.Values(i, j)
	act1, ok := t.decode(a1)
	if !ok {
		return ""
	}
	if act2, ok := t.decode(a2); ok {
		return act1.String() + "/" + act2.String()
	}
	return act1.String()
}

// GotoRows renders the GOTO table as rows of strings, including a header row.
func (t *Tables) GotoRows() [][]string {
	header := []string{""}
	for _, A := range t.nonterms {
		header = append(header, A.Name)
	}
	rows := [][]string{header}
	for i := 0; i < t.StateCount(); i++ {
		row := []string{fmt.Sprintf("%d", i)}
		for _, A := range t.nonterms {
			if g, ok := t.Goto(i, A); ok {
				row = append(row, g.String())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
