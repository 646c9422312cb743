package lr1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr"
)

// State is the complete configuration of an LR(1) parser.
type State struct {
	States  []int       // stack of CFSM state numbers, top = last
	Symbols []lr.Symbol // stack of grammar symbols, mirrors States
	Input   []lr.Symbol // input terminals, terminated by the end marker
	Cursor  int         // index of the lookahead within Input
}

// Start creates the initial parser state for an input sequence of terminals.
// The end marker is appended unless the input already ends with one.
func Start(input []lr.Symbol) State {
	in := make([]lr.Symbol, len(input), len(input)+1)
	copy(in, input)
	if len(in) == 0 || !in[len(in)-1].IsEnd() {
		in = append(in, lr.EndMarker)
	}
	return State{
		States:  []int{0},
		Symbols: []lr.Symbol{lr.EndMarker},
		Input:   in,
	}
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	c := State{Cursor: st.Cursor}
	c.States = append([]int(nil), st.States...)
	c.Symbols = append([]lr.Symbol(nil), st.Symbols...)
	c.Input = st.Input // never modified
	return c
}

// Top returns the state on top of the stack.
func (st State) Top() int {
	if len(st.States) == 0 {
		return -1
	}
	return st.States[len(st.States)-1]
}

// Lookahead returns the current input symbol.
func (st State) Lookahead() (lr.Symbol, bool) {
	if st.Cursor < 0 || st.Cursor >= len(st.Input) {
		return lr.Symbol{}, false
	}
	return st.Input[st.Cursor], true
}

// Remaining returns the unconsumed input, including the lookahead.
func (st State) Remaining() []lr.Symbol {
	if st.Cursor >= len(st.Input) {
		return nil
	}
	return st.Input[st.Cursor:]
}

// Move describes what a single step did.
type Move struct {
	Action lr.Action    // action taken
	Goto   *lr.GotoItem // GOTO entry used after a reduce
	Done   bool         // input has been accepted
}

// --- Errors ----------------------------------------------------------------

// Errors signaling inconsistent parse tables. They are wrapped into an InternalError.
var (
	ErrStackUnderflow = errors.New("parser stack underflow")
	ErrMissingGoto    = errors.New("missing GOTO entry")
)

// ErrPrematureAccept is returned if the tables accept while input is left.
var ErrPrematureAccept = errors.New("accept with unconsumed input")

// SyntaxError is returned if no ACTION entry exists for the current state and
// lookahead.
type SyntaxError struct {
	Symbol   lr.Symbol      // offending input symbol
	Position int            // index of Symbol within the input
	State    int            // parser state
	Expected []lr.Symbol    // terminals with an ACTION entry in State
	Token    frontgen.Token // offending token, if parsing from a tokenizer
}

func (e *SyntaxError) Error() string {
	var exp []string
	for _, a := range e.Expected {
		exp = append(exp, a.Name)
	}
	where := fmt.Sprintf("position %d", e.Position)
	if e.Token != nil {
		where = fmt.Sprintf("%s %v", where, e.Token.Span())
	}
	return fmt.Sprintf("syntax error at %s: unexpected %q, expected one of [%s]",
		where, e.Symbol.Name, strings.Join(exp, " "))
}

// InternalError reports inconsistent parse tables.
type InternalError struct {
	State      int
	Production *lr.Production
	Err        error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal parser error in state %d reducing %v: %v", e.State, e.Production, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// --- Step ------------------------------------------------------------------

// Step performs one move of the parser. It never modifies st, but returns
// the successor state instead. After an Accept move, Move.Done is set and the
// returned state equals st.
func Step(t *lr.Tables, st State) (State, Move, error) {
	la, ok := st.Lookahead()
	if !ok {
		return st, Move{}, &SyntaxError{Symbol: lr.EndMarker, Position: st.Cursor, State: st.Top()}
	}
	top := st.Top()
	action, ok := t.Action(top, la)
	if !ok {
		return st, Move{}, &SyntaxError{
			Symbol:   la,
			Position: st.Cursor,
			State:    top,
			Expected: t.Expected(top),
		}
	}
	switch a := action.(type) {
	case lr.Accept:
		if st.Cursor != len(st.Input)-1 {
			return st, Move{Action: a}, ErrPrematureAccept
		}
		return st, Move{Action: a, Done: true}, nil
	case lr.Shift:
		next := st.Clone()
		next.States = append(next.States, a.State)
		next.Symbols = append(next.Symbols, la)
		next.Cursor++
		return next, Move{Action: a}, nil
	case lr.Reduce:
		return reduce(t, st, a)
	}
	return st, Move{}, fmt.Errorf("unknown parser action %v", action)
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 … Xn
//
// popping n entries from both stacks, pushing LHS and the GOTO state.
func reduce(t *lr.Tables, st State, a lr.Reduce) (State, Move, error) {
	p := a.Production
	n := p.Len()
	if n >= len(st.States) || n >= len(st.Symbols) {
		return st, Move{Action: a}, &InternalError{State: st.Top(), Production: p, Err: ErrStackUnderflow}
	}
	next := st.Clone()
	handle := next.Symbols[len(next.Symbols)-n:]
	for i, X := range handle {
		if Y, _ := p.At(i); X != Y {
			tracer().Errorf("expected %v on stack, got %v", Y, X)
		}
	}
	next.States = next.States[:len(next.States)-n]
	next.Symbols = next.Symbols[:len(next.Symbols)-n]
	g, ok := t.Goto(next.Top(), p.LHS)
	if !ok {
		return st, Move{Action: a}, &InternalError{State: next.Top(), Production: p, Err: ErrMissingGoto}
	}
	next.States = append(next.States, g.State)
	next.Symbols = append(next.Symbols, p.LHS)
	return next, Move{Action: a, Goto: &g}, nil
}
