package lr1

import (
	"errors"
	"testing"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S ➞ a A d | b A c | a e c | b e d
// A ➞ e
func makeTables(t *testing.T) *lr.Tables {
	t.Helper()
	b := lr.NewGrammarBuilder("G1")
	b.LHS("S").T("a").N("A").T("d").End()
	b.LHS("S").T("b").N("A").T("c").End()
	b.LHS("S").T("a").T("e").T("c").End()
	b.LHS("S").T("b").T("e").T("d").End()
	b.LHS("A").T("e").End()
	return tablesFor(t, b)
}

func tablesFor(t *testing.T, b *lr.GrammarBuilder) *lr.Tables {
	t.Helper()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := lr.NewTableGenerator(lr.NewContext(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	return lrgen.Tables()
}

func terminals(s string) []lr.Symbol {
	var syms []lr.Symbol
	for _, r := range s {
		syms = append(syms, lr.T(string(r)))
	}
	return syms
}

func TestParseAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	var steps []TraceStep
	p := NewParser(makeTables(t), WithObserver(func(ts TraceStep) {
		t.Logf("%v", ts)
		steps = append(steps, ts)
	}))
	accepted, err := p.Parse(terminals("aed"))
	if err != nil || !accepted {
		t.Fatalf("expected 'aed' to be accepted, have %v", err)
	}
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps (s s r s r acc), have %d", len(steps))
	}
	if _, ok := steps[5].Action.(lr.Accept); !ok {
		t.Errorf("expected last step to accept, is %v", steps[5].Action)
	}
	if r, ok := steps[2].Action.(lr.Reduce); !ok || r.Production.LHS != lr.N("A") || steps[2].Goto == nil {
		t.Errorf("expected step 3 to reduce A ➞ e, is %v", steps[2].Action)
	}
	if len(steps[5].Input) != 1 || !steps[5].Input[0].IsEnd() {
		t.Errorf("expected accept with only the end marker left, have %v", steps[5].Input)
	}
}

func TestParseReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	var steps []TraceStep
	p := NewParser(makeTables(t), WithObserver(func(ts TraceStep) {
		steps = append(steps, ts)
	}))
	accepted, err := p.Parse(terminals("ac"))
	if accepted {
		t.Fatalf("'ac' must not be accepted")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Symbol != lr.T("c") || serr.Position != 1 {
		t.Errorf("expected error at 'c', position 1; have %q at %d", serr.Symbol, serr.Position)
	}
	if len(serr.Expected) != 1 || serr.Expected[0] != lr.T("e") {
		t.Errorf("expected 'e' to be the only expected terminal, have %v", serr.Expected)
	}
	t.Logf("error: %v", err)
	if len(steps) != 2 || steps[1].Err != err || steps[1].Action != nil {
		t.Errorf("expected shift and a final step carrying the error, have %v", steps)
	}
	if len(steps) == 2 && (len(steps[1].Input) != 2 || steps[1].Input[0] != lr.T("c")) {
		t.Errorf("expected failing step to see 'c' as lookahead, have %v", steps[1].Input)
	}
	if accepted, err = p.Parse(terminals("aedd")); accepted || err == nil {
		t.Errorf("trailing input must be rejected")
	}
	if accepted, err = p.Parse(nil); accepted || err == nil {
		t.Errorf("empty input must be rejected")
	}
}

func TestStepIsPure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	tables := makeTables(t)
	st := Start(terminals("aed"))
	next, move, err := Step(tables, st)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := move.Action.(lr.Shift); !ok {
		t.Errorf("expected first move to shift, is %v", move.Action)
	}
	if len(st.States) != 1 || st.Cursor != 0 {
		t.Errorf("Step must not modify its argument, have %v", st)
	}
	if len(next.States) != 2 || next.Cursor != 1 || next.Symbols[1] != lr.T("a") {
		t.Errorf("unexpected successor state %v", next)
	}
}

func TestStepInconsistentTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	tables := makeTables(t)
	st := Start(terminals("aed"))
	for i := 0; i < 2; i++ { // shift a, shift e
		var err error
		if st, _, err = Step(tables, st); err != nil {
			t.Fatal(err)
		}
	}
	// top of stack reduces A ➞ e on lookahead d
	var ierr *InternalError
	short := State{States: st.States[2:], Symbols: st.Symbols[2:], Input: st.Input, Cursor: st.Cursor}
	_, move, err := Step(tables, short)
	if !errors.Is(err, ErrStackUnderflow) || !errors.As(err, &ierr) {
		t.Fatalf("expected stack underflow, have %v", err)
	}
	if _, ok := move.Action.(lr.Reduce); !ok || ierr.Production.LHS != lr.N("A") {
		t.Errorf("expected underflow while reducing A, have %v", ierr)
	}
	// after popping e, state 0 has no GOTO entry for A
	nogoto := State{
		States:  []int{0, st.Top()},
		Symbols: []lr.Symbol{lr.EndMarker, lr.T("e")},
		Input:   st.Input,
		Cursor:  st.Cursor,
	}
	_, _, err = Step(tables, nogoto)
	if !errors.Is(err, ErrMissingGoto) || !errors.As(err, &ierr) {
		t.Fatalf("expected missing GOTO, have %v", err)
	}
	if ierr.State != 0 {
		t.Errorf("expected missing GOTO in state 0, is %d", ierr.State)
	}
}

func TestPrematureAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	p := NewParser(makeTables(t))
	input := append(terminals("aed"), lr.EndMarker, lr.T("a"))
	if accepted, err := p.Parse(input); accepted || !errors.Is(err, ErrPrematureAccept) {
		t.Errorf("expected premature accept to fail, have %v, %v", accepted, err)
	}
}

func TestStepLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	p := NewParser(makeTables(t), WithStepLimit(3))
	if _, err := p.Parse(terminals("aed")); !errors.Is(err, ErrStepLimit) {
		t.Errorf("expected step limit to be exceeded, have %v", err)
	}
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Eps")
	b.LHS("S").T("a").N("B").T("c").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	p := NewParser(tablesFor(t, b))
	for input, ok := range map[string]bool{"ac": true, "abc": true, "bc": false, "abbc": false} {
		accepted, err := p.Parse(terminals(input))
		if accepted != ok {
			t.Errorf("input %q: expected accepted=%v, have %v (%v)", input, ok, accepted, err)
		}
	}
}

func TestParseTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr1")
	defer teardown()
	//
	mapper := func(tok frontgen.Token) lr.Symbol {
		return lr.T(tok.Lexeme())
	}
	tokens := func(s string) []scanner.Token {
		var toks []scanner.Token
		for i, r := range s {
			tok := scanner.MakeToken(scanner.Identifier, string(r), frontgen.Span{uint64(i), uint64(i + 1)})
			tok.Col = i
			toks = append(toks, tok)
		}
		return toks
	}
	p := NewParser(makeTables(t))
	accepted, err := p.ParseTokens(scanner.NewTokenStream(tokens("bec"), nil), mapper)
	if err != nil || !accepted {
		t.Errorf("expected 'bec' to be accepted, have %v", err)
	}
	_, err = p.ParseTokens(scanner.NewTokenStream(tokens("bx"), nil), mapper)
	var serr *SyntaxError
	if !errors.As(err, &serr) || serr.Token == nil || serr.Token.Lexeme() != "x" {
		t.Errorf("expected syntax error to carry token 'x', have %v", err)
	}
	boom := errors.New("boom")
	if _, err = p.ParseTokens(scanner.NewTokenStream(tokens("b"), boom), mapper); err != boom {
		t.Errorf("expected scanner error to be returned, have %v", err)
	}
}
