package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// makeGrammar1 creates
//
//     S' ➞ S
//     S  ➞ a A d | b A c | a e c | b e d
//     A  ➞ e
func makeGrammar1(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G1")
	b.LHS("S'").N("S").End()
	b.LHS("S").T("a").N("A").T("d").End()
	b.LHS("S").T("b").N("A").T("c").End()
	b.LHS("S").T("a").T("e").T("c").End()
	b.LHS("S").T("b").T("e").T("d").End()
	b.LHS("A").T("e").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar G1: %v", err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr")
	defer teardown()
	//
	g := makeGrammar1(t)
	g.Dump()
	if g.Size() != 6 {
		t.Errorf("expected 6 productions, have %d", g.Size())
	}
	if g.Start() != N("S'") {
		t.Errorf("expected start symbol S', is %v", g.Start())
	}
	nonterms := g.NonTerminals()
	if len(nonterms) != 3 || nonterms[0].Name != "S'" || nonterms[1].Name != "S" || nonterms[2].Name != "A" {
		t.Errorf("expected non-terminals in order S', S, A; have %v", nonterms)
	}
	terms := g.Terminals()
	if len(terms) != 5 || terms[0].Name != "a" || terms[4].Name != "e" {
		t.Errorf("expected terminals a b c d e; have %v", terms)
	}
	if len(g.RulesFor(N("S"))) != 4 {
		t.Errorf("expected 4 rules for S")
	}
	for i, p := range g.Rules() {
		if p.Serial != i {
			t.Errorf("production %v has serial %d, expected %d", p, p.Serial, i)
		}
	}
	if !g.IsAugmented() {
		t.Errorf("expected G1 to be recognized as augmented")
	}
	if Augment(g) != g {
		t.Errorf("augmenting an augmented grammar should be a no-op")
	}
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr")
	defer teardown()
	//
	if _, err := NewGrammar("empty", N("S")); !errors.Is(err, ErrNoProductions) {
		t.Errorf("expected ErrNoProductions, got %v", err)
	}
	p, _ := NewProduction(N("S"), T("a"))
	if _, err := NewGrammar("G", N("X"), p); !errors.Is(err, ErrStartMismatch) {
		t.Errorf("expected ErrStartMismatch, got %v", err)
	}
	q, _ := NewProduction(N("S"), T("a"), N("B"))
	if _, err := NewGrammar("G", N("S"), q); !errors.Is(err, ErrUndefinedNonTerminal) {
		t.Errorf("expected ErrUndefinedNonTerminal, got %v", err)
	}
	r, _ := NewProduction(N("S"), T("S"))
	if _, err := NewGrammar("G", N("S"), r); !errors.Is(err, ErrSymbolClash) {
		t.Errorf("expected ErrSymbolClash, got %v", err)
	}
	if _, err := NewProduction(N("S")); !errors.Is(err, ErrEmptyRHS) {
		t.Errorf("expected ErrEmptyRHS, got %v", err)
	}
	e, _ := NewProduction(N("S"), T("a"), Epsilon)
	if _, err := NewGrammar("G", N("S"), e); !errors.Is(err, ErrMisplacedEpsilon) {
		t.Errorf("expected ErrMisplacedEpsilon, got %v", err)
	}
	var gerr *GrammarError
	_, err := NewGrammar("G", N("S"), q)
	if !errors.As(err, &gerr) || gerr.Production == nil {
		t.Errorf("expected grammar error to carry the offending production")
	}
}

func TestAugment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("i").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.IsAugmented() {
		t.Errorf("grammar E must not count as augmented")
	}
	ga := Augment(g)
	if ga.Start().Name != "E'" {
		t.Errorf("expected augmented start symbol E', is %v", ga.Start())
	}
	if ga.Size() != g.Size()+1 || ga.Rule(0).String() != "E' ➞ E" {
		t.Errorf("expected rule 0 to be E' ➞ E, is %v", ga.Rule(0))
	}
	if ga.Rule(1).Serial != 1 || ga.Rule(1).String() != g.Rule(0).String() {
		t.Errorf("expected original rules to follow the start rule")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr")
	defer teardown()
	//
	g1 := makeGrammar1(t)
	g2 := makeGrammar1(t)
	if g1.Fingerprint() == "" || g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected equal grammars to share a fingerprint")
	}
	g3, _ := ReadGrammar("G3", strings.NewReader("S -> a"))
	if g3.Fingerprint() == g1.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.lr")
	defer teardown()
	//
	input := `
// grammar G1, compact notation
S' -> S
S -> aAd | bAc | aec | bed
A -> e
`
	g, err := ReadGrammar("G1", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if g.Fingerprint() != makeGrammar1(t).Fingerprint() {
		t.Errorf("expected grammar read from text to equal G1, is\n%v", g)
	}
	g, err = ReadGrammar("E", strings.NewReader("E -> E + T | T\nT -> i | ε"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Rule(0).Len() != 3 || g.Rule(2).String() != "T ➞ i" || !g.Rule(3).IsEpsilon() {
		t.Errorf("unexpected productions:\n%v", g)
	}
	g, err = ReadGrammar("P", strings.NewReader("P -> P St | St\nSt -> x | ab"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Rule(1).String() != "P ➞ St" || g.Rule(1).Len() != 1 {
		t.Errorf("expected LHS name St to be read as one symbol, have %v", g.Rule(1))
	}
	if g.Rule(3).Len() != 2 {
		t.Errorf("expected compact alternative ab to be split, have %v", g.Rule(3))
	}
	_, err = ReadGrammar("bad", strings.NewReader("S -> a\nS = b"))
	var lerr *SyntaxLineError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Errorf("expected syntax error in line 2, got %v", err)
	}
	if _, err = ReadGrammar("bad", strings.NewReader("s -> a")); err == nil {
		t.Errorf("expected terminal LHS to be rejected")
	}
}
