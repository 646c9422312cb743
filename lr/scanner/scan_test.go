package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr/automata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %10s | %15s | @%5d", TokTypeString(token.TokType()), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoTokenizerCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("cat", strings.NewReader(`if (x) static y = 1.5; "s"`))
	expected := []frontgen.TokType{Keyword, Delimiter, Identifier, Delimiter, Qualifier,
		Identifier, Operator, Const, Delimiter, Const}
	for i, cat := range expected {
		token := scanner.NextToken()
		if token.TokType() != cat {
			t.Errorf("token #%d %q: expected %s, is %s", i, token.Lexeme(),
				TokTypeString(cat), TokTypeString(token.TokType()))
		}
	}
	if token := scanner.NextToken(); token.TokType() != EOF {
		t.Errorf("expected EOF, have %q", token.Lexeme())
	}
}

func TestClassifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	c := DefaultClassifier()
	for lexeme, cat := range map[string]frontgen.TokType{
		"if": Keyword, "const": Qualifier, "(": Delimiter, ";": Delimiter,
		"+": Operator, "-": Operator, "--": Operator, "x": Identifier,
		"e5": Identifier, "12": Const, "-3": Const, ".5": Const, "e+5": Const,
	} {
		if c.Classify(lexeme) != cat {
			t.Errorf("expected %q to be %s, is %s", lexeme, TokTypeString(cat),
				TokTypeString(c.Classify(lexeme)))
		}
	}
	q := strings.Join(c.Words(Qualifier), " ")
	if q != "const extern signed static unsigned volatile" {
		t.Errorf("unexpected qualifier list %q", q)
	}
	if c.Words(Identifier) != nil {
		t.Errorf("identifiers have no word list")
	}
}

const lexGrammar = `
S->[a-z]J
S->[a-z]
J->[a-z0-9]J
J->[a-z0-9]
S->[0-9]D
S->[0-9]
D->[0-9]D
D->[0-9]
S->+
S->=
S->=E
E->=
S->!F
F->=
`

func makeTokenizer(t *testing.T) *DFATokenizer {
	t.Helper()
	prods, err := automata.ReadRightLinear(strings.NewReader(lexGrammar))
	if err != nil {
		t.Fatal(err)
	}
	nfa, err := automata.BuildNFA(prods)
	if err != nil {
		t.Fatal(err)
	}
	return NewDFATokenizer(automata.BuildDFA(automata.NewContext(), nfa), nil)
}

func checkTokens(t *testing.T, tokens []Token, lexemes ...string) {
	t.Helper()
	if len(tokens) != len(lexemes) {
		t.Fatalf("expected %d tokens, have %d: %v", len(lexemes), len(tokens), tokens)
	}
	for i, l := range lexemes {
		if tokens[i].Lexeme() != l {
			t.Errorf("expected token #%d to be %q, is %q", i, l, tokens[i].Lexeme())
		}
	}
}

func TestDFATokenizerRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	tokens, err := makeTokenizer(t).TokenizeString("x1 y")
	if err != nil {
		t.Fatal(err)
	}
	checkTokens(t, tokens, "x1", "y")
	for _, tok := range tokens {
		if tok.TokType() != Identifier {
			t.Errorf("expected %q to be an identifier", tok.Lexeme())
		}
	}
	if tokens[0].Row != 0 || tokens[0].Col != 0 || tokens[1].Row != 0 || tokens[1].Col != 3 {
		t.Errorf("wrong positions: %s, %s", tokens[0].Position(), tokens[1].Position())
	}
	if tokens[0].Span() != (frontgen.Span{0, 2}) || tokens[1].Span() != (frontgen.Span{3, 4}) {
		t.Errorf("wrong spans: %v, %v", tokens[0].Span(), tokens[1].Span())
	}
}

func TestDFATokenizerComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t)
	tokens, err := tz.TokenizeString("a\n/*\n*/x")
	if err != nil {
		t.Fatal(err)
	}
	checkTokens(t, tokens, "a", "x")
	tokens, err = tz.TokenizeString("foo // bar")
	if err != nil {
		t.Fatal(err)
	}
	checkTokens(t, tokens, "foo")
	tokens, err = tz.TokenizeString("a/* x\n y */ b\nc")
	if err != nil {
		t.Fatal(err)
	}
	checkTokens(t, tokens, "a", "b", "c")
	if tokens[1].Position() != "2:7" || tokens[2].Position() != "3:1" {
		t.Errorf("wrong positions after block comment: %s, %s", tokens[1].Position(), tokens[2].Position())
	}
	if tokens[2].Span().From() != 14 {
		t.Errorf("expected c to start at byte 14, is %d", tokens[2].Span().From())
	}
}

func TestDFATokenizerPushBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	tokens, err := makeTokenizer(t).TokenizeString("x+12==y != 7")
	if err != nil {
		t.Fatal(err)
	}
	checkTokens(t, tokens, "x", "+", "12", "==", "y", "!=", "7")
	if tokens[1].TokType() != Operator || tokens[3].TokType() != Operator {
		t.Errorf("expected operators, have %v, %v", tokens[1], tokens[3])
	}
	if tokens[2].TokType() != Const || tokens[2].Value() != 12.0 {
		t.Errorf("expected constant 12, have %v with value %v", tokens[2], tokens[2].Value())
	}
}

func TestDFATokenizerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t)
	for input, expected := range map[string]LexicalError{
		"x @":       {Row: 0, Col: 2, Char: '@'},
		"x\ny ! z":  {Row: 1, Col: 3, Char: ' '},
		"x /* open": {Row: 0, Col: 2},
		"ab1 !":     {Row: 0, Col: 5},
		"x\n  a#":   {Row: 1, Col: 3, Char: '#'},
	} {
		_, err := tz.TokenizeString(input)
		var lerr *LexicalError
		if !errors.As(err, &lerr) {
			t.Errorf("expected lexical error for %q, got %v", input, err)
			continue
		}
		if lerr.Row != expected.Row || lerr.Col != expected.Col || lerr.Char != expected.Char {
			t.Errorf("%q: expected error at %d:%d %q, have %v", input, expected.Row, expected.Col,
				expected.Char, lerr)
		}
	}
}

func TestTokenStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t)
	stream := tz.Stream(strings.NewReader("x y"))
	var lexemes []string
	for token := stream.NextToken(); token.TokType() != EOF; token = stream.NextToken() {
		lexemes = append(lexemes, token.Lexeme())
	}
	if strings.Join(lexemes, " ") != "x y" {
		t.Errorf("unexpected tokens from stream: %v", lexemes)
	}
	if stream.NextToken().TokType() != EOF {
		t.Errorf("stream must keep returning EOF")
	}
	stream = tz.Stream(strings.NewReader("x @"))
	var reported error
	stream.SetErrorHandler(func(err error) { reported = err })
	if stream.NextToken().Lexeme() != "x" || reported != nil {
		t.Errorf("expected token 'x' before the lexical error")
	}
	if stream.NextToken().TokType() != EOF || reported == nil {
		t.Errorf("expected lexical error to be reported, followed by EOF")
	}
}
