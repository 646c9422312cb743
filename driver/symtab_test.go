package driver

import (
	"errors"
	"testing"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func ident(name string, pos uint64) scanner.Token {
	return scanner.MakeToken(scanner.Identifier, name, frontgen.Span{pos, pos + uint64(len(name))})
}

func TestNewSymbol(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag(ident("new-sym", 0))
	if sym == nil {
		t.Fatal("no symbol created for table")
	}
	sym.UData = 5
	if sym.UData != 5 {
		t.Errorf("UData does not work")
	}
	if sym.Category != scanner.Identifier || sym.Count != 1 {
		t.Errorf("unexpected tag %v", sym)
	}
}

func TestTwoSymbolsDistinctId(t *testing.T) {
	symtab := NewSymbolTable()
	sym1, _ := symtab.DefineTag(ident("new-sym1", 0))
	sym2, _ := symtab.DefineTag(ident("new-sym2", 10))
	if sym1 == sym2 || symtab.Size() != 2 {
		t.Error("2 symbols with equal name")
	}
}

func TestResolveOrDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag(ident("new-sym", 0))
	if s := symtab.ResolveTag(sym.Name()); s != sym {
		t.Error("cannot find stored symbol in table")
	}
	if s, found := symtab.ResolveOrDefineTag(ident("new-sym", 20)); !found || s.Count != 2 {
		t.Error("expected symbol to be found and counted")
	}
	if s, found := symtab.ResolveOrDefineTag(ident("other", 30)); found || s == nil {
		t.Error("expected new symbol to be defined")
	}
	if _, old := symtab.DefineTag(ident("new-sym", 40)); old != sym {
		t.Error("symbol should have been replaced")
	}
	var names []string
	symtab.Each(func(name string, _ *Tag) { names = append(names, name) })
	if len(names) != 2 || names[0] != "new-sym" {
		t.Errorf("expected sorted names, have %v", names)
	}
}

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.Tags().DefineTag(ident("new-sym", 0))
	if sym, sc := scope.ResolveTag("new-sym"); sym == nil || sc != scopep {
		t.Errorf("expected to find symbol in parent scope")
	}
	if len(scopep.Children) != 1 || scopep.Children[0] != scope {
		t.Errorf("expected scope to be a child of its parent")
	}
}

func TestDeclareTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	c := scanner.DefaultClassifier()
	tok := func(lexeme string) scanner.Token {
		return scanner.MakeToken(c.Classify(lexeme), lexeme, frontgen.Span{})
	}
	var tokens []scanner.Token
	for _, l := range []string{"a", "{", "b", "a", "1", "{", "b", "}", "}", "1", "b"} {
		tokens = append(tokens, tok(l))
	}
	tree, err := DeclareTokens(tokens)
	if err != nil {
		t.Fatal(err)
	}
	globals := tree.Globals()
	if globals.Tags().Size() != 3 { // a, 1, b
		t.Errorf("expected 3 global tags, have %d", globals.Tags().Size())
	}
	if a := globals.Tags().ResolveTag("a"); a == nil || a.Count != 2 {
		t.Errorf("expected a to occur twice, is %v", a)
	}
	if n := globals.Tags().ResolveTag("1"); n == nil || n.Count != 2 || n.Category != scanner.Const {
		t.Errorf("expected constant 1 to occur twice, is %v", n)
	}
	block := globals.Children[0]
	if b := block.Tags().ResolveTag("b"); b == nil || b.Count != 2 {
		t.Errorf("expected b in block to occur twice, is %v", b)
	}
	if len(block.Children) != 1 || block.Children[0].Tags().Size() != 0 {
		t.Errorf("expected inner block without tags")
	}
	if tree.Current() != globals {
		t.Errorf("expected scopes to be balanced")
	}
	var unbalanced *UnbalancedScopesError
	_, err = DeclareTokens([]scanner.Token{tok("}")})
	if !errors.As(err, &unbalanced) || unbalanced.Token.Lexeme() != "}" {
		t.Errorf("expected unbalanced scopes error, have %v", err)
	}
	_, err = DeclareTokens([]scanner.Token{tok("{"), tok("x")})
	if !errors.As(err, &unbalanced) {
		t.Errorf("expected unbalanced scopes error, have %v", err)
	}
}
