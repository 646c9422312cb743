package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/config"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/lr1"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

const exprLex = `
// identifiers and integers
S->[a-z]J
S->[a-z]
J->[a-z0-9]J
J->[a-z0-9]
S->[0-9]D
S->[0-9]
D->[0-9]D
D->[0-9]
// operators and delimiters
S->+
S->*
S->(
S->)
S->{
S->}
`

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | i | n
`

func makeFrontend(t *testing.T, opts ...Option) *Frontend {
	t.Helper()
	fe, err := New(strings.NewReader(exprLex), strings.NewReader(exprGrammar), opts...)
	require.NoError(t, err)
	return fe
}

func symbolNames(syms []lr.Symbol) string {
	var names []string
	for _, A := range syms {
		names = append(names, A.Name)
	}
	return strings.Join(names, " ")
}

func TestFrontendAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	fe := makeFrontend(t)
	require.NotNil(t, fe.DFA())
	res, err := fe.ParseString("x1 + 2 * (y + x1)")
	require.NoError(t, err)
	require.True(t, res.Accepted)
	require.Equal(t, "i + n * ( i + i )", symbolNames(res.Symbols))
	require.Equal(t, frontgen.Span{0, 17}, res.Span)
	require.NotEmpty(t, res.Steps)
	last := res.Steps[len(res.Steps)-1]
	require.Equal(t, lr.Accept{}, last.Action)
	tag, _ := res.Scopes.Globals().ResolveTag("x1")
	require.NotNil(t, tag)
	require.Equal(t, 2, tag.Count)
	require.Equal(t, scanner.Identifier, tag.Category)
	tag, _ = res.Scopes.Globals().ResolveTag("2")
	require.NotNil(t, tag)
	require.Equal(t, scanner.Const, tag.Category)
}

func TestFrontendSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	fe := makeFrontend(t)
	res, err := fe.ParseString("x + * y")
	require.Error(t, err)
	require.False(t, res.Accepted)
	var serr *lr1.SyntaxError
	require.True(t, errors.As(err, &serr))
	require.NotNil(t, serr.Token)
	require.Equal(t, "*", serr.Token.Lexeme())
	require.Equal(t, 2, serr.Position)
}

func TestFrontendUnbalancedBraces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	fe, err := New(strings.NewReader("S->{\nS->[a-z]\n"), strings.NewReader("S -> { i\n"))
	require.NoError(t, err)
	res, err := fe.ParseString("{ x")
	require.NoError(t, err)
	require.True(t, res.Accepted)
	var unbalanced *UnbalancedScopesError
	require.True(t, errors.As(res.ScopeErr, &unbalanced), "expected unbalanced scopes, have %v", res.ScopeErr)
	require.NotNil(t, res.Scopes)
	require.Len(t, res.Scopes.Globals().Children, 1)
	res, err = makeFrontend(t).ParseString("x + }")
	require.Error(t, err)
	require.False(t, res.Accepted)
	var serr *lr1.SyntaxError
	require.True(t, errors.As(err, &serr), "expected syntax error to win, have %v", err)
}

func TestFrontendLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	fe := makeFrontend(t)
	res, err := fe.ParseString("x @")
	var lerr *scanner.LexicalError
	require.True(t, errors.As(err, &lerr), "expected lexical error, have %v", err)
	require.Equal(t, '@', lerr.Char)
	require.Len(t, res.Tokens, 1)
	require.False(t, res.Accepted)
}

func TestFrontendConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	ambiguous := "E -> E + E | i\n"
	_, err := New(strings.NewReader(exprLex), strings.NewReader(ambiguous))
	require.Error(t, err)
	require.True(t, errors.Is(err, lr.ErrNotLR1))
	fe, err := New(strings.NewReader(exprLex), strings.NewReader(ambiguous),
		WithConflictPolicy(lr.LastWriteWins))
	require.NoError(t, err)
	require.NotEmpty(t, fe.TableGenerator().Conflicts())
	res, err := fe.ParseString("a + b")
	require.NoError(t, err)
	require.True(t, res.Accepted)
}

func TestFrontendBackends(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	input := "x1 + 2 * (y + x1)"
	ref, err := makeFrontend(t).LexString(input)
	require.NoError(t, err)
	for _, backend := range []string{config.BackendLexmachine, config.BackendGo} {
		fe, err := New(nil, strings.NewReader(exprGrammar), WithBackend(backend))
		require.NoError(t, err, backend)
		require.Nil(t, fe.DFA())
		tokens, err := fe.LexString(input)
		require.NoError(t, err, backend)
		require.Len(t, tokens, len(ref), backend)
		for i, tok := range tokens {
			require.Equal(t, ref[i].Lexeme(), tok.Lexeme(), backend)
			require.Equal(t, ref[i].TokType(), tok.TokType(), backend)
		}
		res, err := fe.ParseString(input)
		require.NoError(t, err, backend)
		require.True(t, res.Accepted, backend)
	}
}

func TestFrontendConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	c, err := config.Read(strings.NewReader(`
[scanner]
backend  = "go"
keywords = ["let"]

[parser]
step-limit = 100

[parser.terminals]
keyword = "k"
`))
	require.NoError(t, err)
	g := "S -> k i + E\nE -> E + T | T\nT -> i | n\n"
	fe, err := New(nil, strings.NewReader(g), WithConfig(c))
	require.NoError(t, err)
	res, err := fe.ParseString("let x + 1 + y")
	require.NoError(t, err)
	require.True(t, res.Accepted)
	require.Equal(t, "k i + n + i", symbolNames(res.Symbols))
	fe, err = New(nil, strings.NewReader(g), WithConfig(c), WithStepLimit(3))
	require.NoError(t, err)
	_, err = fe.ParseString("let x + 1 + y")
	require.True(t, errors.Is(err, lr1.ErrStepLimit))
}

func TestFrontendSetupErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	_, err := New(nil, strings.NewReader(exprGrammar))
	require.True(t, errors.Is(err, ErrNoLexGrammar))
	_, err = New(nil, strings.NewReader(exprGrammar), WithBackend("yacc"))
	require.Error(t, err)
	_, err = New(strings.NewReader("S a\n"), strings.NewReader(exprGrammar))
	require.Error(t, err)
	_, err = New(strings.NewReader(exprLex), strings.NewReader("E E + T\n"))
	var lerr *lr.SyntaxLineError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, 1, lerr.Line)
}

func TestObserver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "frontgen.driver")
	defer teardown()
	//
	var steps []lr1.TraceStep
	fe := makeFrontend(t, WithObserver(func(ts lr1.TraceStep) {
		steps = append(steps, ts)
	}))
	res, err := fe.ParseString("n")
	require.NoError(t, err)
	require.Equal(t, len(res.Steps), len(steps))
}
