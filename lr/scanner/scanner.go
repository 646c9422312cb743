/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Three scanner implementations are provided: (1) a tokenizer driven by a DFA
from package automata, (2) a thin wrapper over the Go std lib 'text/scanner',
and (3) an adapter for lexmachine, living in sub-package `lexmach`. All of them
produce tokens of the same categories: identifiers, constants, keywords,
qualifiers, operators and delimiters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.scanner")
}

// Token categories. EOF, Identifier and Const are identical to their
// text/scanner counterparts (Const = scanner.Float).
const (
	EOF        = frontgen.TokType(scanner.EOF)
	Identifier = frontgen.TokType(scanner.Ident)
	Const      = frontgen.TokType(scanner.Float)
	Keyword    = frontgen.TokType(-9)
	Qualifier  = frontgen.TokType(-10)
	Operator   = frontgen.TokType(-11)
	Delimiter  = frontgen.TokType(-12)
)

// TokTypeString is a frontgen.TokTypeStringer for the token categories of this package.
func TokTypeString(t frontgen.TokType) string {
	switch t {
	case EOF:
		return "EOF"
	case Identifier:
		return "Identifier"
	case Const:
		return "Const"
	case Keyword:
		return "Keyword"
	case Qualifier:
		return "Qualifier"
	case Operator:
		return "Operator"
	case Delimiter:
		return "Delimiter"
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

var _ frontgen.TokTypeStringer = TokTypeString

// TokTypeByName finds a token category by its lower-case name, e.g. "identifier".
func TokTypeByName(name string) (frontgen.TokType, bool) {
	for _, t := range []frontgen.TokType{EOF, Identifier, Const, Keyword, Qualifier, Operator, Delimiter} {
		if strings.ToLower(TokTypeString(t)) == name {
			return t, true
		}
	}
	return 0, false
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() frontgen.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Tokens ----------------------------------------------------------------

// Token is the token type of all scanners of this package.
// Row and Col are 0-based.
type Token struct {
	Row    int
	Col    int
	kind   frontgen.TokType
	lexeme string
	Val    interface{}
	span   frontgen.Span
}

var _ frontgen.Token = Token{}

// MakeToken creates a token at row/column 0.
func MakeToken(typ frontgen.TokType, lexeme string, span frontgen.Span) Token {
	return Token{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t Token) TokType() frontgen.TokType {
	return t.kind
}

func (t Token) Value() interface{} {
	return t.Val
}

func (t Token) Lexeme() string {
	return t.lexeme
}

func (t Token) Span() frontgen.Span {
	return t.span
}

// Position returns "row:col", both 1-based.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Row+1, t.Col+1)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position(), TokTypeString(t.kind), t.lexeme)
}

// --- Token streams ---------------------------------------------------------

// TokenStream is a Tokenizer over a list of tokens, e.g. the result of a
// DFATokenizer. After the last token it returns EOF tokens.
type TokenStream struct {
	tokens []Token
	pos    int
	err    error
	Error  func(error)
}

var _ Tokenizer = (*TokenStream)(nil)

// NewTokenStream creates a token stream. If err is non-nil, it is reported
// to the error handler after the last token has been delivered, i.e. at the
// position in the input where it occurred.
func NewTokenStream(tokens []Token, err error) *TokenStream {
	return &TokenStream{tokens: tokens, err: err, Error: logError}
}

// SetErrorHandler sets an error handler for the stream.
func (ts *TokenStream) SetErrorHandler(h func(error)) {
	if h == nil {
		ts.Error = logError
		return
	}
	ts.Error = h
}

// NextToken is part of the Tokenizer interface.
func (ts *TokenStream) NextToken() frontgen.Token {
	if ts.pos >= len(ts.tokens) {
		if ts.err != nil {
			err := ts.err
			ts.err = nil
			ts.Error(err)
		}
		var end uint64
		if len(ts.tokens) > 0 {
			end = ts.tokens[len(ts.tokens)-1].span.To()
		}
		return MakeToken(EOF, "", frontgen.Span{end, end})
	}
	t := ts.tokens[ts.pos]
	ts.pos++
	return t
}
