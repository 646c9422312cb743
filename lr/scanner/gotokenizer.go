package scanner

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/frontgen"
)

// DefaultTokenizer is a tokenizer backed by scanner.Scanner.
// Create one with GoTokenizer.
//
// Identifiers are classified with a Classifier, numbers, characters and strings
// are constants. Any other character is a delimiter or an operator; the Go
// scanner never combines operator characters, so "==" results in two tokens.
type DefaultTokenizer struct {
	scanner.Scanner
	classifier *Classifier
	lastToken  rune        // last token this scanner has produced
	Error      func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.classifier = DefaultClassifier()
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() frontgen.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		off := uint64(t.Pos().Offset)
		return MakeToken(EOF, "", frontgen.Span{off, off})
	}
	lexeme := t.TokenText()
	token := Token{
		Row:    t.Position.Line - 1,
		Col:    t.Position.Column - 1,
		lexeme: lexeme,
		span:   frontgen.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
	switch t.lastToken {
	case scanner.Ident:
		token.kind = t.classifier.Classify(lexeme)
	case scanner.Int, scanner.Float:
		token.kind = Const
		if v, err := ConstValue(lexeme); err == nil {
			token.Val = v
		}
	case scanner.Char, scanner.String, scanner.RawString:
		token.kind = Const
		if s, err := strconv.Unquote(lexeme); err == nil {
			token.Val = s
		}
	default:
		token.kind = t.classifier.Classify(lexeme)
		if token.kind == Identifier {
			token.kind = Operator
		}
	}
	return token
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// WithClassifier sets the classifier for identifiers and punctuation.
func WithClassifier(c *Classifier) Option {
	return func(t *DefaultTokenizer) {
		if c != nil {
			t.classifier = c
		}
	}
}
