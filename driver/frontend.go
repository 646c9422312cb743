package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/config"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/automata"
	"github.com/npillmayer/frontgen/lr/lr1"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/frontgen/lr/scanner/lexmach"
)

// ErrNoLexGrammar is returned if the DFA backend is selected without a
// lexical grammar.
var ErrNoLexGrammar = errors.New("DFA tokenizer needs a lexical grammar")

// Frontend is a lexical analyzer and an LR(1) parser, built from grammars.
type Frontend struct {
	nfa        *automata.NFA
	dfa        *automata.DFA
	grammar    *lr.Grammar
	lrgen      *lr.TableGenerator
	lm         *lexmach.LMAdapter
	classifier *scanner.Classifier
	terminals  map[frontgen.TokType]string
	backend    string
	policy     lr.ConflictPolicy
	observer   func(lr1.TraceStep)
	stepLimit  int
}

// Option configures a front end.
type Option func(fe *Frontend)

// WithClassifier sets the token classifier.
func WithClassifier(c *scanner.Classifier) Option {
	return func(fe *Frontend) {
		if c != nil {
			fe.classifier = c
		}
	}
}

// WithConflictPolicy sets the conflict policy for table construction.
func WithConflictPolicy(p lr.ConflictPolicy) Option {
	return func(fe *Frontend) {
		fe.policy = p
	}
}

// WithTerminalMap sets the terminals for token categories. Categories not
// in m map to the lexeme of a token.
func WithTerminalMap(m map[frontgen.TokType]string) Option {
	return func(fe *Frontend) {
		fe.terminals = m
	}
}

// WithObserver sets an observer for the steps of the parser.
func WithObserver(f func(lr1.TraceStep)) Option {
	return func(fe *Frontend) {
		fe.observer = f
	}
}

// WithStepLimit limits the number of parser steps, see lr1.WithStepLimit.
func WithStepLimit(n int) Option {
	return func(fe *Frontend) {
		fe.stepLimit = n
	}
}

// WithBackend selects the tokenizer: config.BackendDFA (default),
// config.BackendLexmachine or config.BackendGo.
func WithBackend(backend string) Option {
	return func(fe *Frontend) {
		fe.backend = backend
	}
}

// WithConfig applies a configuration.
func WithConfig(c *config.Config) Option {
	return func(fe *Frontend) {
		fe.classifier = c.Classifier()
		fe.terminals = c.TerminalMap()
		fe.backend = c.Scanner.Backend
		fe.policy = c.ConflictPolicy()
		fe.stepLimit = c.Parser.StepLimit
	}
}

// New creates a front end. lexGrammar is a right-linear grammar for the DFA
// tokenizer (see automata.ReadRightLinear); it is not needed for the other
// backends and may be nil. cfgGrammar is read by lr.ReadGrammar.
//
// If the grammar is not LR(1) and the conflict policy is lr.ReportConflicts,
// New returns an error wrapping *lr.NotLR1Error.
func New(lexGrammar, cfgGrammar io.Reader, opts ...Option) (*Frontend, error) {
	fe := &Frontend{
		classifier: scanner.DefaultClassifier(),
		terminals:  config.Default().TerminalMap(),
		backend:    config.BackendDFA,
	}
	for _, opt := range opts {
		opt(fe)
	}
	if err := fe.initScanner(lexGrammar); err != nil {
		return nil, err
	}
	g, err := lr.ReadGrammar("G", cfgGrammar)
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar: %w", err)
	}
	fe.grammar = g
	fe.lrgen = lr.NewTableGenerator(lr.NewContext(g), lr.WithConflictPolicy(fe.policy))
	if err = fe.lrgen.CreateTables(); err != nil {
		return nil, fmt.Errorf("cannot create parse tables: %w", err)
	}
	tracer().Infof("front end has %d lexer states and %d parser states",
		fe.lexerStates(), fe.lrgen.Tables().StateCount())
	return fe, nil
}

func (fe *Frontend) initScanner(lexGrammar io.Reader) error {
	switch fe.backend {
	case config.BackendDFA:
		if lexGrammar == nil {
			return ErrNoLexGrammar
		}
		prods, err := automata.ReadRightLinear(lexGrammar)
		if err != nil {
			return fmt.Errorf("cannot read lexical grammar: %w", err)
		}
		if fe.nfa, err = automata.BuildNFA(prods); err != nil {
			return fmt.Errorf("cannot read lexical grammar: %w", err)
		}
		fe.dfa = automata.BuildDFA(automata.NewContext(), fe.nfa)
	case config.BackendLexmachine:
		lm, err := lexmach.NewAdapter(fe.classifier)
		if err != nil {
			return fmt.Errorf("cannot create lexmachine scanner: %w", err)
		}
		fe.lm = lm
	case config.BackendGo:
	default:
		return fmt.Errorf("unknown scanner backend %q", fe.backend)
	}
	return nil
}

func (fe *Frontend) lexerStates() int {
	if fe.dfa == nil {
		return 0
	}
	return fe.dfa.Size()
}

// Grammar returns the (augmented) grammar of the parser.
func (fe *Frontend) Grammar() *lr.Grammar {
	return fe.lrgen.Tables().Grammar()
}

// TableGenerator returns the table generator, holding CFSM, tables and conflicts.
func (fe *Frontend) TableGenerator() *lr.TableGenerator {
	return fe.lrgen
}

// Tables returns the parse tables.
func (fe *Frontend) Tables() *lr.Tables {
	return fe.lrgen.Tables()
}

// NFA returns the NFA of the lexical analyzer, if the DFA backend is used.
func (fe *Frontend) NFA() *automata.NFA {
	return fe.nfa
}

// DFA returns the DFA of the lexical analyzer, if the DFA backend is used.
func (fe *Frontend) DFA() *automata.DFA {
	return fe.dfa
}

// Classifier returns the token classifier.
func (fe *Frontend) Classifier() *scanner.Classifier {
	return fe.classifier
}

// Tokenizer creates a tokenizer for the input, using the front end's backend.
func (fe *Frontend) Tokenizer(input io.Reader) (scanner.Tokenizer, error) {
	switch fe.backend {
	case config.BackendLexmachine:
		text, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}
		return fe.lm.Scanner(string(text))
	case config.BackendGo:
		return scanner.GoTokenizer("input", input, scanner.WithClassifier(fe.classifier)), nil
	}
	return scanner.NewDFATokenizer(fe.dfa, fe.classifier).Stream(input), nil
}

// Lex splits the input into tokens. The first error stops lexing; tokens
// found until then are returned together with the error.
func (fe *Frontend) Lex(input io.Reader) ([]scanner.Token, error) {
	tz, err := fe.Tokenizer(input)
	if err != nil {
		return nil, err
	}
	var lexErr error
	tz.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = e
		}
	})
	var tokens []scanner.Token
	for {
		t := tz.NextToken()
		if lexErr != nil {
			return tokens, lexErr
		}
		if t.TokType() == scanner.EOF {
			break
		}
		tokens = append(tokens, t.(scanner.Token))
	}
	return tokens, nil
}

// LexString is a convenience wrapper around Lex.
func (fe *Frontend) LexString(input string) ([]scanner.Token, error) {
	return fe.Lex(strings.NewReader(input))
}

// Terminal maps a token to a grammar terminal.
func (fe *Frontend) Terminal(t frontgen.Token) lr.Symbol {
	if name, ok := fe.terminals[t.TokType()]; ok {
		return lr.T(name)
	}
	return lr.T(t.Lexeme())
}

// Result is the outcome of a parse.
type Result struct {
	Tokens   []scanner.Token
	Symbols  []lr.Symbol // terminals the tokens map to
	Accepted bool
	Steps    []lr1.TraceStep
	Scopes   *ScopeTree    // identifiers and constants of the input
	ScopeErr error         // unbalanced braces; does not affect Accepted
	Span     frontgen.Span // input covered by the tokens
}

// Parse tokenizes and parses the input. A lexical error or a syntax error is
// returned together with the partial result. Identifiers and constants of the
// tokens are collected into Result.Scopes; problems with the scopes are
// reported in Result.ScopeErr only.
func (fe *Frontend) Parse(input io.Reader) (*Result, error) {
	res := &Result{}
	tokens, err := fe.Lex(input)
	res.Tokens = tokens
	if err != nil {
		return res, err
	}
	for _, t := range tokens {
		res.Symbols = append(res.Symbols, fe.Terminal(t))
		res.Span = res.Span.Extend(t.Span())
	}
	observe := func(ts lr1.TraceStep) {
		res.Steps = append(res.Steps, ts)
		if fe.observer != nil {
			fe.observer(ts)
		}
	}
	p := lr1.NewParser(fe.Tables(), lr1.WithObserver(observe), lr1.WithStepLimit(fe.stepLimit))
	res.Accepted, err = p.ParseTokens(scanner.NewTokenStream(tokens, nil), fe.Terminal)
	res.Scopes, res.ScopeErr = DeclareTokens(tokens)
	if res.ScopeErr != nil {
		tracer().Infof("%v", res.ScopeErr)
	}
	return res, err
}

// ParseString is a convenience wrapper around Parse.
func (fe *Frontend) ParseString(input string) (*Result, error) {
	return fe.Parse(strings.NewReader(input))
}
