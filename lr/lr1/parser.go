package lr1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/scanner"
)

// TraceStep is what an observer gets to see for every step of the parser.
type TraceStep struct {
	Step    int
	States  []int
	Symbols []lr.Symbol
	Input   []lr.Symbol // remaining input, including lookahead
	Action  lr.Action
	Goto    *lr.GotoItem
	Err     error // set for the step the parse failed in
}

func (ts TraceStep) String() string {
	var states []string
	for _, s := range ts.States {
		states = append(states, fmt.Sprintf("%d", s))
	}
	g := ""
	if ts.Goto != nil {
		g = ts.Goto.String()
	}
	if ts.Err != nil {
		g = "error: " + ts.Err.Error()
	}
	return fmt.Sprintf("%3d | %-16s | %-12s | %12s | %-4v | %s", ts.Step,
		strings.Join(states, " "), symbolString(ts.Symbols), symbolString(ts.Input),
		ts.Action, g)
}

func symbolString(syms []lr.Symbol) string {
	var b strings.Builder
	for _, A := range syms {
		b.WriteString(A.Name)
	}
	return b.String()
}

// Parser is an LR(1)-parser type. Create and initialize one with lr1.NewParser(...)
type Parser struct {
	tables   *lr.Tables
	observer func(TraceStep)
	maxSteps int
}

// Option configures a parser.
type Option func(p *Parser)

// WithObserver sets a function to be called for every step of the parser,
// including a final step carrying the error of a failed parse.
// The default observer traces the step with level Debug.
func WithObserver(f func(TraceStep)) Option {
	return func(p *Parser) {
		if f == nil {
			f = traceStep
		}
		p.observer = f
	}
}

// WithStepLimit limits the number of steps of a parse. Tables built with
// lr.LastWriteWins may contain reduce cycles; the limit stops them.
// A limit of 0 means no limit.
func WithStepLimit(n int) Option {
	return func(p *Parser) {
		p.maxSteps = n
	}
}

// ErrStepLimit is returned if a parse exceeds its step limit.
var ErrStepLimit = errors.New("parser step limit exceeded")

func traceStep(ts TraceStep) {
	tracer().Debugf("%v", ts)
}

// NewParser creates an LR(1) parser for a set of tables.
func NewParser(tables *lr.Tables, opts ...Option) *Parser {
	p := &Parser{tables: tables, observer: traceStep}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the parser on a sequence of terminals. It returns true if the input
// has been accepted. A rejected input results in a *SyntaxError.
func (p *Parser) Parse(input []lr.Symbol) (bool, error) {
	return p.run(Start(input), nil)
}

// ParseTokens runs the parser on the tokens of a tokenizer, reading tokens up to
// EOF. Every token is mapped to a terminal of the grammar by mapper.
func (p *Parser) ParseTokens(tok scanner.Tokenizer, mapper func(frontgen.Token) lr.Symbol) (bool, error) {
	var scanErr error
	tok.SetErrorHandler(func(err error) {
		if scanErr == nil {
			scanErr = err
		}
	})
	var tokens []frontgen.Token
	var input []lr.Symbol
	for {
		token := tok.NextToken()
		if scanErr != nil {
			return false, scanErr
		}
		if token.TokType() == scanner.EOF {
			break
		}
		tracer().Debugf("got token %q from scanner", token.Lexeme())
		tokens = append(tokens, token)
		input = append(input, mapper(token))
	}
	return p.run(Start(input), tokens)
}

func (p *Parser) run(st State, tokens []frontgen.Token) (bool, error) {
	if p.tables == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return false, fmt.Errorf("LR(1)-parser not initialized")
	}
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	for n := 1; ; n++ {
		if p.maxSteps > 0 && n > p.maxSteps {
			return false, ErrStepLimit
		}
		next, move, err := Step(p.tables, st)
		if err != nil {
			var serr *SyntaxError
			if errors.As(err, &serr) && serr.Position < len(tokens) {
				serr.Token = tokens[serr.Position]
			}
			tracer().Infof("parse failed: %v", err)
			p.observer(TraceStep{
				Step:    n,
				States:  st.States,
				Symbols: st.Symbols,
				Input:   st.Remaining(),
				Action:  move.Action,
				Err:     err,
			})
			return false, err
		}
		p.observer(TraceStep{
			Step:    n,
			States:  st.States,
			Symbols: st.Symbols,
			Input:   st.Remaining(),
			Action:  move.Action,
			Goto:    move.Goto,
		})
		if move.Done {
			return true, nil
		}
		st = next
	}
}
