package lexmach

import (
	"strings"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'frontgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer      *lexmachine.Lexer
	classifier *scanner.Classifier
}

// NewAdapter creates a lexmachine adapter for the token categories of package
// scanner: identifiers (classified further as keywords or qualifiers), numeric
// constants, and the delimiters and operators of classifier. Comments and
// whitespace are skipped. If classifier is nil, scanner.DefaultClassifier is used.
func NewAdapter(classifier *scanner.Classifier) (*LMAdapter, error) {
	return NewLMAdapter(nil, classifier)
}

// NewLMAdapter creates a new lexmachine adapter. Function init may add
// patterns of its own, which take precedence over the default ones.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), classifier *scanner.Classifier) (*LMAdapter, error) {
	if classifier == nil {
		classifier = scanner.DefaultClassifier()
	}
	adapter := &LMAdapter{classifier: classifier}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	lexer := adapter.Lexer
	lexer.Add([]byte(`//[^\n]*\n?`), Skip)
	lexer.Add([]byte(`/\*([^*]|\r|\n|(\*+([^*/]|\r|\n)))*\*+/`), Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), adapter.classify)
	lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), adapter.classify)
	lexer.Add([]byte(`\.[0-9]+`), adapter.classify)
	for _, cat := range []frontgen.TokType{scanner.Delimiter, scanner.Operator} {
		for _, lit := range classifier.Words(cat) {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), MakeToken(cat))
		}
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// classify is an action which categorizes a match with the adapter's classifier.
func (lm *LMAdapter) classify(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	lexeme := string(m.Bytes)
	return s.Token(int(lm.classifier.Classify(lexeme)), lexeme, m), nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Unconsumed input is reported to
// the error handler and skipped.
func (lms *LMScanner) NextToken() frontgen.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(len(lms.scanner.Text))
		return scanner.MakeToken(scanner.EOF, "", frontgen.Span{end, end})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	t := scanner.MakeToken(
		frontgen.TokType(token.Type),
		string(token.Lexeme),
		frontgen.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
	t.Row, t.Col = token.StartLine-1, token.StartColumn-1
	if t.TokType() == scanner.Const {
		if v, err := scanner.ConstValue(t.Lexeme()); err == nil {
			t.Val = v
		}
	}
	return t
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// of category cat.
func MakeToken(cat frontgen.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(cat), string(m.Bytes), m), nil
	}
}
