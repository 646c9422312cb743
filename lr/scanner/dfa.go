package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr/automata"
)

// LexicalError is returned by a DFATokenizer if the input cannot be segmented
// into tokens. Row and Col are 0-based.
type LexicalError struct {
	Row    int
	Col    int
	Char   rune
	Reason string
}

func (e *LexicalError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("lexical error at %d:%d: %s", e.Row+1, e.Col+1, e.Reason)
	}
	return fmt.Sprintf("lexical error at %d:%d: %s: %q", e.Row+1, e.Col+1, e.Reason, e.Char)
}

// DFATokenizer segments text into tokens, driven by a DFA. A token ends at
// whitespace, at the start of a comment, or where the DFA has no transition
// for the next character while being in an accepting state. In the latter case
// the character starts the next token. Block comments /* … */ and line
// comments // … are skipped.
type DFATokenizer struct {
	dfa        *automata.DFA
	classifier *Classifier
}

// NewDFATokenizer creates a tokenizer for a DFA. If classifier is nil,
// DefaultClassifier is used.
func NewDFATokenizer(dfa *automata.DFA, classifier *Classifier) *DFATokenizer {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &DFATokenizer{dfa: dfa, classifier: classifier}
}

// Stream tokenizes the input and returns the tokens as a Tokenizer. A lexical
// error is delivered to the stream's error handler.
func (dt *DFATokenizer) Stream(input io.Reader) *TokenStream {
	tokens, err := dt.Tokenize(input)
	return NewTokenStream(tokens, err)
}

// Tokenize reads the input line by line and returns all of its tokens. The
// first lexical error stops tokenizing; tokens found until then are returned
// together with the error.
func (dt *DFATokenizer) Tokenize(input io.Reader) ([]Token, error) {
	lx := &lexer{dfa: dt.dfa, cl: dt.classifier, state: dt.dfa.Start}
	r := bufio.NewReader(input)
	for row := 0; ; row++ {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if lerr := lx.scanLine(row, line); lerr != nil {
				return lx.tokens, lerr
			}
			lx.offset += uint64(len(line))
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return lx.tokens, err
		}
	}
	if lx.inComment {
		return lx.tokens, &LexicalError{Row: lx.commentRow, Col: lx.commentCol,
			Reason: "unterminated block comment"}
	}
	tracer().Debugf("tokenizer found %d tokens", len(lx.tokens))
	return lx.tokens, nil
}

// TokenizeString is a convenience wrapper around Tokenize.
func (dt *DFATokenizer) TokenizeString(input string) ([]Token, error) {
	return dt.Tokenize(strings.NewReader(input))
}

// lexer holds the state of a single tokenizer run.
type lexer struct {
	dfa        *automata.DFA
	cl         *Classifier
	state      *automata.DFAState
	buf        []rune
	row, col   int    // start of buf
	start      uint64 // byte offset of buf
	offset     uint64 // byte offset of current line
	inComment  bool
	commentRow int
	commentCol int
	tokens     []Token
}

type posRune struct {
	r   rune
	off int // byte offset within the line
}

func (lx *lexer) scanLine(row int, line string) error {
	line = strings.TrimRight(line, "\r\n")
	runes := make([]posRune, 0, len(line))
	for off, r := range line {
		runes = append(runes, posRune{r, off})
	}
	peek := func(i int) rune {
		if i < len(runes) {
			return runes[i].r
		}
		return 0
	}
	i := 0
	for i < len(runes) {
		c := runes[i].r
		if lx.inComment {
			if c == '*' && peek(i+1) == '/' {
				lx.inComment = false
				i += 2
			} else {
				i++
			}
			continue
		}
		if c == '/' && peek(i+1) == '*' {
			if err := lx.flush(row, i, c); err != nil {
				return err
			}
			lx.inComment, lx.commentRow, lx.commentCol = true, row, i
			i += 2
			continue
		}
		if c == '/' && peek(i+1) == '/' {
			return lx.flush(row, i, c)
		}
		if unicode.IsSpace(c) {
			if err := lx.flush(row, i, c); err != nil {
				return err
			}
			i++
			continue
		}
		if next, ok := lx.dfa.Next(lx.state, string(c)); ok {
			if len(lx.buf) == 0 {
				lx.row, lx.col = row, i
				lx.start = lx.offset + uint64(runes[i].off)
			}
			lx.buf = append(lx.buf, c)
			lx.state = next
			i++
			continue
		}
		if len(lx.buf) > 0 && lx.state.Accepting {
			lx.emit(lx.offset + uint64(runes[i].off))
			continue // c starts the next token
		}
		reason := "unexpected character"
		if len(lx.buf) == 0 {
			reason = "character cannot start a token"
		}
		return &LexicalError{Row: row, Col: i, Char: c, Reason: reason}
	}
	return lx.flush(row, len(runes), 0)
}

// flush ends the current token at a separator. It is an error if the DFA
// is not in an accepting state.
func (lx *lexer) flush(row, col int, sep rune) error {
	if len(lx.buf) == 0 {
		return nil
	}
	if !lx.state.Accepting {
		return &LexicalError{Row: row, Col: col, Char: sep,
			Reason: fmt.Sprintf("incomplete token %q", string(lx.buf))}
	}
	lx.emit(lx.start + uint64(len(string(lx.buf))))
	return nil
}

func (lx *lexer) emit(end uint64) {
	lexeme := string(lx.buf)
	t := Token{
		Row:    lx.row,
		Col:    lx.col,
		kind:   lx.cl.Classify(lexeme),
		lexeme: lexeme,
		span:   frontgen.Span{lx.start, end},
	}
	if t.kind == Const {
		if v, err := ConstValue(lexeme); err == nil {
			t.Val = v
		} else {
			tracer().Infof("constant %q has no numeric value: %v", lexeme, err)
		}
	}
	tracer().Debugf("token %v", t)
	lx.tokens = append(lx.tokens, t)
	lx.buf = lx.buf[:0]
	lx.state = lx.dfa.Start
}
