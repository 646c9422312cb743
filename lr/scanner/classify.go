package scanner

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/frontgen"
)

// Classifier assigns token categories to lexemes. The order of checks is fixed:
// numeric constants first, then keywords, qualifiers, delimiters and operators.
// Everything else is an identifier.
type Classifier struct {
	keywords   *treeset.Set
	qualifiers *treeset.Set
	delimiters *treeset.Set
	operators  *treeset.Set
}

// NewClassifier creates a classifier from word lists for each category.
func NewClassifier(keywords, qualifiers, delimiters, operators []string) *Classifier {
	return &Classifier{
		keywords:   stringSet(keywords),
		qualifiers: stringSet(qualifiers),
		delimiters: stringSet(delimiters),
		operators:  stringSet(operators),
	}
}

func stringSet(words []string) *treeset.Set {
	s := treeset.NewWithStringComparator()
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Default word lists, for a small C-like language.
var (
	DefaultKeywords = []string{"if", "else", "while", "for", "do", "return", "break",
		"continue", "int", "float", "char", "void", "struct"}
	DefaultQualifiers = []string{"const", "static", "volatile", "unsigned", "signed", "extern"}
	DefaultDelimiters = []string{"(", ")", "{", "}", "[", "]", ";", ","}
	DefaultOperators  = []string{"+", "-", "*", "/", "%", "=", "==", "!=", "<", ">",
		"<=", ">=", "&&", "||", "!", "&", "|", "^", "++", "--", "+=", "-=", "*=", "/="}
)

// DefaultClassifier creates a classifier with the default word lists.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords, DefaultQualifiers, DefaultDelimiters, DefaultOperators)
}

// Classify returns the category of a lexeme.
func (c *Classifier) Classify(lexeme string) frontgen.TokType {
	switch {
	case IsConst(lexeme):
		return Const
	case c.keywords.Contains(lexeme):
		return Keyword
	case c.qualifiers.Contains(lexeme):
		return Qualifier
	case c.delimiters.Contains(lexeme):
		return Delimiter
	case c.operators.Contains(lexeme):
		return Operator
	}
	return Identifier
}

// Words returns the words of a category, sorted. Categories without a word
// list return nil.
func (c *Classifier) Words(cat frontgen.TokType) []string {
	var s *treeset.Set
	switch cat {
	case Keyword:
		s = c.keywords
	case Qualifier:
		s = c.qualifiers
	case Delimiter:
		s = c.delimiters
	case Operator:
		s = c.operators
	default:
		return nil
	}
	words := make([]string, 0, s.Size())
	for _, w := range s.Values() {
		words = append(words, w.(string))
	}
	return words
}

// IsConst is true for lexemes which look like numeric constants:
// a leading digit, a minus followed by a digit, a decimal point followed by
// more characters, or an 'e' followed by an explicit sign.
func IsConst(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	first := lexeme[0]
	switch {
	case isDigit(first):
		return true
	case len(lexeme) < 2:
		return false
	case first == '-':
		return isDigit(lexeme[1])
	case first == '.':
		return true
	case first == 'e':
		return lexeme[1] == '+' || lexeme[1] == '-'
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
