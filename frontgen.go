package frontgen

import "fmt"

// TokType is the category of a Token. Scanners define the constants for
// their categories (see package scanner).
type TokType int

// TokTypeStringer renders token categories for diagnostics. A scanner providing
// categories should provide a stringer as well.
type TokTypeStringer func(TokType) string

// Token is the unit of input for parsers, produced by a tokenizer. Tokens are
// mapped to terminals of a grammar by their category or by their lexeme.
//
// For a numeric constant we get, for example:
//
//    TokType() = Const       // category
//    Lexeme()  = "3.1416"    // text as found in the input
//    Value()   = 3.1416      // float64 converted by the tokenizer
//    Span()    = (67…73)     // byte offsets within the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans -----------------------------------------------------------------

// Span denotes a run of input bytes, from a start offset to the offset just
// behind the end.
type Span [2]uint64 // (x…y)

// From is the start offset of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To is the offset just behind a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len is the number of bytes covered.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. The null span is
// the neutral element.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
