package frontgen

import "testing"

func TestSpan(t *testing.T) {
	s := Span{3, 7}
	if s.From() != 3 || s.To() != 7 || s.Len() != 4 {
		t.Errorf("unexpected span values for %v", s)
	}
	if s.String() != "(3…7)" {
		t.Errorf("unexpected span string %q", s.String())
	}
	if !(Span{}).IsNull() || s.IsNull() {
		t.Errorf("IsNull broken")
	}
	if x := (Span{}).Extend(s); x != s {
		t.Errorf("null span extended by %v should be %v, is %v", s, s, x)
	}
	if x := s.Extend(Span{1, 5}); x != (Span{1, 7}) {
		t.Errorf("expected (1…7), is %v", x)
	}
	if x := s.Extend(Span{4, 9}); x != (Span{3, 9}) {
		t.Errorf("expected (3…9), is %v", x)
	}
}
