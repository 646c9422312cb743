package sparse

import (
	"testing"
)

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d", v)
	}
	if v := M.Value(3, 2); v != DefaultNullValue {
		t.Errorf("expected M(3,2) to be null, is %d", v)
	}
	M.Add(2, 3, 123)
	if a, b := M.Values(2, 3); a != 4711 || b != 123 {
		t.Errorf("expected M(2,3) to be (4711,123), is (%d,%d)", a, b)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position to be set, have %d", M.ValueCount())
	}
	M.Set(2, 3, 1)
	if a, b := M.Values(2, 3); a != 1 || b != DefaultNullValue {
		t.Errorf("expected Set to clear secondary value, is (%d,%d)", a, b)
	}
}

func TestMatrixOrdering(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(4, 4, 44)
	M.Set(0, 1, 1)
	M.Set(2, 0, 20)
	M.Set(0, 0, 0)
	var got []int32
	M.Each(func(i, j int, a, b int32) {
		if int32(i*10+j) != a {
			t.Errorf("value at (%d,%d) is %d", i, j, a)
		}
		got = append(got, a)
	})
	want := []int32{0, 1, 20, 44}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("expected row-major order %v, got %v", want, got)
			break
		}
	}
}

func TestMatrixIndexPanics(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected out-of-range index to panic")
		}
	}()
	M.Set(2, 0, 1)
}
