/*
Package sparse implements a small type for sparse integer matrices, used as
storage for the ACTION and GOTO tables of LR(1) parsers.
Every entry in the matrix is either a single int32 or a pair (int32,int32),
where the second value of a pair records a competing entry.

Values are stored as triplets (row, column, value), sorted row-major
(COO encoding).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a sparse matrix of int32 values. Construct with
//
//     M := NewIntMatrix(10, 10, DefaultNullValue)
//
// Then
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//
// Indices outside of the matrix' dimensions are programmer errors and panic.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    intPair
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix of size m x n. The 3rd argument is the null-value,
// indicating empty entries.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions holding a value.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

func (m *IntMatrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
}

// search returns the position of (i,j) within values, or the position where
// it would have to be inserted.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(n int) bool {
		return !m.values[n].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	m.checkIndex(i, j)
	if k, found := m.search(i, j); found {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value at position (i,j), replacing any previous entry.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value at position (i,j). If the position already holds a value, the new
// value becomes the secondary one.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	m.checkIndex(i, j)
	k, found := m.search(i, j)
	if found {
		if doAdd {
			m.values[k].value = addIntValue(m.values[k].value, value, m.nullval)
		} else {
			m.values[k].value = intPair{value, m.nullval}
		}
		return m
	}
	t := triplet{row: i, col: j, value: intPair{value, m.nullval}}
	m.values = append(m.values, t)
	copy(m.values[k+1:], m.values[k:])
	m.values[k] = t
	return m
}

// Each calls f for every position holding a value, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else {
		v.b = n // a full entry gets its second value overwritten
	}
	return v
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

// two int32 values stored in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
