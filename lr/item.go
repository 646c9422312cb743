package lr

import (
	"errors"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Dot is the marker for the position within an item.
const Dot = "•"

// ErrDotAtEnd is returned when advancing an item which is already completed.
var ErrDotAtEnd = errors.New("cannot advance item: dot is at the end")

// Item is an LR(1) item [A ➞ α • β, a]: a production, a dot position and a
// lookahead terminal. Items are immutable values; two items are equal iff their
// canonical rendering (see Key) is equal.
type Item struct {
	prod *Production
	dot  int
	la   Symbol
	key  string
}

// NewItem creates an item for production p with the dot at position dot
// (0 ≤ dot ≤ p.Len()) and lookahead la.
func NewItem(p *Production, dot int, la Symbol) Item {
	if dot < 0 {
		dot = 0
	} else if dot > p.Len() {
		dot = p.Len()
	}
	i := Item{prod: p, dot: dot, la: la}
	i.key = i.render()
	return i
}

// StartItem creates an item for production p with the dot at the leftmost position.
func StartItem(p *Production, la Symbol) Item {
	return NewItem(p, 0, la)
}

func (i Item) render() string {
	var b strings.Builder
	b.WriteString(i.prod.LHS.Name)
	b.WriteString("->")
	for k := 0; k < i.prod.Len(); k++ {
		if k > 0 {
			b.WriteByte(' ')
		}
		if k == i.dot {
			b.WriteString(Dot)
		}
		b.WriteString(i.prod.rhs[k].Name)
	}
	if i.dot == i.prod.Len() {
		b.WriteString(Dot)
	}
	b.WriteByte(',')
	b.WriteString(i.la.Name)
	return b.String()
}

// Key is the canonical rendering of an item, e.g. "A->a •B c,#".
func (i Item) Key() string {
	return i.key
}

// Production returns the item's production.
func (i Item) Production() *Production {
	return i.prod
}

// DotPos returns the position of the dot.
func (i Item) DotPos() int {
	return i.dot
}

// Lookahead returns the lookahead terminal.
func (i Item) Lookahead() Symbol {
	return i.la
}

// IsCompleted is true if the dot is behind the last RHS symbol.
func (i Item) IsCompleted() bool {
	return i.dot >= i.prod.Len()
}

// PeekSymbol returns the symbol after the dot. If the item is completed, it returns
// false.
func (i Item) PeekSymbol() (Symbol, bool) {
	return i.prod.At(i.dot)
}

// Rest returns β for an item [A ➞ α • X β, a].
func (i Item) Rest() []Symbol {
	if i.dot+1 >= i.prod.Len() {
		return nil
	}
	return i.prod.rhs[i.dot+1 : i.prod.Len()]
}

// Advance returns a new item with the dot moved one symbol to the right.
func (i Item) Advance() (Item, error) {
	if i.IsCompleted() {
		return Item{}, ErrDotAtEnd
	}
	return NewItem(i.prod, i.dot+1, i.la), nil
}

func (i Item) String() string {
	return "[" + i.key + "]"
}

// --- Item sets -------------------------------------------------------------

// ItemSet is a set of LR(1) items. Item sets are canonicalized by their key
// (sorted item renderings), and a construction context hands out the same
// *ItemSet for equal keys. ID is the creation index within the context, or -1
// for an item set which has not been interned.
type ItemSet struct {
	ID    int
	items []Item // sorted by key
	key   string
}

// NewItemSet creates a fresh item set which is not interned. Duplicate items are
// removed.
func NewItemSet(items ...Item) *ItemSet {
	sorted, key := canonical(items)
	return &ItemSet{ID: -1, items: sorted, key: key}
}

// canonical sorts and de-duplicates items and computes the key of the set.
func canonical(items []Item) ([]Item, string) {
	byKey := make(map[string]Item, len(items))
	keys := treeset.NewWithStringComparator()
	for _, i := range items {
		byKey[i.key] = i
		keys.Add(i.key)
	}
	sorted := make([]Item, 0, keys.Size())
	var b strings.Builder
	for _, k := range keys.Values() {
		sorted = append(sorted, byKey[k.(string)])
		b.WriteString(k.(string))
		b.WriteByte(';')
	}
	return sorted, b.String()
}

// Key is the canonical key of an item set.
func (iset *ItemSet) Key() string {
	return iset.key
}

// Size returns the number of items.
func (iset *ItemSet) Size() int {
	return len(iset.items)
}

// Empty is true for an item set without items.
func (iset *ItemSet) Empty() bool {
	return len(iset.items) == 0
}

// Items returns the items of the set, in canonical order.
func (iset *ItemSet) Items() []Item {
	r := make([]Item, len(iset.items))
	copy(r, iset.items)
	return r
}

// Contains is true if an item with the same key is a member of the set.
func (iset *ItemSet) Contains(i Item) bool {
	k := sort.Search(len(iset.items), func(n int) bool {
		return iset.items[n].key >= i.key
	})
	return k < len(iset.items) && iset.items[k].key == i.key
}

// Equals compares two item sets by content.
func (iset *ItemSet) Equals(other *ItemSet) bool {
	return other != nil && iset.key == other.key
}

// symbolsAfterDot returns the distinct symbols directly after a dot, in canonical
// item order.
func (iset *ItemSet) symbolsAfterDot() []Symbol {
	seen := make(map[Symbol]bool)
	var syms []Symbol
	for _, i := range iset.items {
		if A, ok := i.PeekSymbol(); ok && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

func (iset *ItemSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for n, i := range iset.items {
		if n > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper.
func (iset *ItemSet) Dump() {
	tracer().Debugf("--- item set %03d -----------", iset.ID)
	for _, i := range iset.items {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("----------------------------")
}
