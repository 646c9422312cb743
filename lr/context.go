package lr

import (
	"sync"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Context holds the per-run state of an LR(1) construction for one grammar:
// the item-set intern table, the list of item sets in creation order and the
// GOTO cache. A context is safe for concurrent use.
//
// Contexts are never shared between grammars; item-set IDs are only meaningful
// within the context which created them.
type Context struct {
	mx        sync.Mutex
	g         *Grammar
	sets      map[string]*ItemSet
	created   []*ItemSet
	gotoCache map[gotoKey]*ItemSet // nil entry = no transition
}

type gotoKey struct {
	set int
	sym Symbol
}

// NewContext creates a construction context for a grammar. The grammar will be
// augmented, if it is not already.
func NewContext(g *Grammar) *Context {
	return &Context{
		g:         Augment(g),
		sets:      make(map[string]*ItemSet),
		gotoCache: make(map[gotoKey]*ItemSet),
	}
}

// Grammar returns the (augmented) grammar of this context.
func (ctx *Context) Grammar() *Grammar {
	return ctx.g
}

// Intern returns the canonical item set for a collection of items. Item sets
// with equal content always yield the identical pointer. New item sets get
// the next free ID.
func (ctx *Context) Intern(items []Item) *ItemSet {
	sorted, key := canonical(items)
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	return ctx.intern(sorted, key)
}

func (ctx *Context) intern(sorted []Item, key string) *ItemSet {
	if iset, ok := ctx.sets[key]; ok {
		return iset
	}
	iset := &ItemSet{ID: len(ctx.created), items: sorted, key: key}
	ctx.sets[key] = iset
	ctx.created = append(ctx.created, iset)
	return iset
}

func (ctx *Context) internSet(iset *ItemSet) *ItemSet {
	if iset.ID >= 0 && iset.ID < len(ctx.created) && ctx.created[iset.ID] == iset {
		return iset
	}
	return ctx.intern(iset.items, iset.key)
}

// ItemSets returns all item sets interned so far, in creation order.
func (ctx *Context) ItemSets() []*ItemSet {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	r := make([]*ItemSet, len(ctx.created))
	copy(r, ctx.created)
	return r
}

// StartItem returns [S' ➞ • S, #].
func (ctx *Context) StartItem() Item {
	return StartItem(ctx.g.Rule(0), EndMarker)
}

// Closure computes the LR(1) closure of a set of items: for every item
// [A ➞ α • B β, a] and every production B ➞ γ, the item [B ➞ • γ, b] is added
// for every terminal b in FIRST(βa), until nothing changes. The seed items are
// part of the closure. The result is interned.
func (ctx *Context) Closure(items []Item) *ItemSet {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	return ctx.closure(items)
}

func (ctx *Context) closure(items []Item) *ItemSet {
	C := make(map[string]Item, len(items))
	worklist := arraystack.New()
	for _, i := range items {
		if _, ok := C[i.key]; !ok {
			C[i.key] = i
			worklist.Push(i)
		}
	}
	for !worklist.Empty() {
		x, _ := worklist.Pop()
		i := x.(Item)
		B, ok := i.PeekSymbol()
		if !ok || B.IsTerminal() {
			continue
		}
		la := ctx.g.FirstOfSequence(i.Rest(), i.la)
		for _, p := range ctx.g.RulesFor(B) {
			for _, b := range la.Terminals() {
				n := StartItem(p, b)
				if _, ok := C[n.key]; !ok {
					C[n.key] = n
					worklist.Push(n)
				}
			}
		}
	}
	all := make([]Item, 0, len(C))
	for _, i := range C {
		all = append(all, i)
	}
	sorted, key := canonical(all)
	return ctx.intern(sorted, key)
}

// Goto computes GOTO(I, X) = closure({ [A ➞ α X • β, a] | [A ➞ α • X β, a] ∈ I }).
// If no item of I has X after the dot, Goto returns false. Results are cached
// per (I, X). An item set which has not been interned by this context is
// interned first.
func (ctx *Context) Goto(I *ItemSet, X Symbol) (*ItemSet, bool) {
	ctx.mx.Lock()
	defer ctx.mx.Unlock()
	I = ctx.internSet(I)
	k := gotoKey{set: I.ID, sym: X}
	if J, ok := ctx.gotoCache[k]; ok {
		return J, J != nil
	}
	var kernel []Item
	for _, i := range I.items {
		if A, ok := i.PeekSymbol(); ok && A == X {
			next, _ := i.Advance()
			kernel = append(kernel, next)
		}
	}
	if len(kernel) == 0 {
		ctx.gotoCache[k] = nil
		return nil, false
	}
	J := ctx.closure(kernel)
	ctx.gotoCache[k] = J
	tracer().Debugf("goto(%d, %v) = %d", I.ID, X, J.ID)
	return J, true
}
