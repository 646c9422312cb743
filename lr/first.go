package lr

import (
	"strings"
)

// FirstSet is the set of terminals which may start a derivation from a symbol
// or a sequence of symbols, together with a flag telling if the empty word is
// derivable.
type FirstSet struct {
	terms   map[Symbol]struct{}
	Epsilon bool // derives ε
}

func newFirstSet() *FirstSet {
	return &FirstSet{terms: make(map[Symbol]struct{})}
}

func (fs *FirstSet) add(a Symbol) bool {
	if _, ok := fs.terms[a]; ok {
		return false
	}
	fs.terms[a] = struct{}{}
	return true
}

// merge adds all terminals of other, but not ε.
func (fs *FirstSet) merge(other *FirstSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for a := range other.terms {
		if fs.add(a) {
			changed = true
		}
	}
	return changed
}

func (fs *FirstSet) setEpsilon() bool {
	if fs.Epsilon {
		return false
	}
	fs.Epsilon = true
	return true
}

// Contains is true if terminal a is a member of the set.
func (fs *FirstSet) Contains(a Symbol) bool {
	_, ok := fs.terms[a]
	return ok
}

// Size returns the number of terminals in the set (not counting ε).
func (fs *FirstSet) Size() int {
	return len(fs.terms)
}

// Terminals returns the terminals of the set, sorted by name.
func (fs *FirstSet) Terminals() []Symbol {
	terms := make([]Symbol, 0, len(fs.terms))
	for a := range fs.terms {
		terms = append(terms, a)
	}
	return sortSymbols(terms)
}

func (fs *FirstSet) String() string {
	var names []string
	for _, a := range fs.Terminals() {
		names = append(names, a.Name)
	}
	if fs.Epsilon {
		names = append(names, EpsilonName)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// --- FIRST -----------------------------------------------------------------

// First returns FIRST(A). For a terminal this is {A}. The table of FIRST-sets for all
// non-terminals is computed on first request and cached for the lifetime of the grammar.
// Clients must not modify the returned set.
func (g *Grammar) First(A Symbol) *FirstSet {
	if A.IsTerminal() {
		fs := newFirstSet()
		if A.IsEpsilon() {
			fs.Epsilon = true
		} else {
			fs.add(A)
		}
		return fs
	}
	g.firstOnce.Do(g.computeFirstSets)
	if fs, ok := g.first[A]; ok {
		return fs
	}
	return newFirstSet()
}

// FirstOfSequence returns FIRST(βa), where β is a sequence of grammar symbols and
// a is a trailing lookahead terminal. If la is the zero symbol, FIRST(β) is returned.
func (g *Grammar) FirstOfSequence(beta []Symbol, la Symbol) *FirstSet {
	g.firstOnce.Do(g.computeFirstSets)
	fs := newFirstSet()
	seq := beta
	if !la.IsNull() {
		seq = make([]Symbol, len(beta), len(beta)+1)
		copy(seq, beta)
		seq = append(seq, la)
	}
	for _, A := range seq {
		if A.IsEpsilon() {
			continue
		}
		if A.IsTerminal() {
			fs.add(A)
			return fs
		}
		fA, ok := g.first[A]
		if !ok {
			continue
		}
		fs.merge(fA)
		if !fA.Epsilon {
			return fs
		}
	}
	fs.Epsilon = true
	return fs
}

// firstBuilder computes FIRST-sets by recursive descent over the productions.
// Productions referencing their own LHS are deferred until all other productions
// of the LHS have been scanned. A request for a non-terminal which is currently
// in progress receives the partial set; if this happened, a final fixed-point pass
// settles the table.
type firstBuilder struct {
	g          *Grammar
	table      map[Symbol]*FirstSet
	done       map[Symbol]bool
	inProgress map[Symbol]bool
	reentered  bool
}

func (g *Grammar) computeFirstSets() {
	fb := &firstBuilder{
		g:          g,
		table:      make(map[Symbol]*FirstSet),
		done:       make(map[Symbol]bool),
		inProgress: make(map[Symbol]bool),
	}
	for _, A := range g.NonTerminals() {
		fb.firstOf(A)
	}
	if fb.reentered {
		tracer().Debugf("grammar %s has indirect recursion, settling FIRST sets", g.Name)
		fb.settle()
	}
	g.first = fb.table
	for _, A := range g.NonTerminals() {
		tracer().Debugf("FIRST(%s) = %v", A, g.first[A])
	}
}

func (fb *firstBuilder) firstOf(X Symbol) *FirstSet {
	if fb.done[X] {
		return fb.table[X]
	}
	if fb.inProgress[X] {
		fb.reentered = true
		return fb.table[X]
	}
	fs := newFirstSet()
	fb.table[X] = fs
	fb.inProgress[X] = true
	var deferred []*Production
	for _, p := range fb.g.RulesFor(X) {
		if p.IsEpsilon() {
			fs.setEpsilon()
			continue
		}
		if p.contains(X) {
			deferred = append(deferred, p)
			continue
		}
		fb.scan(fs, p)
	}
	for _, p := range deferred { // X ➞ … X …
		for _, Y := range p.rhs {
			if Y.IsTerminal() {
				fs.add(Y)
				break
			}
			if Y == X {
				if !fs.Epsilon {
					break // X cannot vanish, the rest does not contribute
				}
				continue
			}
			fY := fb.firstOf(Y)
			fs.merge(fY)
			if !fY.Epsilon {
				break
			}
		}
	}
	delete(fb.inProgress, X)
	fb.done[X] = true
	return fs
}

func (fb *firstBuilder) scan(fs *FirstSet, p *Production) {
	for _, Y := range p.rhs {
		if Y.IsTerminal() {
			fs.add(Y)
			return
		}
		fY := fb.firstOf(Y)
		fs.merge(fY)
		if !fY.Epsilon {
			return
		}
	}
	fs.setEpsilon()
}

// settle iterates over all productions until no FIRST-set changes any more.
func (fb *firstBuilder) settle() {
	for changed := true; changed; {
		changed = false
		for _, p := range fb.g.prods {
			if fb.settleProduction(fb.table[p.LHS], p) {
				changed = true
			}
		}
	}
}

func (fb *firstBuilder) settleProduction(acc *FirstSet, p *Production) bool {
	if p.IsEpsilon() {
		return acc.setEpsilon()
	}
	changed := false
	for _, Y := range p.rhs {
		if Y.IsTerminal() {
			return acc.add(Y) || changed
		}
		fY := fb.table[Y]
		if acc.merge(fY) {
			changed = true
		}
		if !fY.Epsilon {
			return changed
		}
	}
	return acc.setEpsilon() || changed
}

// --- FOLLOW ----------------------------------------------------------------

// Follow returns FOLLOW(A) for a non-terminal A. The end marker is a member of
// FOLLOW(S) for the start symbol S.
func (g *Grammar) Follow(A Symbol) *FirstSet {
	g.follOnce.Do(g.computeFollowSets)
	if fs, ok := g.follow[A]; ok {
		return fs
	}
	return newFirstSet()
}

func (g *Grammar) computeFollowSets() {
	follow := make(map[Symbol]*FirstSet)
	for _, A := range g.NonTerminals() {
		follow[A] = newFirstSet()
	}
	follow[g.start].add(EndMarker)
	for changed := true; changed; {
		changed = false
		for _, p := range g.prods {
			for i := 0; i < p.Len(); i++ {
				B := p.rhs[i]
				if B.IsTerminal() {
					continue
				}
				fs := g.FirstOfSequence(p.rhs[i+1:], Symbol{})
				if follow[B].merge(fs) {
					changed = true
				}
				if fs.Epsilon && follow[B].merge(follow[p.LHS]) {
					changed = true
				}
			}
		}
	}
	g.follow = follow
}
