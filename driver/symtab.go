package driver

import (
	"fmt"
	"sort"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr/scanner"
)

// Symbol table for identifiers and constants of the parsed input. Symbol
// tables are attached to scopes. Scopes are organized in a tree.

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It is not called
// 'Symbol' to avoid confusion with the symbols of grammars: grammars consist
// of symbols, tags are entries for the input of the front end.
type Tag struct {
	name     string
	Category frontgen.TokType // token category of the first occurrence
	First    scanner.Token    // first occurrence
	Count    int              // number of occurrences
	UData    interface{}      // user data
}

// NewTag creates a new tag for a token.
func NewTag(t scanner.Token) *Tag {
	return &Tag{
		name:     t.Lexeme(),
		Category: t.TokType(),
		First:    t,
		Count:    1,
	}
}

// String is a debug Stringer for tags.
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%s @%s ×%d>", s.name, scanner.TokTypeString(s.Category),
		s.First.Position(), s.Count)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag finds a tag for a token in the table and counts the
// occurrence, or inserts a new tag if not found. Returns the tag and a flag,
// signalling whether the tag has already been present.
func (t *SymbolTable) ResolveOrDefineTag(tok scanner.Token) (*Tag, bool) {
	if tok.Lexeme() == "" {
		return nil, false
	}
	if tag := t.ResolveTag(tok.Lexeme()); tag != nil {
		tag.Count++
		return tag, true
	}
	tag, _ := t.DefineTag(tok)
	return tag, false
}

// DefineTag creates a new tag to store into the symbol table.
// Overwrites an existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tok scanner.Token) (*Tag, *Tag) {
	if tok.Lexeme() == "" {
		return nil, nil
	}
	tag := NewTag(tok)
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return tag, old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over the tags in the table in order of their names,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	names := make([]string, 0, len(t.Table))
	for k := range t.Table {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		mapper(k, t.Table[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain tag definitions. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name     string
	Parent   *Scope
	Children []*Scope
	symtab   *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	sc := &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
	if parent != nil {
		parent.Children = append(parent.Children, sc)
	}
	return sc
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for ; s != nil; s = s.Parent {
		if tag := s.symtab.ResolveTag(tagname); tag != nil {
			return tag, s
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during analysis, thus
// building a tree from scopes which are pushed and popped to/from the stack.
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeTree) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a scope onto the stack of scopes.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc
	}
	scst.ScopeTOS = newsc
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}

// UnbalancedScopesError is returned by DeclareTokens for unmatched braces.
type UnbalancedScopesError struct {
	Token scanner.Token
}

func (e *UnbalancedScopesError) Error() string {
	if e.Token.Lexeme() == "" {
		return "unbalanced scopes: missing '}' at end of input"
	}
	return fmt.Sprintf("unbalanced scopes: unexpected %q at %s", e.Token.Lexeme(), e.Token.Position())
}

// DeclareTokens collects identifiers and constants of a token sequence into a
// scope tree. Identifiers are declared in the current scope at their first
// occurrence, unless visible from an enclosing scope. Constants always go to
// the global scope. Delimiters '{' and '}' open and close scopes.
func DeclareTokens(tokens []scanner.Token) (*ScopeTree, error) {
	tree := &ScopeTree{}
	tree.PushNewScope("globals")
	for _, t := range tokens {
		switch t.TokType() {
		case scanner.Delimiter:
			switch t.Lexeme() {
			case "{":
				tree.PushNewScope("block@" + t.Position())
			case "}":
				if tree.Current() == tree.Globals() {
					return tree, &UnbalancedScopesError{Token: t}
				}
				tree.PopScope()
			}
		case scanner.Identifier:
			if tag, _ := tree.Current().ResolveTag(t.Lexeme()); tag != nil {
				tag.Count++
			} else {
				tree.Current().Tags().DefineTag(t)
			}
		case scanner.Const:
			tree.Globals().Tags().ResolveOrDefineTag(t)
		}
	}
	if tree.Current() != tree.Globals() {
		return tree, &UnbalancedScopesError{}
	}
	return tree, nil
}
