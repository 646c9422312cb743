/*
Package lr implements the construction machinery for LR(1) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. By convention,
symbol names starting with an upper-case letter denote non-terminals, everything
else is a terminal. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").T("a").N("A").T("d").End()  // S  ->  a A d
    b.LHS("S").T("b").N("A").T("c").End()  // S  ->  b A c
    b.LHS("A").T("e").End()                // A  ->  e
    b.LHS("A").Epsilon()                   // A  ->  ε
    g, err := b.Grammar()

Grammars may as well be read from a line-oriented text format, see ReadGrammar.

Static Grammar Analysis

FIRST-sets are computed lazily on first request and cached for the lifetime
of a grammar:

    fs := g.First(lr.N("A"))   // FIRST(A) = {e} + ε

Parser Construction

LR(1) item sets are created and interned by a construction context. The context
is bound to a single (augmented) grammar and owns every item set, together with
a cache for GOTO transitions. Identical item sets are always represented by the
identical *ItemSet.

    ctx := lr.NewContext(g)                  // augments g with S' -> S
    lrgen := lr.NewTableGenerator(ctx)
    if err := lrgen.CreateTables(); err != nil {
        ...                                  // e.g., grammar is not LR(1)
    }
    tables := lrgen.Tables()

The table generator first builds the canonical collection of LR(1) item sets
(the characteristic finite state machine, CFSM), then derives the ACTION and
GOTO tables from it. The CFSM is not thrown away, but is made available to the
client. This is intended for debugging purposes. It can be exported to Graphviz's
Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.lr")
}
