/*
Package lr1 provides a table-driven LR(1) shift-reduce parser. Clients have to
use the tools of package lr to prepare the parse tables; the parser utilizes
these tables to decide whether a sequence of terminals is a sentence of the
grammar.

The parser state is an explicit value: a stack of state numbers, a mirroring
stack of grammar symbols and a cursor into the input. Step advances a state by
exactly one move without modifying its argument, which makes the parser easy to
inspect and to drive step by step. Observers may watch every step; they have
no influence on the parse.

Usage

	b := lr.NewGrammarBuilder("G")
	b.LHS("S").T("a").N("A").T("d").End()
	b.LHS("A").T("e").End()
	g, _ := b.Grammar()

	lrgen := lr.NewTableGenerator(lr.NewContext(g))
	if err := lrgen.CreateTables(); err != nil { … }  // not LR(1)

	p := lr1.NewParser(lrgen.Tables())
	accepted, err := p.Parse([]lr.Symbol{lr.T("a"), lr.T("e"), lr.T("d")})

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.lr1'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.lr1")
}
