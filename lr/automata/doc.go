/*
Package automata builds finite automata for lexical analysis from right-linear
(regular) grammars.

Every production of a right-linear grammar has the form

    A ➞ c B      (edge from A to B, labeled c)
    A ➞ c        (edge from A to the accepting end state)

where c is a single terminal character. An NFA is built with one state per
non-terminal and a shared accepting end state; subset construction converts it
into a DFA, which drives the tokenizer of package scanner.

DFA states are canonicalized by the set of NFA states they contain. A Context
holds the intern table for DFA states and the cache for moves; every
construction run should use its own context.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.automata'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.automata")
}
