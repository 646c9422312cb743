/*
Package driver wires lexical and syntactical analysis into a front end.

A Frontend is created from two grammars: a right-linear grammar for the
lexical analyzer, which is compiled into a DFA, and a context-free grammar
for the parser, which is compiled into LR(1) tables. Tokens are mapped to
grammar terminals by their category: by default identifiers become terminal
'i', numeric constants become terminal 'n', every other token becomes the
terminal named by its lexeme.

    fe, err := driver.New(lexfile, grammarfile)
    if err != nil { … }
    result, err := fe.Parse(strings.NewReader("x1 + 2 * y"))
    // result.Accepted, result.Tokens, result.Steps

While parsing, identifiers and constants are collected into a tree of
scopes with symbol tables (see ScopeTree); delimiters '{' and '}' open and
close nested scopes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.driver'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.driver")
}
