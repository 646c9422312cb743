/*
Command frontgen builds a compiler front end from a lexical grammar and a
context-free grammar, and runs it on input text.

    frontgen tables -l expr.lex -g expr.grammar --html tables.html
    echo "x1 + 2 * (y + x1)" | frontgen parse -l expr.lex -g expr.grammar --steps
    frontgen repl -l expr.lex -g expr.grammar

Sample grammars may be found in folder testdata.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'frontgen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.cli")
}
