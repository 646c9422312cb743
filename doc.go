/*
Package frontgen is a compiler front-end generator.

Given a grammar description, frontgen builds a lexical analyzer and an
LR(1) syntax analyzer. The lexical analyzer is compiled from a right-linear
(regular) grammar into an NFA and then, via subset construction, into a DFA.
The syntax analyzer is derived from a context-free grammar by computing the
canonical collection of LR(1) item sets, from which ACTION and GOTO tables
are created. These tables drive a table-based shift-reduce recognizer.

Package structure is as follows:

■ lr: Grammar model, FIRST sets, LR(1) items, the canonical collection
(CFSM) and the ACTION/GOTO table generator.

■ lr/lr1: The table-driven shift-reduce engine.

■ lr/automata: NFA construction from right-linear grammars and subset construction
of DFAs.

■ lr/scanner: Tokenizers (DFA-driven, text/scanner-based and, in lr/scanner/lexmach,
lexmachine-based) and the token classifier.

■ config: TOML configuration of tokenizers and parsers.

■ driver: Wires lexing into parsing and collects identifiers into scoped symbol tables.

Command cmd/frontgen prints the generated tables and runs front ends on input.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frontgen
