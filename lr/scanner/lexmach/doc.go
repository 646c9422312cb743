/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of frontgen.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The adapter produces tokens of the categories of package scanner. Identifiers
and numbers are categorized by a scanner.Classifier, delimiters and operators
are taken from the classifier's word lists. Line and block comments and
whitespace are skipped.

	LM, err := lexmach.NewAdapter(scanner.DefaultClassifier())
	if err != nil {
		// do error handling
	}

Clients who need additional token patterns may add them with NewLMAdapter.
Patterns added by the init function take precedence over the default ones.

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`\"[^"]*\"`), lexmach.MakeToken(scanner.Const))
	}
	LM, err := lexmach.NewLMAdapter(init, classifier)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until EOF.

	for … { // feed token into parser
		token := scan.NextToken()
		if token.TokType() != scanner.EOF {
			…
		}
	}

Please refer to package lr1 on
how to create parsers and plug in a scanner.Tokenizer.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
