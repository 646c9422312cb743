package main

import (
	"fmt"

	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "lex [input file]",
		Short:   "Split a text stream into tokens",
		Example: `  echo "x1 + 2" | frontgen lex -l expr.lex -g expr.grammar`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLex,
	}
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	fe, err := buildFrontend()
	if err != nil {
		return err
	}
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()
	tokens, err := fe.Lex(in)
	renderTable(tokenRows(tokens, fe.Terminal))
	if err != nil {
		return err
	}
	pterm.Success.Printf("%d tokens\n", len(tokens))
	return nil
}

func tokenRows(tokens []scanner.Token, terminal func(frontgen.Token) lr.Symbol) [][]string {
	rows := [][]string{{"pos", "category", "lexeme", "terminal", "span", "value"}}
	for _, t := range tokens {
		v := ""
		if t.Val != nil {
			v = fmt.Sprintf("%v", t.Val)
		}
		rows = append(rows, []string{t.Position(), scanner.TokTypeString(t.TokType()),
			t.Lexeme(), terminal(t).Name, t.Span().String(), v})
	}
	return rows
}
