package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/frontgen/driver"
	"github.com/npillmayer/frontgen/lr/lr1"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	steps  *bool
	scopes *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse [input file]",
		Short:   "Parse a text stream",
		Example: `  cat src | frontgen parse -l expr.lex -g expr.grammar --steps`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.steps = cmd.Flags().BoolP("steps", "s", false, "print the steps of the parser")
	parseFlags.scopes = cmd.Flags().Bool("scopes", false, "print identifiers and constants, by scope")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	fe, err := buildFrontend()
	if err != nil {
		return err
	}
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()
	res, err := fe.Parse(in)
	return report(res, err, *parseFlags.steps, *parseFlags.scopes)
}

// report prints the outcome of a parse. It returns an error if the input
// has been rejected.
func report(res *driver.Result, err error, steps, scopes bool) error {
	if steps && res != nil && len(res.Steps) > 0 {
		section("Parser steps")
		for _, ts := range res.Steps {
			pterm.Println(ts.String())
		}
	}
	if err != nil {
		var serr *lr1.SyntaxError
		if errors.As(err, &serr) && serr.Token != nil {
			return fmt.Errorf("syntax error at %q: %w", serr.Token.Lexeme(), err)
		}
		return err
	}
	if scopes && res.Scopes != nil {
		section("Scopes")
		if res.ScopeErr != nil {
			pterm.Warning.Println(res.ScopeErr.Error())
		}
		root := pterm.NewTreeFromLeveledList(scopeList(res.Scopes.Globals(), pterm.LeveledList{}, 0))
		if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
			tracer().Errorf("cannot render scopes: %v", err)
		}
	}
	if !res.Accepted {
		return fmt.Errorf("input rejected")
	}
	pterm.Success.Printf("accepted %d tokens %v in %d steps\n", len(res.Tokens), res.Span, len(res.Steps))
	return nil
}

func scopeList(sc *driver.Scope, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: sc.Name})
	sc.Tags().Each(func(name string, tag *driver.Tag) {
		ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: tag.String()})
	})
	for _, ch := range sc.Children {
		ll = scopeList(ch, ll, level+1)
	}
	return ll
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
