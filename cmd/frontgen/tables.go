package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/npillmayer/frontgen/driver"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/automata"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	html    *string
	dot     *string
	lenient *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Print the lexer DFA and the LR(1) parse tables",
		Example: `  frontgen tables -l expr.lex -g expr.grammar --dot cfsm.dot`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.html = cmd.Flags().String("html", "", "write ACTION and GOTO tables as HTML to this file")
	tablesFlags.dot = cmd.Flags().String("dot", "", "write the characteristic finite state machine as GraphViz to this file")
	tablesFlags.lenient = cmd.Flags().Bool("lenient", false, "resolve table conflicts by last-write-wins instead of failing")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	var opts []driver.Option
	if *tablesFlags.lenient {
		opts = append(opts, driver.WithConflictPolicy(lr.LastWriteWins))
	}
	fe, err := buildFrontend(opts...)
	if err != nil {
		return err
	}
	if fe.DFA() != nil {
		section("Lexer DFA")
		renderTable(dfaRows(fe.DFA()))
	}
	section("Grammar")
	for _, p := range fe.Grammar().Rules() {
		pterm.Printf("%3d  %s\n", p.Serial, p)
	}
	section("FIRST and FOLLOW")
	renderTable(firstFollowRows(fe.Grammar()))
	gen := fe.TableGenerator()
	section("ACTION")
	renderTable(fe.Tables().ActionRows())
	section("GOTO")
	renderTable(fe.Tables().GotoRows())
	for _, c := range gen.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if *tablesFlags.html != "" {
		if err := writeFile(*tablesFlags.html, func(w io.Writer) error {
			if err := lr.ActionTableAsHTML(gen, w); err != nil {
				return err
			}
			return lr.GotoTableAsHTML(gen, w)
		}); err != nil {
			return err
		}
	}
	if *tablesFlags.dot != "" {
		if err := writeFile(*tablesFlags.dot, gen.CFSM().CFSM2GraphViz); err != nil {
			return err
		}
	}
	pterm.Success.Printf("%d parser states, %d conflicts\n", fe.Tables().StateCount(), len(gen.Conflicts()))
	return nil
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	tracer().Infof("wrote %s", name)
	return f.Close()
}

// firstFollowRows lists FIRST and FOLLOW of every non-terminal.
func firstFollowRows(g *lr.Grammar) [][]string {
	rows := [][]string{{"", "FIRST", "FOLLOW"}}
	for _, A := range g.NonTerminals() {
		rows = append(rows, []string{A.Name, g.First(A).String(), g.Follow(A).String()})
	}
	return rows
}

// dfaRows renders the transitions of a DFA, one row per state.
func dfaRows(dfa *automata.DFA) [][]string {
	header := []string{"state", "accepting"}
	alphabet := dfa.Alphabet()
	for _, a := range alphabet {
		header = append(header, a.Name)
	}
	rows := [][]string{header}
	for _, d := range dfa.States() {
		acc := ""
		if d.Accepting {
			acc = "✓"
		}
		row := []string{strconv.Itoa(d.ID), acc}
		for _, a := range alphabet {
			if t, ok := dfa.Next(d, a.Name); ok {
				row = append(row, strconv.Itoa(t.ID))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
