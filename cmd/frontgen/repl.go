package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/frontgen/driver"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	init *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Long: `repl reads lines from the terminal and runs the front end on every line.
Lines starting with ':' are commands:

  :lex <text>     show the tokens of <text>
  :steps <text>   parse <text> and show the steps of the parser
  :scopes <text>  parse <text> and show its identifiers and constants
  :trace <level>  set the trace level
  :quit           leave`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	replFlags.init = cmd.Flags().String("init", "", "file with lines to run before going interactive")
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object
type Intp struct {
	fe   *driver.Frontend
	repl *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	fe, err := buildFrontend()
	if err != nil {
		return err
	}
	repl, err := readline.New("frontgen> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{fe: fe, repl: repl}
	pterm.Info.Println("Welcome to frontgen")
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*replFlags.init)
	intp.REPL()
	return nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval runs a command or parses a line of input. It returns true if the
// user wants to quit.
func (intp *Intp) Eval(line string) bool {
	if !strings.HasPrefix(line, ":") {
		intp.parse(line, false, false)
		return false
	}
	fields := strings.Fields(line)
	arg := joinArgs(fields[1:])
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":lex":
		tokens, err := intp.fe.LexString(arg)
		renderTable(tokenRows(tokens, intp.fe.Terminal))
		if err != nil {
			pterm.Error.Println(err.Error())
		}
	case ":steps":
		intp.parse(arg, true, false)
	case ":scopes":
		intp.parse(arg, false, true)
	case ":trace":
		setTraceLevel(tracing.TraceLevelFromString(arg))
		pterm.Info.Printf("trace level is %s\n", arg)
	default:
		pterm.Error.Printf("unknown command %s\n", fields[0])
	}
	return false
}

func (intp *Intp) parse(input string, steps, scopes bool) {
	res, err := intp.fe.ParseString(input)
	if err = report(res, err, steps, scopes); err != nil {
		pterm.Error.Println(err.Error())
	}
}
