package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/frontgen/config"
	"github.com/npillmayer/frontgen/driver"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace   *string
	config  *string
	lex     *string
	grammar *string
	backend *string
}{}

// configuration in effect, set before any sub-command runs
var conf *config.Config

var rootCmd = &cobra.Command{
	Use:   "frontgen",
	Short: "Generate a compiler front end from grammars",
	Long: `frontgen builds a lexical analyzer from a right-linear grammar and an
LR(1) parser from a context-free grammar. It prints the generated tables
and runs the front end on input text.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	rootFlags.trace = pf.StringP("trace", "t", "", "trace level [Debug|Info|Error] (default from config or Info)")
	rootFlags.config = pf.StringP("config", "c", "", "configuration file (TOML)")
	rootFlags.lex = pf.StringP("lex", "l", "", "lexical grammar file (right-linear)")
	rootFlags.grammar = pf.StringP("grammar", "g", "", "context-free grammar file")
	rootFlags.backend = pf.StringP("backend", "b", "", "tokenizer backend [dfa|lexmachine|go] (default from config)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	conf = config.Default()
	if *rootFlags.config != "" {
		c, err := config.Load(*rootFlags.config)
		if err != nil {
			return err
		}
		conf = c
	}
	if *rootFlags.backend != "" {
		conf.Scanner.Backend = *rootFlags.backend
	}
	if *rootFlags.trace != "" {
		conf.Trace.Level = *rootFlags.trace
	}
	if err := conf.Valid(); err != nil {
		return err
	}
	setTraceLevel(conf.TraceLevel())
	tracer().Debugf("backend is %s, trace level is %s", conf.Scanner.Backend, conf.Trace.Level)
	return nil
}

var traceKeys = []string{
	"frontgen.cli", "frontgen.config", "frontgen.driver", "frontgen.lr",
	"frontgen.lr1", "frontgen.automata", "frontgen.scanner",
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// buildFrontend creates a front end from the grammar files given by flags.
func buildFrontend(opts ...driver.Option) (*driver.Frontend, error) {
	if *rootFlags.grammar == "" {
		return nil, fmt.Errorf("no grammar file given, use --grammar")
	}
	gf, err := os.Open(*rootFlags.grammar)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file: %w", err)
	}
	defer gf.Close()
	var lex io.Reader
	if *rootFlags.lex != "" {
		lf, err := os.Open(*rootFlags.lex)
		if err != nil {
			return nil, fmt.Errorf("cannot open lexical grammar file: %w", err)
		}
		defer lf.Close()
		lex = lf
	}
	opts = append([]driver.Option{driver.WithConfig(conf)}, opts...)
	return driver.New(lex, gf, opts...)
}

// openInput returns the file named by the first argument, or stdin.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	return f, nil
}

func renderTable(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Render(); err != nil {
		tracer().Errorf("cannot render table: %v", err)
	}
}

func section(title string) {
	pterm.DefaultSection.Println(strings.TrimSpace(title))
}
