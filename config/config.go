/*
Package config holds the configuration of a front end: the token classifier
word lists, the tokenizer backend, the mapping of token categories to grammar
terminals and the parser options. Configurations are read from TOML files:

    [scanner]
    backend    = "dfa"          # dfa | lexmachine | go
    keywords   = ["if", "else", "while"]
    qualifiers = ["const", "static"]
    delimiters = ["(", ")", ";"]
    operators  = ["+", "-", "="]

    [parser]
    conflicts  = "report"       # report | last-write-wins
    step-limit = 10000

    [parser.terminals]          # token category -> grammar terminal
    identifier = "i"
    const      = "n"

    [trace]
    level = "Info"

Every key is optional; missing keys keep their default values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/frontgen"
	"github.com/npillmayer/frontgen/lr"
	"github.com/npillmayer/frontgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"
)

// tracer traces with key 'frontgen.config'.
func tracer() tracing.Trace {
	return tracing.Select("frontgen.config")
}

// Tokenizer backends.
const (
	BackendDFA        = "dfa"
	BackendLexmachine = "lexmachine"
	BackendGo         = "go"
)

// Conflict policies, see lr.ConflictPolicy.
const (
	ConflictsReport        = "report"
	ConflictsLastWriteWins = "last-write-wins"
)

// Config contains configuration options.
type Config struct {
	Scanner Scanner `toml:"scanner"`
	Parser  Parser  `toml:"parser"`
	Trace   Trace   `toml:"trace"`
}

// Scanner is the scanner section of config.
type Scanner struct {
	Backend    string   `toml:"backend"`
	Keywords   []string `toml:"keywords"`
	Qualifiers []string `toml:"qualifiers"`
	Delimiters []string `toml:"delimiters"`
	Operators  []string `toml:"operators"`
}

// Parser is the parser section of config.
type Parser struct {
	Conflicts string            `toml:"conflicts"`
	StepLimit int               `toml:"step-limit"`
	Terminals map[string]string `toml:"terminals"`
}

// Trace is the trace section of config.
type Trace struct {
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scanner: Scanner{
			Backend:    BackendDFA,
			Keywords:   append([]string(nil), scanner.DefaultKeywords...),
			Qualifiers: append([]string(nil), scanner.DefaultQualifiers...),
			Delimiters: append([]string(nil), scanner.DefaultDelimiters...),
			Operators:  append([]string(nil), scanner.DefaultOperators...),
		},
		Parser: Parser{
			Conflicts: ConflictsReport,
			Terminals: map[string]string{"identifier": "i", "const": "n"},
		},
		Trace: Trace{Level: "Info"},
	}
}

// Load loads config options from a toml file, on top of the defaults.
func Load(confFile string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration %s: %w", confFile, err)
	}
	return c, c.check(md)
}

// Read reads config options in toml format, on top of the defaults.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	return c, c.check(md)
}

func (c *Config) check(md toml.MetaData) error {
	var err error
	for _, key := range md.Undecoded() {
		err = multierr.Append(err, fmt.Errorf("unknown configuration key %q", key.String()))
	}
	err = multierr.Append(err, c.Valid())
	if err != nil {
		return err
	}
	tracer().Debugf("configuration loaded: backend=%s, conflicts=%s", c.Scanner.Backend, c.Parser.Conflicts)
	return nil
}

// Valid checks if c is consistent. All problems found are reported, combined
// into a single error; use multierr.Errors to split them.
func (c *Config) Valid() error {
	var err error
	switch c.Scanner.Backend {
	case BackendDFA, BackendLexmachine, BackendGo:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown scanner backend %q", c.Scanner.Backend))
	}
	switch c.Parser.Conflicts {
	case ConflictsReport, ConflictsLastWriteWins:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown conflict policy %q", c.Parser.Conflicts))
	}
	if c.Parser.StepLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("step limit must not be negative: %d", c.Parser.StepLimit))
	}
	for _, name := range sortedKeys(c.Parser.Terminals) {
		if cat, ok := scanner.TokTypeByName(name); !ok || cat == scanner.EOF {
			err = multierr.Append(err, fmt.Errorf("unknown token category %q", name))
		}
		if t := c.Parser.Terminals[name]; t == "" || lr.NewSymbol(t).IsEnd() || !lr.NewSymbol(t).IsTerminal() {
			err = multierr.Append(err, fmt.Errorf("token category %q must map to a terminal, not %q", name, t))
		}
	}
	seen := make(map[string]string)
	for _, list := range []struct {
		name  string
		words []string
	}{
		{"keywords", c.Scanner.Keywords}, {"qualifiers", c.Scanner.Qualifiers},
		{"delimiters", c.Scanner.Delimiters}, {"operators", c.Scanner.Operators},
	} {
		for _, w := range list.words {
			if w == "" || strings.ContainsAny(w, " \t\n") {
				err = multierr.Append(err, fmt.Errorf("%s: invalid word %q", list.name, w))
			} else if other, dup := seen[w]; dup && other != list.name {
				err = multierr.Append(err, fmt.Errorf("%q is listed as %s and as %s", w, other, list.name))
			}
			seen[w] = list.name
		}
	}
	switch strings.ToLower(c.Trace.Level) {
	case "", "debug", "info", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown trace level %q", c.Trace.Level))
	}
	return err
}

// Classifier creates a token classifier from the scanner word lists.
func (c *Config) Classifier() *scanner.Classifier {
	s := c.Scanner
	return scanner.NewClassifier(s.Keywords, s.Qualifiers, s.Delimiters, s.Operators)
}

// ConflictPolicy returns the table conflict policy.
func (c *Config) ConflictPolicy() lr.ConflictPolicy {
	if c.Parser.Conflicts == ConflictsLastWriteWins {
		return lr.LastWriteWins
	}
	return lr.ReportConflicts
}

// TerminalMap returns the mapping of token categories to grammar terminals.
// Unknown category names are skipped.
func (c *Config) TerminalMap() map[frontgen.TokType]string {
	m := make(map[frontgen.TokType]string, len(c.Parser.Terminals))
	for name, t := range c.Parser.Terminals {
		if cat, ok := scanner.TokTypeByName(name); ok {
			m[cat] = t
		}
	}
	return m
}

// TraceLevel returns the configured trace level.
func (c *Config) TraceLevel() tracing.TraceLevel {
	if c.Trace.Level == "" {
		return tracing.LevelInfo
	}
	return tracing.TraceLevelFromString(c.Trace.Level)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
