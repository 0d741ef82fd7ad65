// Command occlex drives the reader/lexer pair over one or more source
// files (or a literal string), printing the resulting token stream and
// exiting non-zero if any diagnostic was an error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/veficos/occ/diag"
	"github.com/veficos/occ/internal/config"
	"github.com/veficos/occ/lexer"
	"github.com/veficos/occ/reader"
	"github.com/veficos/occ/token"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("occlex", pflag.ContinueOnError)
	str := flags.StringP("string", "s", "", "lex the given literal string instead of reading files")
	roundtrip := flags.Bool("roundtrip", false, "print each token's original spelling instead of its kind")
	warnSplice := flags.Bool("warn-backslash-space", false, "warn when a backslash-newline splice is separated by trailing space")
	warnEOF := flags.Bool("warn-no-newline-eof", false, "warn when the file ends with a backslash-newline splice")
	strict := flags.Bool("strict-escapes", false, "warn on the non-standard \\e/\\E escape extension")
	configPath := flags.String("config", "", "load lexer options from a TOML file, overriding the flags above")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	opts := []lexer.Option{
		lexer.WithBackslashNewlineSpaceWarning(*warnSplice),
		lexer.WithNoNewlineEOFWarning(*warnEOF),
		lexer.WithStrictEscapes(*strict),
	}
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "occlex:", err)
			return 2
		}
		opts = f.Options()
	}

	sink := diag.NewTermSink(os.Stderr)
	lx := lexer.New(sink, opts...)

	if *str != "" {
		if !lx.Push(reader.StreamString, *str) {
			return 1
		}
		printTokens(lx, *roundtrip)
	}

	for _, path := range flags.Args() {
		if !lx.Push(reader.StreamFile, path) {
			fmt.Fprintln(os.Stderr, "occlex:", path, "could not be read")
			return 1
		}
		printTokens(lx, *roundtrip)
		lx.Pop()
	}

	if sink.ErrorCount() > 0 {
		return 1
	}
	return 0
}

func printTokens(lx *lexer.Lexer, roundtrip bool) {
	for {
		tok := lx.Next()
		if tok.Kind == token.End {
			return
		}
		if roundtrip {
			if spelling, ok := token.OriginalSpelling(tok.Kind); ok {
				fmt.Print(spelling)
				continue
			}
			fmt.Print(tok.LiteralString())
			continue
		}
		fmt.Printf("%s:%d:%d: %s %q\n", tok.Loc.Name, tok.Loc.Line, tok.Loc.Column, tok.Kind, tok.LiteralString())
	}
}
