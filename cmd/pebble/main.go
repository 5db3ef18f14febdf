// Command pebble drives the front end as a diagnostic tool: it reads
// a source file and reports the tokens, parsed definitions, or fully
// lowered and type-checked Hir, without ever invoking a back end.
//
// Usage:
//
//	pebble tokens <file.pebl>   # print the token stream
//	pebble ast <file.pebl>      # print the parsed definition/expression counts
//	pebble check <file.pebl>    # run the full pipeline and report the first error, if any
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chazu/pebble/pkg/compiler"
	"github.com/chazu/pebble/pkg/corelib"
	"github.com/chazu/pebble/pkg/lexer"
	"github.com/chazu/pebble/pkg/parser"
)

var version = flag.Bool("version", false, "print version and exit")

const versionStr = "0.1.0"

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *version {
		fmt.Printf("pebble version %s\n", versionStr)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command, path := args[0], args[1]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pebble: %v\n", err)
		os.Exit(1)
	}

	var runErr error
	switch command {
	case "tokens":
		runErr = cmdTokens(string(src))
	case "ast":
		runErr = cmdAst(string(src))
	case "check":
		runErr = cmdCheck(string(src))
	default:
		fmt.Fprintf(os.Stderr, "pebble: unknown command %q\n", command)
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "pebble: %v\n", runErr)
		os.Exit(1)
	}
}

func cmdTokens(src string) error {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}
	for _, t := range toks {
		fmt.Printf("%d:%d\t%s\t%q\n", t.Line, t.Col, t.Type, t.Text)
	}
	return nil
}

func cmdAst(src string) error {
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	fmt.Printf("%d top-level definitions, %d top-level expressions\n",
		len(prog.Definitions), len(prog.Expressions))
	return nil
}

func cmdCheck(src string) error {
	res, err := compiler.Compile(src, corelib.Builtin())
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d classes, %d methods, %d constants, build %s\n",
		len(res.Dict.Classes), len(res.Hir.SkMethods), len(res.Hir.Constants), res.Hir.BuildID)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  pebble tokens <file.pebl>\n")
	fmt.Fprintf(os.Stderr, "  pebble ast <file.pebl>\n")
	fmt.Fprintf(os.Stderr, "  pebble check <file.pebl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
