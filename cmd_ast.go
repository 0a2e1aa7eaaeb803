package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"plc/lexer"
	"plc/parser"
)

// astCmd parses (without analyzing) a .plc source file and dumps its
// AST as prettified JSON, grounded on the teacher's printer.go.
type astCmd struct {
	outPath string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Dump the parsed AST as JSON" }
func (*astCmd) Usage() string {
	return `ast [-o path] <file.plc>:
  Lex and parse a PLC source file, then print its AST as JSON.
`
}

func (a *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.outPath, "o", "", "write the AST JSON to this path instead of stdout")
}

func (a *astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	source, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tokens, err := lexer.New(source).Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	src, err := parser.Make(tokens).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if a.outPath != "" {
		if err := parser.WriteASTJSONToFile(src, a.outPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if _, err := parser.PrintASTJSON(src); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
